package auth

import (
	"errors"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Domain errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
	ErrUnauthorized = errors.New("unauthorized")
)

var errorTable = []collaboration.ErrorInfo{
	{Err: ErrInvalidToken, Kind: collaboration.KindUnauthenticated, Code: "invalid_token"},
	{Err: ErrExpiredToken, Kind: collaboration.KindUnauthenticated, Code: "expired_token"},
	{Err: ErrRevokedToken, Kind: collaboration.KindUnauthenticated, Code: "revoked_token"},
	{Err: ErrUnauthorized, Kind: collaboration.KindUnauthenticated, Code: "unauthorized"},
}

// Classify finds the categorized auth error wrapped by err.
func Classify(err error) (collaboration.ErrorInfo, bool) {
	return collaboration.Lookup(err, errorTable)
}
