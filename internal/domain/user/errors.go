package user

import (
	"errors"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Domain errors.
var (
	ErrUserNotFound           = collaboration.ErrUserNotFound
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountSuspended       = errors.New("account suspended")

	ErrInvalidName      = errors.New("name must be 1 to 100 characters")
	ErrPasswordRequired = errors.New("password required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

var errorTable = []collaboration.ErrorInfo{
	{Err: ErrEmailAlreadyRegistered, Kind: collaboration.KindConflict, Code: "email_already_registered"},
	{Err: ErrInvalidCredentials, Kind: collaboration.KindUnauthenticated, Code: "invalid_credentials"},
	{Err: ErrAccountSuspended, Kind: collaboration.KindPermission, Code: "account_suspended"},
	{Err: ErrInvalidName, Kind: collaboration.KindValidation, Code: "invalid_name"},
	{Err: ErrPasswordRequired, Kind: collaboration.KindValidation, Code: "password_required"},
	{Err: ErrPasswordTooShort, Kind: collaboration.KindValidation, Code: "password_too_short"},
	{Err: ErrPasswordTooLong, Kind: collaboration.KindValidation, Code: "password_too_long"},
}

// Classify finds the categorized error wrapped by err, falling back to the
// collaboration categories.
func Classify(err error) (collaboration.ErrorInfo, bool) {
	if info, ok := collaboration.Lookup(err, errorTable); ok {
		return info, true
	}
	return collaboration.Classify(err)
}
