package auth

import (
	"context"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// RefreshTokenStore keeps hashed refresh tokens per user (Port).
type RefreshTokenStore interface {
	Store(ctx context.Context, userID collaboration.UserID, hash string, ttl time.Duration) error
	Exists(ctx context.Context, userID collaboration.UserID, hash string) (bool, error)
	// Revoke reports whether the token was present, so at most one caller
	// can claim it.
	Revoke(ctx context.Context, userID collaboration.UserID, hash string) (bool, error)
	RevokeAll(ctx context.Context, userID collaboration.UserID) error
}

// TokenIssuer signs and verifies access tokens and mints refresh tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID collaboration.UserID, email collaboration.Email) (token string, expiresAt time.Time, err error)
	ValidateAccessToken(token string) (*Claims, error)
	GenerateRefreshToken(userID collaboration.UserID) (*RefreshToken, error)
	HashRefreshToken(raw string) string
	AccessTokenExpiry() time.Duration
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
