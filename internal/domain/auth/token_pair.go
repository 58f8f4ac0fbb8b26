package auth

import (
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// TokenPair represents access and refresh token pair.
type TokenPair struct {
	accessToken  string
	refreshToken string
	tokenType    string
	expiresIn    int64 // seconds until access token expires
	expiresAt    time.Time
}

// NewTokenPair creates a new token pair.
func NewTokenPair(accessToken, refreshToken string, expiresIn int64, expiresAt time.Time) *TokenPair {
	return &TokenPair{
		accessToken:  accessToken,
		refreshToken: refreshToken,
		tokenType:    "Bearer",
		expiresIn:    expiresIn,
		expiresAt:    expiresAt,
	}
}

func (t *TokenPair) AccessToken() string  { return t.accessToken }
func (t *TokenPair) RefreshToken() string { return t.refreshToken }
func (t *TokenPair) TokenType() string    { return t.tokenType }
func (t *TokenPair) ExpiresIn() int64     { return t.expiresIn }
func (t *TokenPair) ExpiresAt() time.Time { return t.expiresAt }

// Claims are the verified contents of an access token.
type Claims struct {
	userID    collaboration.UserID
	email     collaboration.Email
	issuedAt  time.Time
	expiresAt time.Time
}

// NewClaims creates new claims.
func NewClaims(userID collaboration.UserID, email collaboration.Email, issuedAt, expiresAt time.Time) *Claims {
	return &Claims{
		userID:    userID,
		email:     email,
		issuedAt:  issuedAt,
		expiresAt: expiresAt,
	}
}

func (c *Claims) UserID() collaboration.UserID { return c.userID }
func (c *Claims) Email() collaboration.Email   { return c.email }
func (c *Claims) IssuedAt() time.Time          { return c.issuedAt }
func (c *Claims) ExpiresAt() time.Time         { return c.expiresAt }

// IsExpired reports whether the claims are past their expiry at now.
func (c *Claims) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}
