package auth

import (
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// RefreshToken is a freshly minted refresh token. Only the hash is persisted.
type RefreshToken struct {
	userID    collaboration.UserID
	raw       string
	hash      string
	expiresAt time.Time
}

// NewRefreshToken pairs a raw token with its hash for userID.
func NewRefreshToken(userID collaboration.UserID, raw, hash string, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		userID:    userID,
		raw:       raw,
		hash:      hash,
		expiresAt: expiresAt,
	}
}

func (t *RefreshToken) UserID() collaboration.UserID { return t.userID }
func (t *RefreshToken) Raw() string                  { return t.raw }
func (t *RefreshToken) Hash() string                 { return t.hash }
func (t *RefreshToken) ExpiresAt() time.Time         { return t.expiresAt }

// TTL returns the time left before expiry, never negative.
func (t *RefreshToken) TTL(now time.Time) time.Duration {
	if d := t.expiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
