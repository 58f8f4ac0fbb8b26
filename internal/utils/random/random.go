package random

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Hex generates a cryptographically secure random hex string.
// The output length is twice the input length (each byte = 2 hex chars).
func Hex(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// SHA256Hex returns the hex encoded SHA-256 digest of s.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NanoID generates a URL-safe NanoID of the given length.
func NanoID(length int) (string, error) {
	id, err := gonanoid.New(length)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}

// InvitationTokens generates invitation tokens as NanoIDs.
type InvitationTokens struct {
	length int
}

// NewInvitationTokens creates a generator for tokens of length characters.
func NewInvitationTokens(length int) *InvitationTokens {
	return &InvitationTokens{length: length}
}

var _ collaboration.TokenGenerator = (*InvitationTokens)(nil)

// Generate returns a fresh invitation token.
func (g *InvitationTokens) Generate() (collaboration.InvitationToken, error) {
	id, err := NanoID(g.length)
	if err != nil {
		return "", err
	}
	return collaboration.ParseInvitationToken(id)
}
