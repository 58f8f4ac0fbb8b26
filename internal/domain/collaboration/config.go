package collaboration

import "time"

// Config holds collaboration domain configuration.
type Config struct {
	// InvitationExpiry is how long an invitation stays valid.
	InvitationExpiry time.Duration

	// InvitationTokenLength is the length of generated invitation tokens.
	InvitationTokenLength int

	// AcceptBaseURL prefixes the token in links handed to invitees.
	AcceptBaseURL string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		InvitationExpiry:      7 * 24 * time.Hour,
		InvitationTokenLength: 32,
	}
}

// Validate fills unset values with defaults.
func (c *Config) Validate() error {
	if c.InvitationExpiry <= 0 {
		c.InvitationExpiry = 7 * 24 * time.Hour
	}
	if c.InvitationTokenLength <= 0 {
		c.InvitationTokenLength = 32
	}
	if c.InvitationTokenLength > maxTokenLength {
		c.InvitationTokenLength = maxTokenLength
	}
	return nil
}

// AcceptURL returns the link an invitee follows to accept token.
func (c *Config) AcceptURL(token InvitationToken) string {
	if c.AcceptBaseURL == "" {
		return ""
	}
	return c.AcceptBaseURL + "/" + token.String()
}
