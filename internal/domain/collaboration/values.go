// Package collaboration contains the team authorization and invitation domain.
package collaboration

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxEmailLength = 254
	maxTokenLength = 128
)

var validate = validator.New()

// UserID identifies a user.
type UserID uuid.UUID

// TeamID identifies a team.
type TeamID uuid.UUID

// MembershipID identifies a team membership.
type MembershipID uuid.UUID

// InvitationID identifies a team invitation.
type InvitationID uuid.UUID

func NewUserID() UserID             { return UserID(uuid.New()) }
func NewTeamID() TeamID             { return TeamID(uuid.New()) }
func NewMembershipID() MembershipID { return MembershipID(uuid.New()) }
func NewInvitationID() InvitationID { return InvitationID(uuid.New()) }

func (id UserID) UUID() uuid.UUID       { return uuid.UUID(id) }
func (id TeamID) UUID() uuid.UUID       { return uuid.UUID(id) }
func (id MembershipID) UUID() uuid.UUID { return uuid.UUID(id) }
func (id InvitationID) UUID() uuid.UUID { return uuid.UUID(id) }

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id TeamID) String() string       { return uuid.UUID(id).String() }
func (id MembershipID) String() string { return uuid.UUID(id).String() }
func (id InvitationID) String() string { return uuid.UUID(id).String() }

// ParseUUID parses a non-nil UUID, failing with ErrInvalidID.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

// ParseUserID parses a user identifier.
func ParseUserID(s string) (UserID, error) {
	id, err := ParseUUID(s)
	return UserID(id), err
}

// ParseTeamID parses a team identifier.
func ParseTeamID(s string) (TeamID, error) {
	id, err := ParseUUID(s)
	return TeamID(id), err
}

// ParseInvitationID parses an invitation identifier.
func ParseInvitationID(s string) (InvitationID, error) {
	id, err := ParseUUID(s)
	return InvitationID(id), err
}

// Email is a normalized (trimmed, lowercase) email address.
type Email string

// ParseEmail normalizes and validates an email address.
func ParseEmail(s string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" || len(normalized) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	if err := validate.Var(normalized, "email"); err != nil {
		return "", ErrInvalidEmail
	}
	return Email(normalized), nil
}

func (e Email) String() string { return string(e) }

// InvitationToken is the opaque single-use secret sent to an invitee.
type InvitationToken string

// ParseInvitationToken validates a token received from a client.
func ParseInvitationToken(s string) (InvitationToken, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxTokenLength {
		return "", ErrInvalidInvitationToken
	}
	return InvitationToken(s), nil
}

func (t InvitationToken) String() string { return string(t) }
