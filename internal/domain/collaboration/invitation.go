package collaboration

import "time"

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// ParseInvitationStatus validates s against the closed set of statuses.
func ParseInvitationStatus(s string) (InvitationStatus, error) {
	switch st := InvitationStatus(s); st {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusRejected, InvitationStatusExpired:
		return st, nil
	}
	return "", ErrInvalidInvitationStatus
}

func (s InvitationStatus) String() string { return string(s) }

// TeamInvitation is an email-addressed, time-boxed offer to join a team.
//
// State transitions return new values:
//
//	pending -> accepted | rejected | expired
//
// Every other state is terminal. Expiry is derived from expiresAt on each
// check, so a stale pending row past its deadline is still treated as expired.
type TeamInvitation struct {
	id        InvitationID
	teamID    TeamID
	email     Email
	role      TeamRole
	token     InvitationToken
	invitedBy UserID
	status    InvitationStatus
	expiresAt time.Time
	createdAt time.Time
}

// NewTeamInvitation creates a pending invitation valid for ttl from now.
func NewTeamInvitation(
	teamID TeamID,
	email Email,
	role TeamRole,
	token InvitationToken,
	invitedBy UserID,
	now time.Time,
	ttl time.Duration,
) (*TeamInvitation, error) {
	if role.IsOwner() {
		return nil, ErrOwnerRoleNotAssignable
	}
	if _, ok := roleRank[role]; !ok {
		return nil, ErrInvalidTeamRole
	}
	if token == "" {
		return nil, ErrInvalidInvitationToken
	}
	return &TeamInvitation{
		id:        NewInvitationID(),
		teamID:    teamID,
		email:     email,
		role:      role,
		token:     token,
		invitedBy: invitedBy,
		status:    InvitationStatusPending,
		expiresAt: now.Add(ttl),
		createdAt: now,
	}, nil
}

// ReconstructTeamInvitation reconstructs an invitation from persistence.
func ReconstructTeamInvitation(
	id InvitationID,
	teamID TeamID,
	email Email,
	role TeamRole,
	token InvitationToken,
	invitedBy UserID,
	status InvitationStatus,
	expiresAt time.Time,
	createdAt time.Time,
) *TeamInvitation {
	return &TeamInvitation{
		id:        id,
		teamID:    teamID,
		email:     email,
		role:      role,
		token:     token,
		invitedBy: invitedBy,
		status:    status,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

// Getters
func (i *TeamInvitation) ID() InvitationID         { return i.id }
func (i *TeamInvitation) TeamID() TeamID           { return i.teamID }
func (i *TeamInvitation) Email() Email             { return i.email }
func (i *TeamInvitation) Role() TeamRole           { return i.role }
func (i *TeamInvitation) Token() InvitationToken   { return i.token }
func (i *TeamInvitation) InvitedBy() UserID        { return i.invitedBy }
func (i *TeamInvitation) Status() InvitationStatus { return i.status }
func (i *TeamInvitation) ExpiresAt() time.Time     { return i.expiresAt }
func (i *TeamInvitation) CreatedAt() time.Time     { return i.createdAt }

// IsPending reports whether the persisted status is pending.
func (i *TeamInvitation) IsPending() bool {
	return i.status == InvitationStatusPending
}

// IsExpired reports whether now is past the deadline.
func (i *TeamInvitation) IsExpired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// IsActionable reports whether the invitation can still be accepted or rejected.
func (i *TeamInvitation) IsActionable(now time.Time) bool {
	return i.IsPending() && !i.IsExpired(now)
}

// EffectiveStatus is the status a reader should see at now.
func (i *TeamInvitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.IsPending() && i.IsExpired(now) {
		return InvitationStatusExpired
	}
	return i.status
}

// Accept returns the accepted invitation. Expiry is checked first, then the
// pending state, then the email match.
func (i *TeamInvitation) Accept(email Email, now time.Time) (*TeamInvitation, error) {
	if i.IsExpired(now) {
		return nil, ErrInvitationExpired
	}
	if !i.IsPending() {
		return nil, ErrInvitationNotPending
	}
	if i.email != email {
		return nil, ErrInvitationEmailMismatch
	}
	return i.withStatus(InvitationStatusAccepted), nil
}

// Reject returns the rejected invitation.
func (i *TeamInvitation) Reject() (*TeamInvitation, error) {
	if !i.IsPending() {
		return nil, ErrInvitationNotPending
	}
	return i.withStatus(InvitationStatusRejected), nil
}

// MarkExpired returns the invitation with status expired.
func (i *TeamInvitation) MarkExpired() *TeamInvitation {
	return i.withStatus(InvitationStatusExpired)
}

func (i *TeamInvitation) withStatus(s InvitationStatus) *TeamInvitation {
	c := *i
	c.status = s
	return &c
}

// InvitationWithDetails is an invitation joined with display names.
type InvitationWithDetails struct {
	Invitation  *TeamInvitation
	TeamName    string
	InviterName string
}
