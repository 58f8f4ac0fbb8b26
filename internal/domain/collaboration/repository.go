package collaboration

import "context"

// TeamRepository persists teams and their memberships.
type TeamRepository interface {
	// Create persists the team together with the owner's membership in one transaction.
	Create(ctx context.Context, team *Team, ownerID UserID) (*Team, error)

	// FindByID returns ErrTeamNotFound when absent.
	FindByID(ctx context.Context, id TeamID) (*Team, error)

	// FindByIDWithMembership returns the team and the user's membership.
	// The membership is nil when the user is not a member.
	FindByIDWithMembership(ctx context.Context, teamID TeamID, userID UserID) (*Team, *TeamMembership, error)

	Update(ctx context.Context, team *Team) error

	// Delete removes the team, cascading memberships and invitations.
	Delete(ctx context.Context, id TeamID) error

	// FindByUserID lists the teams the user belongs to along with the user's role.
	FindByUserID(ctx context.Context, userID UserID) ([]*TeamWithRole, error)

	GetMemberships(ctx context.Context, teamID TeamID) ([]*MemberWithUser, error)

	// GetMembership returns ErrMembershipNotFound when absent.
	GetMembership(ctx context.Context, teamID TeamID, userID UserID) (*TeamMembership, error)

	// AddMembership returns ErrAlreadyMember when the user already belongs to the team.
	AddMembership(ctx context.Context, m *TeamMembership) error

	// UpdateMembership writes m only if the stored role still equals previous,
	// returning ErrConcurrentUpdate otherwise.
	UpdateMembership(ctx context.Context, m *TeamMembership, previous TeamRole) error

	RemoveMembership(ctx context.Context, teamID TeamID, userID UserID) error
	CountMembers(ctx context.Context, teamID TeamID) (int64, error)
	IsMember(ctx context.Context, teamID TeamID, userID UserID) (bool, error)
	IsEmailMember(ctx context.Context, teamID TeamID, email Email) (bool, error)
}

// InvitationRepository persists invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *TeamInvitation) error

	// FindByID returns ErrInvitationNotFound when absent.
	FindByID(ctx context.Context, id InvitationID) (*TeamInvitation, error)

	// FindByToken returns ErrInvitationNotFound when absent.
	FindByToken(ctx context.Context, token InvitationToken) (*TeamInvitation, error)

	// Update writes inv only if the stored status still equals expected,
	// returning ErrInvitationNotPending otherwise.
	Update(ctx context.Context, inv *TeamInvitation, expected InvitationStatus) error

	Delete(ctx context.Context, id InvitationID) error

	// FindPendingByEmail lists pending invitations addressed to email.
	FindPendingByEmail(ctx context.Context, email Email) ([]*InvitationWithDetails, error)

	// FindPendingByTeamAndEmail returns ErrInvitationNotFound when none is pending.
	FindPendingByTeamAndEmail(ctx context.Context, teamID TeamID, email Email) (*TeamInvitation, error)

	// FindByTeam lists a team's invitations, optionally filtered by status.
	FindByTeam(ctx context.Context, teamID TeamID, status *InvitationStatus) ([]*TeamInvitation, error)
}

// Transactor runs fn in a single transaction. Repositories called with the
// context passed to fn take part in that transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserInfo is the part of a user account the engine needs.
type UserInfo struct {
	ID        UserID
	Email     Email
	Name      string
	AvatarURL string
}

// UserLookup resolves users owned by the account subsystem.
type UserLookup interface {
	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id UserID) (*UserInfo, error)
}

// TokenGenerator produces invitation tokens.
type TokenGenerator interface {
	Generate() (InvitationToken, error)
}
