package collaboration

import "time"

// TeamMembership binds a user to a team with a role.
type TeamMembership struct {
	id       MembershipID
	userID   UserID
	teamID   TeamID
	role     TeamRole
	joinedAt time.Time
}

// NewTeamMembership creates a membership joined at now.
func NewTeamMembership(teamID TeamID, userID UserID, role TeamRole, now time.Time) *TeamMembership {
	return &TeamMembership{
		id:       NewMembershipID(),
		userID:   userID,
		teamID:   teamID,
		role:     role,
		joinedAt: now,
	}
}

// ReconstructTeamMembership reconstructs a membership from persistence.
func ReconstructTeamMembership(
	id MembershipID,
	teamID TeamID,
	userID UserID,
	role TeamRole,
	joinedAt time.Time,
) *TeamMembership {
	return &TeamMembership{
		id:       id,
		userID:   userID,
		teamID:   teamID,
		role:     role,
		joinedAt: joinedAt,
	}
}

// Getters
func (m *TeamMembership) ID() MembershipID    { return m.id }
func (m *TeamMembership) UserID() UserID      { return m.userID }
func (m *TeamMembership) TeamID() TeamID      { return m.teamID }
func (m *TeamMembership) Role() TeamRole      { return m.role }
func (m *TeamMembership) JoinedAt() time.Time { return m.joinedAt }

// ChangeRole returns a copy of the membership holding newRole.
// Callers are responsible for authorizing the change.
func (m *TeamMembership) ChangeRole(newRole TeamRole) *TeamMembership {
	c := *m
	c.role = newRole
	return &c
}

// CanManageMembers reports whether the member may invite, cancel, remove, or re-role others.
func (m *TeamMembership) CanManageMembers() bool {
	return m.role.IsAtLeast(RoleAdmin)
}

// CanModifyTeam reports whether the member may edit team metadata.
func (m *TeamMembership) CanModifyTeam() bool {
	return m.role.IsAtLeast(RoleAdmin)
}

// CanDeleteTeam reports whether the member may delete the team.
func (m *TeamMembership) CanDeleteTeam() bool {
	return m.role.IsOwner()
}

// CanInviteAs reports whether the member may invite someone with target role.
func (m *TeamMembership) CanInviteAs(target TeamRole) bool {
	switch m.role {
	case RoleOwner:
		return target == RoleAdmin || target == RoleMember
	case RoleAdmin:
		return target == RoleMember
	default:
		return false
	}
}

// CanRemove reports whether the member may remove a member holding target role.
func (m *TeamMembership) CanRemove(target TeamRole) bool {
	switch m.role {
	case RoleOwner:
		return target != RoleOwner
	case RoleAdmin:
		return target == RoleMember
	default:
		return false
	}
}

// MemberWithUser is a membership joined with the member's profile.
type MemberWithUser struct {
	Membership    *TeamMembership
	UserName      string
	UserEmail     string
	UserAvatarURL string
}

// TeamWithRole is a team together with the caller's role in it.
type TeamWithRole struct {
	Team *Team
	Role TeamRole
}
