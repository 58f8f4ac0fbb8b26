package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// TeamEntity is the GORM entity for teams.
type TeamEntity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name.
func (TeamEntity) TableName() string {
	return "teams"
}

// ToDomain converts to domain entity.
func (e *TeamEntity) ToDomain() *collaboration.Team {
	return collaboration.ReconstructTeam(
		collaboration.TeamID(e.ID),
		e.Name,
		e.Description,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// FromDomainTeam converts from domain entity.
func FromDomainTeam(t *collaboration.Team) *TeamEntity {
	return &TeamEntity{
		ID:          t.ID().UUID(),
		Name:        t.Name(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// TeamWithRoleRow represents a team joined with one member's role.
type TeamWithRoleRow struct {
	TeamEntity
	MemberRole string
}

// ToDomain converts to domain entity.
func (r *TeamWithRoleRow) ToDomain() *collaboration.TeamWithRole {
	return &collaboration.TeamWithRole{
		Team: r.TeamEntity.ToDomain(),
		Role: collaboration.TeamRole(r.MemberRole),
	}
}

// TeamMembershipEntity is the GORM entity for team memberships.
type TeamMembershipEntity struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_memberships_team_user"`
	Role     string    `gorm:"not null;default:member"`
	JoinedAt time.Time
}

// TableName returns the table name.
func (TeamMembershipEntity) TableName() string {
	return "team_memberships"
}

// ToDomain converts to domain entity.
func (e *TeamMembershipEntity) ToDomain() *collaboration.TeamMembership {
	return collaboration.ReconstructTeamMembership(
		collaboration.MembershipID(e.ID),
		collaboration.TeamID(e.TeamID),
		collaboration.UserID(e.UserID),
		collaboration.TeamRole(e.Role),
		e.JoinedAt,
	)
}

// FromDomainTeamMembership converts from domain entity.
func FromDomainTeamMembership(m *collaboration.TeamMembership) *TeamMembershipEntity {
	return &TeamMembershipEntity{
		ID:       m.ID().UUID(),
		TeamID:   m.TeamID().UUID(),
		UserID:   m.UserID().UUID(),
		Role:     m.Role().String(),
		JoinedAt: m.JoinedAt(),
	}
}

// MemberWithUserRow represents a join result.
type MemberWithUserRow struct {
	TeamMembershipEntity
	UserName      string
	UserEmail     string
	UserAvatarURL string
}

// ToDomain converts to domain entity.
func (r *MemberWithUserRow) ToDomain() *collaboration.MemberWithUser {
	return &collaboration.MemberWithUser{
		Membership:    r.TeamMembershipEntity.ToDomain(),
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
		UserAvatarURL: r.UserAvatarURL,
	}
}

// TeamInvitationEntity is the GORM entity for team invitations.
type TeamInvitationEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"not null;index"`
	Role      string    `gorm:"not null;default:member"`
	Token     string    `gorm:"not null;uniqueIndex"`
	InvitedBy uuid.UUID `gorm:"type:uuid;not null"`
	Status    string    `gorm:"not null;default:pending"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name.
func (TeamInvitationEntity) TableName() string {
	return "team_invitations"
}

// ToDomain converts to domain entity.
func (e *TeamInvitationEntity) ToDomain() *collaboration.TeamInvitation {
	return collaboration.ReconstructTeamInvitation(
		collaboration.InvitationID(e.ID),
		collaboration.TeamID(e.TeamID),
		collaboration.Email(e.Email),
		collaboration.TeamRole(e.Role),
		collaboration.InvitationToken(e.Token),
		collaboration.UserID(e.InvitedBy),
		collaboration.InvitationStatus(e.Status),
		e.ExpiresAt,
		e.CreatedAt,
	)
}

// FromDomainTeamInvitation converts from domain entity.
func FromDomainTeamInvitation(i *collaboration.TeamInvitation) *TeamInvitationEntity {
	return &TeamInvitationEntity{
		ID:        i.ID().UUID(),
		TeamID:    i.TeamID().UUID(),
		Email:     i.Email().String(),
		Role:      i.Role().String(),
		Token:     i.Token().String(),
		InvitedBy: i.InvitedBy().UUID(),
		Status:    i.Status().String(),
		ExpiresAt: i.ExpiresAt(),
		CreatedAt: i.CreatedAt(),
		UpdatedAt: i.CreatedAt(),
	}
}

// InvitationWithDetailsRow represents an invitation joined with team and
// inviter names.
type InvitationWithDetailsRow struct {
	TeamInvitationEntity
	TeamName    string
	InviterName *string
}

// ToDomain converts to domain entity.
func (r *InvitationWithDetailsRow) ToDomain() *collaboration.InvitationWithDetails {
	d := &collaboration.InvitationWithDetails{
		Invitation: r.TeamInvitationEntity.ToDomain(),
		TeamName:   r.TeamName,
	}
	if r.InviterName != nil {
		d.InviterName = *r.InviterName
	}
	return d
}
