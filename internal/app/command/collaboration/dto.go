package collaboration

import (
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// TeamDTO represents a team (shared with query package).
type TeamDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MyRole      string  `json:"my_role,omitempty"`
	MemberCount int64   `json:"member_count,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// MemberDTO represents a team membership (shared with query package).
type MemberDTO struct {
	ID        string `json:"id"`
	TeamID    string `json:"team_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
	JoinedAt  int64  `json:"joined_at"`
}

// InvitationDTO represents an invitation (shared with query package).
// Token and AcceptURL are only filled for the inviter right after creation.
type InvitationDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	InvitedBy   string `json:"invited_by"`
	InviterName string `json:"inviter_name,omitempty"`
	Token       string `json:"token,omitempty"`
	AcceptURL   string `json:"accept_url,omitempty"`
	ExpiresAt   int64  `json:"expires_at"`
	CreatedAt   int64  `json:"created_at"`
}

// TeamToDTO converts a team to its DTO.
func TeamToDTO(t *collaboration.Team) *TeamDTO {
	return &TeamDTO{
		ID:          t.ID().String(),
		Name:        t.Name(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt().Unix(),
		UpdatedAt:   t.UpdatedAt().Unix(),
	}
}

// MemberToDTO converts a membership to its DTO.
func MemberToDTO(m *collaboration.TeamMembership) *MemberDTO {
	return &MemberDTO{
		ID:       m.ID().String(),
		TeamID:   m.TeamID().String(),
		UserID:   m.UserID().String(),
		Role:     m.Role().String(),
		JoinedAt: m.JoinedAt().Unix(),
	}
}

// InvitationToDTO converts an invitation to its DTO without the token.
// The status shown is the one in effect at now.
func InvitationToDTO(inv *collaboration.TeamInvitation, now time.Time) *InvitationDTO {
	return &InvitationDTO{
		ID:        inv.ID().String(),
		TeamID:    inv.TeamID().String(),
		Email:     inv.Email().String(),
		Role:      inv.Role().String(),
		Status:    inv.EffectiveStatus(now).String(),
		InvitedBy: inv.InvitedBy().String(),
		ExpiresAt: inv.ExpiresAt().Unix(),
		CreatedAt: inv.CreatedAt().Unix(),
	}
}
