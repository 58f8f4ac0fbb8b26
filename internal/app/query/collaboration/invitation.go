package collaboration

import (
	"context"
	"time"

	cmd "github.com/teamhub/server/internal/app/command/collaboration"
	"github.com/teamhub/server/internal/domain/collaboration"
)

// ListTeamInvitationsQuery represents a query to list a team's invitations.
type ListTeamInvitationsQuery struct {
	RequesterID string
	TeamID      string
	Status      string
}

// ListInvitationsResult is the result of listing invitations.
type ListInvitationsResult struct {
	Invitations []*cmd.InvitationDTO
}

// ListTeamInvitationsHandler lists invitations for team managers.
type ListTeamInvitationsHandler struct {
	teams       collaboration.TeamRepository
	invitations collaboration.InvitationRepository
	now         func() time.Time
}

// NewListTeamInvitationsHandler creates a new handler.
func NewListTeamInvitationsHandler(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
) *ListTeamInvitationsHandler {
	return &ListTeamInvitationsHandler{teams: teams, invitations: invitations, now: time.Now}
}

// Handle executes the query.
func (h *ListTeamInvitationsHandler) Handle(ctx context.Context, q ListTeamInvitationsQuery) (*ListInvitationsResult, error) {
	userID, err := collaboration.ParseUserID(q.RequesterID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(q.TeamID)
	if err != nil {
		return nil, err
	}
	var status *collaboration.InvitationStatus
	if q.Status != "" {
		s, err := collaboration.ParseInvitationStatus(q.Status)
		if err != nil {
			return nil, err
		}
		status = &s
	}

	team, membership, err := h.teams.FindByIDWithMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil || !membership.CanManageMembers() {
		return nil, collaboration.Deny("view invitations")
	}

	invitations, err := h.invitations.FindByTeam(ctx, teamID, status)
	if err != nil {
		return nil, err
	}

	now := h.now()
	dtos := make([]*cmd.InvitationDTO, 0, len(invitations))
	for _, inv := range invitations {
		dto := cmd.InvitationToDTO(inv, now)
		dto.TeamName = team.Name()
		dtos = append(dtos, dto)
	}
	return &ListInvitationsResult{Invitations: dtos}, nil
}

// ListMyInvitationsQuery represents a query to list invitations addressed to the requester.
type ListMyInvitationsQuery struct {
	RequesterID string
}

// ListMyInvitationsHandler lists live pending invitations for the requester's email.
type ListMyInvitationsHandler struct {
	invitations collaboration.InvitationRepository
	users       collaboration.UserLookup
	now         func() time.Time
}

// NewListMyInvitationsHandler creates a new handler.
func NewListMyInvitationsHandler(
	invitations collaboration.InvitationRepository,
	users collaboration.UserLookup,
) *ListMyInvitationsHandler {
	return &ListMyInvitationsHandler{invitations: invitations, users: users, now: time.Now}
}

// Handle executes the query.
func (h *ListMyInvitationsHandler) Handle(ctx context.Context, q ListMyInvitationsQuery) (*ListInvitationsResult, error) {
	userID, err := collaboration.ParseUserID(q.RequesterID)
	if err != nil {
		return nil, err
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := h.invitations.FindPendingByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	now := h.now()
	dtos := make([]*cmd.InvitationDTO, 0, len(rows))
	for _, row := range rows {
		if !row.Invitation.IsActionable(now) {
			continue
		}
		dto := cmd.InvitationToDTO(row.Invitation, now)
		dto.TeamName = row.TeamName
		dto.InviterName = row.InviterName
		dto.Token = row.Invitation.Token().String()
		dtos = append(dtos, dto)
	}
	return &ListInvitationsResult{Invitations: dtos}, nil
}

// GetInvitationByTokenQuery represents a query to preview an invitation.
type GetInvitationByTokenQuery struct {
	Token string
}

// GetInvitationResult is the result of previewing an invitation.
type GetInvitationResult struct {
	Invitation *cmd.InvitationDTO
}

// GetInvitationByTokenHandler previews an invitation for whoever holds its token.
type GetInvitationByTokenHandler struct {
	teams       collaboration.TeamRepository
	invitations collaboration.InvitationRepository
	users       collaboration.UserLookup
	now         func() time.Time
}

// NewGetInvitationByTokenHandler creates a new handler.
func NewGetInvitationByTokenHandler(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
	users collaboration.UserLookup,
) *GetInvitationByTokenHandler {
	return &GetInvitationByTokenHandler{teams: teams, invitations: invitations, users: users, now: time.Now}
}

// Handle executes the query. Display names are best-effort.
func (h *GetInvitationByTokenHandler) Handle(ctx context.Context, q GetInvitationByTokenQuery) (*GetInvitationResult, error) {
	token, err := collaboration.ParseInvitationToken(q.Token)
	if err != nil {
		return nil, err
	}

	inv, err := h.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	dto := cmd.InvitationToDTO(inv, h.now())
	if team, err := h.teams.FindByID(ctx, inv.TeamID()); err == nil {
		dto.TeamName = team.Name()
	}
	if inviter, err := h.users.FindByID(ctx, inv.InvitedBy()); err == nil {
		dto.InviterName = inviter.Name
	}
	return &GetInvitationResult{Invitation: dto}, nil
}
