package collaboration

import (
	"context"
	"sort"

	cmd "github.com/teamhub/server/internal/app/command/collaboration"
	"github.com/teamhub/server/internal/domain/collaboration"
)

// GetTeamQuery represents a query to get a team.
type GetTeamQuery struct {
	RequesterID string
	TeamID      string
}

// GetTeamResult is the result of getting a team.
type GetTeamResult struct {
	Team *cmd.TeamDTO
}

// GetTeamHandler handles team retrieval. Teams are only visible to members.
type GetTeamHandler struct {
	teams collaboration.TeamRepository
}

// NewGetTeamHandler creates a new handler.
func NewGetTeamHandler(teams collaboration.TeamRepository) *GetTeamHandler {
	return &GetTeamHandler{teams: teams}
}

// Handle executes the query.
func (h *GetTeamHandler) Handle(ctx context.Context, q GetTeamQuery) (*GetTeamResult, error) {
	userID, err := collaboration.ParseUserID(q.RequesterID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(q.TeamID)
	if err != nil {
		return nil, err
	}

	team, membership, err := h.teams.FindByIDWithMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, collaboration.ErrTeamNotFound
	}

	count, err := h.teams.CountMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	dto := cmd.TeamToDTO(team)
	dto.MyRole = membership.Role().String()
	dto.MemberCount = count
	return &GetTeamResult{Team: dto}, nil
}

// ListMyTeamsQuery represents a query to list the requester's teams.
type ListMyTeamsQuery struct {
	RequesterID string
}

// ListMyTeamsResult is the result of listing teams.
type ListMyTeamsResult struct {
	Teams []*cmd.TeamDTO
}

// ListMyTeamsHandler handles listing a user's teams.
type ListMyTeamsHandler struct {
	teams collaboration.TeamRepository
}

// NewListMyTeamsHandler creates a new handler.
func NewListMyTeamsHandler(teams collaboration.TeamRepository) *ListMyTeamsHandler {
	return &ListMyTeamsHandler{teams: teams}
}

// Handle executes the query.
func (h *ListMyTeamsHandler) Handle(ctx context.Context, q ListMyTeamsQuery) (*ListMyTeamsResult, error) {
	userID, err := collaboration.ParseUserID(q.RequesterID)
	if err != nil {
		return nil, err
	}

	rows, err := h.teams.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*cmd.TeamDTO, 0, len(rows))
	for _, row := range rows {
		dto := cmd.TeamToDTO(row.Team)
		dto.MyRole = row.Role.String()
		dtos = append(dtos, dto)
	}
	return &ListMyTeamsResult{Teams: dtos}, nil
}

// ListMembersQuery represents a query to list a team's members.
type ListMembersQuery struct {
	RequesterID string
	TeamID      string
}

// ListMembersResult is the result of listing members.
type ListMembersResult struct {
	Members []*cmd.MemberDTO
}

// ListMembersHandler handles member listing.
type ListMembersHandler struct {
	teams collaboration.TeamRepository
}

// NewListMembersHandler creates a new handler.
func NewListMembersHandler(teams collaboration.TeamRepository) *ListMembersHandler {
	return &ListMembersHandler{teams: teams}
}

// Handle executes the query. Members are ordered by role, highest first, then by join time.
func (h *ListMembersHandler) Handle(ctx context.Context, q ListMembersQuery) (*ListMembersResult, error) {
	userID, err := collaboration.ParseUserID(q.RequesterID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(q.TeamID)
	if err != nil {
		return nil, err
	}

	_, membership, err := h.teams.FindByIDWithMembership(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, collaboration.Deny("view members")
	}

	rows, err := h.teams.GetMemberships(ctx, teamID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Membership, rows[j].Membership
		if a.Role() != b.Role() {
			return a.Role().IsHigherThan(b.Role())
		}
		return a.JoinedAt().Before(b.JoinedAt())
	})

	members := make([]*cmd.MemberDTO, 0, len(rows))
	for _, row := range rows {
		dto := cmd.MemberToDTO(row.Membership)
		dto.Name = row.UserName
		dto.Email = row.UserEmail
		dto.AvatarURL = row.UserAvatarURL
		members = append(members, dto)
	}
	return &ListMembersResult{Members: members}, nil
}
