package project

import (
	"context"

	cmd "github.com/teamhub/server/internal/app/command/project"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
)

// ListProjectsQuery represents a query to list a team's projects.
type ListProjectsQuery struct {
	RequesterID     string
	TeamID          string
	IncludeArchived bool
}

// ListProjectsHandler lists projects for team members.
type ListProjectsHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
}

// NewListProjectsHandler creates a new handler.
func NewListProjectsHandler(teams collaboration.TeamRepository, projects project.Repository) *ListProjectsHandler {
	return &ListProjectsHandler{teams: teams, projects: projects}
}

// Handle executes the query.
func (h *ListProjectsHandler) Handle(ctx context.Context, q ListProjectsQuery) ([]*cmd.ProjectDTO, error) {
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
		return nil, collaboration.Deny("view projects")
	}

	projects, err := h.projects.ListByTeam(ctx, teamID, q.IncludeArchived)
	if err != nil {
		return nil, err
	}

	dtos := make([]*cmd.ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = cmd.ToDTO(p)
	}
	return dtos, nil
}
