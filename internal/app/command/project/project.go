package project

import (
	"context"
	"errors"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
)

// ProjectDTO represents a project (shared with query package).
type ProjectDTO struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Position    int     `json:"position"`
	Archived    bool    `json:"archived"`
	ArchivedAt  *int64  `json:"archived_at,omitempty"`
	CreatedBy   string  `json:"created_by"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// ToDTO converts a project to its DTO.
func ToDTO(p *project.Project) *ProjectDTO {
	dto := &ProjectDTO{
		ID:          p.ID().String(),
		TeamID:      p.TeamID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Position:    p.Position(),
		Archived:    p.IsArchived(),
		CreatedBy:   p.CreatedBy().String(),
		CreatedAt:   p.CreatedAt().Unix(),
		UpdatedAt:   p.UpdatedAt().Unix(),
	}
	if at := p.ArchivedAt(); at != nil {
		ts := at.Unix()
		dto.ArchivedAt = &ts
	}
	return dto
}

// access resolves the actor's membership in teamID and checks allowed.
func access(
	ctx context.Context,
	teams collaboration.TeamRepository,
	teamID collaboration.TeamID,
	actorID collaboration.UserID,
	action string,
	allowed func(*collaboration.TeamMembership) bool,
) error {
	m, err := teams.GetMembership(ctx, teamID, actorID)
	if err != nil {
		if errors.Is(err, collaboration.ErrMembershipNotFound) {
			return collaboration.Deny(action)
		}
		return err
	}
	if allowed != nil && !allowed(m) {
		return collaboration.Deny(action)
	}
	return nil
}

func anyMember(*collaboration.TeamMembership) bool { return true }

func canManage(m *collaboration.TeamMembership) bool { return m.CanManageMembers() }

func canModify(m *collaboration.TeamMembership) bool { return m.CanModifyTeam() }

// CreateProjectCommand represents a command to create a project.
type CreateProjectCommand struct {
	ActorID     string
	TeamID      string
	Name        string
	Description *string
}

// CreateProjectHandler handles project creation. Any member may create.
type CreateProjectHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
	now      func() time.Time
}

// NewCreateProjectHandler creates a new handler.
func NewCreateProjectHandler(teams collaboration.TeamRepository, projects project.Repository) *CreateProjectHandler {
	return &CreateProjectHandler{teams: teams, projects: projects, now: time.Now}
}

// Handle executes the command.
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd CreateProjectCommand) (*ProjectDTO, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return nil, err
	}

	if _, err := h.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := access(ctx, h.teams, teamID, actorID, "create project", anyMember); err != nil {
		return nil, err
	}

	position, err := h.projects.NextPosition(ctx, teamID)
	if err != nil {
		return nil, err
	}

	p, err := project.NewProject(teamID, cmd.Name, cmd.Description, position, actorID, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToDTO(p), nil
}

// UpdateProjectCommand represents a command to edit a project.
type UpdateProjectCommand struct {
	ActorID     string
	ProjectID   string
	Name        *string
	Description *string
}

// UpdateProjectHandler handles project edits. Any member may edit an active project.
type UpdateProjectHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
	now      func() time.Time
}

// NewUpdateProjectHandler creates a new handler.
func NewUpdateProjectHandler(teams collaboration.TeamRepository, projects project.Repository) *UpdateProjectHandler {
	return &UpdateProjectHandler{teams: teams, projects: projects, now: time.Now}
}

// Handle executes the command.
func (h *UpdateProjectHandler) Handle(ctx context.Context, cmd UpdateProjectCommand) (*ProjectDTO, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	projectID, err := project.ParseID(cmd.ProjectID)
	if err != nil {
		return nil, err
	}

	p, err := h.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access(ctx, h.teams, p.TeamID(), actorID, "update project", anyMember); err != nil {
		return nil, err
	}

	updated, err := p.Update(project.Patch{Name: cmd.Name, Description: cmd.Description}, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.projects.Update(ctx, updated); err != nil {
		return nil, err
	}
	return ToDTO(updated), nil
}

// ProjectCommand identifies a project acted on by a user.
type ProjectCommand struct {
	ActorID   string
	ProjectID string
}

// ArchiveProjectHandler archives and restores projects. Admins and owners only.
type ArchiveProjectHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
	now      func() time.Time
}

// NewArchiveProjectHandler creates a new handler.
func NewArchiveProjectHandler(teams collaboration.TeamRepository, projects project.Repository) *ArchiveProjectHandler {
	return &ArchiveProjectHandler{teams: teams, projects: projects, now: time.Now}
}

// Archive archives an active project.
func (h *ArchiveProjectHandler) Archive(ctx context.Context, cmd ProjectCommand) (*ProjectDTO, error) {
	p, err := h.load(ctx, cmd, "archive project")
	if err != nil {
		return nil, err
	}
	archived, err := p.Archive(h.now())
	if err != nil {
		return nil, err
	}
	if err := h.projects.Update(ctx, archived); err != nil {
		return nil, err
	}
	return ToDTO(archived), nil
}

// Restore reactivates an archived project at the end of the list.
func (h *ArchiveProjectHandler) Restore(ctx context.Context, cmd ProjectCommand) (*ProjectDTO, error) {
	p, err := h.load(ctx, cmd, "restore project")
	if err != nil {
		return nil, err
	}
	if !p.IsArchived() {
		return nil, project.ErrProjectNotArchived
	}
	position, err := h.projects.NextPosition(ctx, p.TeamID())
	if err != nil {
		return nil, err
	}
	restored, err := p.Restore(position, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.projects.Update(ctx, restored); err != nil {
		return nil, err
	}
	return ToDTO(restored), nil
}

func (h *ArchiveProjectHandler) load(ctx context.Context, cmd ProjectCommand, action string) (*project.Project, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	projectID, err := project.ParseID(cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	p, err := h.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access(ctx, h.teams, p.TeamID(), actorID, action, canManage); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProjectHandler handles project deletion. Admins and owners only.
type DeleteProjectHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
}

// NewDeleteProjectHandler creates a new handler.
func NewDeleteProjectHandler(teams collaboration.TeamRepository, projects project.Repository) *DeleteProjectHandler {
	return &DeleteProjectHandler{teams: teams, projects: projects}
}

// Handle executes the command.
func (h *DeleteProjectHandler) Handle(ctx context.Context, cmd ProjectCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	projectID, err := project.ParseID(cmd.ProjectID)
	if err != nil {
		return err
	}

	p, err := h.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := access(ctx, h.teams, p.TeamID(), actorID, "delete project", canModify); err != nil {
		return err
	}
	return h.projects.Delete(ctx, p.ID())
}

// ReorderProjectsCommand represents a command to reorder a team's active projects.
type ReorderProjectsCommand struct {
	ActorID    string
	TeamID     string
	ProjectIDs []string
}

// ReorderProjectsHandler rewrites project positions in one transaction.
type ReorderProjectsHandler struct {
	teams    collaboration.TeamRepository
	projects project.Repository
	tx       collaboration.Transactor
	now      func() time.Time
}

// NewReorderProjectsHandler creates a new handler.
func NewReorderProjectsHandler(
	teams collaboration.TeamRepository,
	projects project.Repository,
	tx collaboration.Transactor,
) *ReorderProjectsHandler {
	return &ReorderProjectsHandler{teams: teams, projects: projects, tx: tx, now: time.Now}
}

// Handle executes the command.
func (h *ReorderProjectsHandler) Handle(ctx context.Context, cmd ReorderProjectsCommand) ([]*ProjectDTO, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return nil, err
	}
	ordered := make([]project.ID, len(cmd.ProjectIDs))
	for i, raw := range cmd.ProjectIDs {
		if ordered[i], err = project.ParseID(raw); err != nil {
			return nil, err
		}
	}

	if _, err := h.teams.FindByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := access(ctx, h.teams, teamID, actorID, "reorder projects", canManage); err != nil {
		return nil, err
	}

	var result []*project.Project
	err = h.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		active, err := h.projects.ListByTeam(ctx, teamID, false)
		if err != nil {
			return err
		}
		moved, err := project.Reorder(active, ordered, h.now())
		if err != nil {
			return err
		}
		for _, p := range moved {
			if err := h.projects.Update(ctx, p); err != nil {
				return err
			}
		}
		result = applyMoves(active, moved)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]*ProjectDTO, len(result))
	for _, p := range result {
		dtos[p.Position()] = ToDTO(p)
	}
	return dtos, nil
}

func applyMoves(active, moved []*project.Project) []*project.Project {
	byID := make(map[project.ID]*project.Project, len(moved))
	for _, p := range moved {
		byID[p.ID()] = p
	}
	out := make([]*project.Project, len(active))
	for i, p := range active {
		if m, ok := byID[p.ID()]; ok {
			p = m
		}
		out[i] = p
	}
	return out
}
