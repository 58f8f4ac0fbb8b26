package collaboration

import (
	"context"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// CreateTeamCommand represents a command to create a team.
type CreateTeamCommand struct {
	ActorID     string
	Name        string
	Description *string
}

// CreateTeamResult is the result of creating a team.
type CreateTeamResult struct {
	Team *TeamDTO
}

// CreateTeamHandler handles team creation.
type CreateTeamHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewCreateTeamHandler creates a new handler.
func NewCreateTeamHandler(teams collaboration.TeamRepository, publisher EventPublisher) *CreateTeamHandler {
	return &CreateTeamHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command. The owner membership is created in the same
// transaction as the team.
func (h *CreateTeamHandler) Handle(ctx context.Context, cmd CreateTeamCommand) (*CreateTeamResult, error) {
	ownerID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}

	now := h.now()
	team, err := collaboration.NewTeam(cmd.Name, cmd.Description, now)
	if err != nil {
		return nil, err
	}

	created, err := h.teams.Create(ctx, team, ownerID)
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventTeamCreated, created.ID(), ownerID, now, nil))

	dto := TeamToDTO(created)
	dto.MyRole = collaboration.RoleOwner.String()
	dto.MemberCount = 1
	return &CreateTeamResult{Team: dto}, nil
}

// UpdateTeamCommand represents a command to update team metadata.
type UpdateTeamCommand struct {
	ActorID     string
	TeamID      string
	Name        *string
	Description *string
}

// UpdateTeamResult is the result of updating a team.
type UpdateTeamResult struct {
	Team *TeamDTO
}

// UpdateTeamHandler handles team updates.
type UpdateTeamHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewUpdateTeamHandler creates a new handler.
func NewUpdateTeamHandler(teams collaboration.TeamRepository, publisher EventPublisher) *UpdateTeamHandler {
	return &UpdateTeamHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *UpdateTeamHandler) Handle(ctx context.Context, cmd UpdateTeamCommand) (*UpdateTeamResult, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return nil, err
	}

	team, membership, err := authorize(ctx, h.teams, teamID, actorID, "update team", canModifyTeam)
	if err != nil {
		return nil, err
	}

	patch := collaboration.TeamPatch{Name: cmd.Name, Description: cmd.Description}
	if !patch.IsEmpty() {
		now := h.now()
		updated, err := team.Update(patch, now)
		if err != nil {
			return nil, err
		}
		if err := h.teams.Update(ctx, updated); err != nil {
			return nil, err
		}
		team = updated
		h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventTeamUpdated, teamID, actorID, now, nil))
	}

	dto := TeamToDTO(team)
	dto.MyRole = membership.Role().String()
	return &UpdateTeamResult{Team: dto}, nil
}

// DeleteTeamCommand represents a command to delete a team.
type DeleteTeamCommand struct {
	ActorID string
	TeamID  string
}

// DeleteTeamHandler handles team deletion. Only the owner may delete.
type DeleteTeamHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewDeleteTeamHandler creates a new handler.
func NewDeleteTeamHandler(teams collaboration.TeamRepository, publisher EventPublisher) *DeleteTeamHandler {
	return &DeleteTeamHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *DeleteTeamHandler) Handle(ctx context.Context, cmd DeleteTeamCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return err
	}

	team, _, err := authorize(ctx, h.teams, teamID, actorID, "delete team", canDeleteTeam)
	if err != nil {
		return err
	}

	if err := h.teams.Delete(ctx, team.ID()); err != nil {
		return err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventTeamDeleted, teamID, actorID, h.now(), map[string]string{
		"name": team.Name(),
	}))
	return nil
}
