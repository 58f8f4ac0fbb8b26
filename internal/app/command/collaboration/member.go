package collaboration

import (
	"context"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// ChangeMemberRoleCommand represents a command to change a member's role.
type ChangeMemberRoleCommand struct {
	ActorID      string
	TeamID       string
	TargetUserID string
	Role         string
}

// ChangeMemberRoleResult is the result of a role change.
type ChangeMemberRoleResult struct {
	Member  *MemberDTO
	Changed bool
}

// ChangeMemberRoleHandler handles role changes. Ownership never moves
// through this path.
type ChangeMemberRoleHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewChangeMemberRoleHandler creates a new handler.
func NewChangeMemberRoleHandler(teams collaboration.TeamRepository, publisher EventPublisher) *ChangeMemberRoleHandler {
	return &ChangeMemberRoleHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *ChangeMemberRoleHandler) Handle(ctx context.Context, cmd ChangeMemberRoleCommand) (*ChangeMemberRoleResult, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return nil, err
	}
	targetID, err := collaboration.ParseUserID(cmd.TargetUserID)
	if err != nil {
		return nil, err
	}
	newRole, err := collaboration.ParseAssignableRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	_, actor, err := authorize(ctx, h.teams, teamID, actorID, "change member role", canManageMembers)
	if err != nil {
		return nil, err
	}

	target, err := h.teams.GetMembership(ctx, teamID, targetID)
	if err != nil {
		return nil, err
	}
	if target.Role().IsOwner() {
		return nil, collaboration.ErrCannotDemoteOwner
	}
	if !actor.Role().IsOwner() && target.Role().IsAtLeast(actor.Role()) {
		return nil, collaboration.Deny("change role of a peer")
	}
	if newRole.IsHigherThan(actor.Role()) {
		return nil, collaboration.Deny("assign a role above your own")
	}

	if target.Role() == newRole {
		return &ChangeMemberRoleResult{Member: MemberToDTO(target)}, nil
	}

	updated := target.ChangeRole(newRole)
	if err := h.teams.UpdateMembership(ctx, updated, target.Role()); err != nil {
		return nil, err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventMemberRoleChanged, teamID, actorID, h.now(), map[string]string{
		"user_id":  targetID.String(),
		"old_role": target.Role().String(),
		"new_role": newRole.String(),
	}))

	return &ChangeMemberRoleResult{Member: MemberToDTO(updated), Changed: true}, nil
}

// RemoveMemberCommand represents a command to remove a member from a team.
type RemoveMemberCommand struct {
	ActorID      string
	TeamID       string
	TargetUserID string
}

// RemoveMemberHandler handles member removal.
type RemoveMemberHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewRemoveMemberHandler creates a new handler.
func NewRemoveMemberHandler(teams collaboration.TeamRepository, publisher EventPublisher) *RemoveMemberHandler {
	return &RemoveMemberHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *RemoveMemberHandler) Handle(ctx context.Context, cmd RemoveMemberCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return err
	}
	targetID, err := collaboration.ParseUserID(cmd.TargetUserID)
	if err != nil {
		return err
	}

	_, actor, err := authorize(ctx, h.teams, teamID, actorID, "remove member", canManageMembers)
	if err != nil {
		return err
	}

	target, err := h.teams.GetMembership(ctx, teamID, targetID)
	if err != nil {
		return err
	}
	if target.Role().IsOwner() {
		return collaboration.ErrCannotRemoveOwner
	}
	if !actor.CanRemove(target.Role()) {
		return collaboration.Deny("remove member")
	}

	if err := h.teams.RemoveMembership(ctx, teamID, targetID); err != nil {
		return err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventMemberRemoved, teamID, actorID, h.now(), map[string]string{
		"user_id": targetID.String(),
		"role":    target.Role().String(),
	}))
	return nil
}

// LeaveTeamCommand represents a command to leave a team voluntarily.
type LeaveTeamCommand struct {
	ActorID string
	TeamID  string
}

// LeaveTeamHandler handles voluntary departure. The owner cannot leave since
// there is no ownership transfer; deleting the team is the way out.
type LeaveTeamHandler struct {
	teams     collaboration.TeamRepository
	publisher EventPublisher
	now       Clock
}

// NewLeaveTeamHandler creates a new handler.
func NewLeaveTeamHandler(teams collaboration.TeamRepository, publisher EventPublisher) *LeaveTeamHandler {
	return &LeaveTeamHandler{teams: teams, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *LeaveTeamHandler) Handle(ctx context.Context, cmd LeaveTeamCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return err
	}

	_, membership, err := h.teams.FindByIDWithMembership(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if membership == nil {
		return collaboration.ErrMembershipNotFound
	}
	if membership.Role().IsOwner() {
		return collaboration.ErrOwnerCannotLeave
	}

	if err := h.teams.RemoveMembership(ctx, teamID, actorID); err != nil {
		return err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventMemberLeft, teamID, actorID, h.now(), map[string]string{
		"role": membership.Role().String(),
	}))
	return nil
}
