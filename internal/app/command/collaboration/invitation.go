package collaboration

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// DeletedTeamName is reported when a team disappears while an invitation to it is accepted.
const DeletedTeamName = "(deleted team)"

// CreateInvitationCommand represents a command to invite someone by email.
type CreateInvitationCommand struct {
	ActorID string
	TeamID  string
	Email   string
	Role    string
}

// CreateInvitationResult is the result of creating an invitation.
type CreateInvitationResult struct {
	Invitation *InvitationDTO
}

// CreateInvitationHandler handles invitation creation.
type CreateInvitationHandler struct {
	teams       collaboration.TeamRepository
	invitations collaboration.InvitationRepository
	tokens      collaboration.TokenGenerator
	publisher   EventPublisher
	cfg         *collaboration.Config
	now         Clock
}

// NewCreateInvitationHandler creates a new handler.
func NewCreateInvitationHandler(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
	tokens collaboration.TokenGenerator,
	publisher EventPublisher,
	cfg *collaboration.Config,
) *CreateInvitationHandler {
	return &CreateInvitationHandler{
		teams:       teams,
		invitations: invitations,
		tokens:      tokens,
		publisher:   publisher,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Handle executes the command.
func (h *CreateInvitationHandler) Handle(ctx context.Context, cmd CreateInvitationCommand) (*CreateInvitationResult, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	teamID, err := collaboration.ParseTeamID(cmd.TeamID)
	if err != nil {
		return nil, err
	}
	email, err := collaboration.ParseEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	role, err := collaboration.ParseAssignableRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	team, actor, err := authorize(ctx, h.teams, teamID, actorID, "invite members", nil)
	if err != nil {
		return nil, err
	}
	if !actor.CanInviteAs(role) {
		return nil, collaboration.Deny("invite members as " + role.String())
	}

	isMember, err := h.teams.IsEmailMember(ctx, teamID, email)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, collaboration.ErrAlreadyMember
	}

	now := h.now()
	existing, err := h.invitations.FindPendingByTeamAndEmail(ctx, teamID, email)
	switch {
	case err == nil:
		if !existing.IsExpired(now) {
			return nil, collaboration.ErrInvitationAlreadyExists
		}
		// A stale pending row is retired before issuing a new one.
		err := h.invitations.Update(ctx, existing.MarkExpired(), collaboration.InvitationStatusPending)
		if err != nil && !errors.Is(err, collaboration.ErrInvitationNotPending) {
			return nil, err
		}
	case !errors.Is(err, collaboration.ErrInvitationNotFound):
		return nil, err
	}

	token, err := h.tokens.Generate()
	if err != nil {
		return nil, err
	}

	inv, err := collaboration.NewTeamInvitation(teamID, email, role, token, actorID, now, h.cfg.InvitationExpiry)
	if err != nil {
		return nil, err
	}
	if err := h.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventInvitationCreated, teamID, actorID, now, map[string]string{
		"invitation_id": inv.ID().String(),
		"role":          role.String(),
	}))

	dto := InvitationToDTO(inv, now)
	dto.TeamName = team.Name()
	dto.Token = inv.Token().String()
	dto.AcceptURL = h.cfg.AcceptURL(inv.Token())
	return &CreateInvitationResult{Invitation: dto}, nil
}

// CancelInvitationCommand represents a command to withdraw a pending invitation.
type CancelInvitationCommand struct {
	ActorID      string
	InvitationID string
}

// CancelInvitationHandler handles invitation cancellation. A cancelled
// invitation is deleted rather than transitioned.
type CancelInvitationHandler struct {
	teams       collaboration.TeamRepository
	invitations collaboration.InvitationRepository
	publisher   EventPublisher
	now         Clock
}

// NewCancelInvitationHandler creates a new handler.
func NewCancelInvitationHandler(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
	publisher EventPublisher,
) *CancelInvitationHandler {
	return &CancelInvitationHandler{teams: teams, invitations: invitations, publisher: publisher, now: time.Now}
}

// Handle executes the command.
func (h *CancelInvitationHandler) Handle(ctx context.Context, cmd CancelInvitationCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	invitationID, err := collaboration.ParseInvitationID(cmd.InvitationID)
	if err != nil {
		return err
	}

	inv, err := h.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}

	actor, err := h.teams.GetMembership(ctx, inv.TeamID(), actorID)
	if err != nil {
		if errors.Is(err, collaboration.ErrMembershipNotFound) {
			return collaboration.Deny("cancel invitation")
		}
		return err
	}
	if !actor.CanManageMembers() {
		return collaboration.Deny("cancel invitation")
	}

	// Past invitations stay invisible to cancellation.
	if !inv.IsPending() {
		return collaboration.ErrInvitationNotFound
	}

	if err := h.invitations.Delete(ctx, inv.ID()); err != nil {
		return err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventInvitationCancelled, inv.TeamID(), actorID, h.now(), map[string]string{
		"invitation_id": inv.ID().String(),
	}))
	return nil
}

// AcceptInvitationCommand represents a command to accept an invitation by id.
type AcceptInvitationCommand struct {
	ActorID      string
	InvitationID string
}

// AcceptInvitationByTokenCommand represents a command to accept an invitation by token.
type AcceptInvitationByTokenCommand struct {
	ActorID string
	Token   string
}

// AcceptInvitationResult is the result of accepting an invitation.
type AcceptInvitationResult struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Role     string `json:"role"`
}

// AcceptInvitationHandler handles invitation acceptance.
type AcceptInvitationHandler struct {
	teams       collaboration.TeamRepository
	invitations collaboration.InvitationRepository
	users       collaboration.UserLookup
	tx          collaboration.Transactor
	publisher   EventPublisher
	logger      *zap.Logger
	now         Clock
}

// NewAcceptInvitationHandler creates a new handler.
func NewAcceptInvitationHandler(
	teams collaboration.TeamRepository,
	invitations collaboration.InvitationRepository,
	users collaboration.UserLookup,
	tx collaboration.Transactor,
	publisher EventPublisher,
	logger *zap.Logger,
) *AcceptInvitationHandler {
	return &AcceptInvitationHandler{
		teams:       teams,
		invitations: invitations,
		users:       users,
		tx:          tx,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// Handle accepts the invitation identified by id.
func (h *AcceptInvitationHandler) Handle(ctx context.Context, cmd AcceptInvitationCommand) (*AcceptInvitationResult, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	invitationID, err := collaboration.ParseInvitationID(cmd.InvitationID)
	if err != nil {
		return nil, err
	}

	inv, err := h.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	return h.accept(ctx, actorID, inv)
}

// HandleByToken accepts the invitation carrying the token.
func (h *AcceptInvitationHandler) HandleByToken(ctx context.Context, cmd AcceptInvitationByTokenCommand) (*AcceptInvitationResult, error) {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return nil, err
	}
	token, err := collaboration.ParseInvitationToken(cmd.Token)
	if err != nil {
		return nil, err
	}

	inv, err := h.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return h.accept(ctx, actorID, inv)
}

func (h *AcceptInvitationHandler) accept(
	ctx context.Context,
	actorID collaboration.UserID,
	inv *collaboration.TeamInvitation,
) (*AcceptInvitationResult, error) {
	user, err := h.users.FindByID(ctx, actorID)
	if err != nil {
		// Do not reveal whether the account exists.
		if errors.Is(err, collaboration.ErrUserNotFound) {
			return nil, collaboration.ErrInvitationNotFound
		}
		return nil, err
	}

	now := h.now()
	accepted, err := inv.Accept(user.Email, now)
	if err != nil {
		if errors.Is(err, collaboration.ErrInvitationExpired) && inv.IsPending() {
			h.expire(ctx, inv)
		}
		return nil, err
	}

	isMember, err := h.teams.IsMember(ctx, inv.TeamID(), actorID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, collaboration.ErrAlreadyMember
	}

	membership := collaboration.NewTeamMembership(inv.TeamID(), actorID, inv.Role(), now)
	err = h.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := h.invitations.Update(ctx, accepted, collaboration.InvitationStatusPending); err != nil {
			return err
		}
		return h.teams.AddMembership(ctx, membership)
	})
	if err != nil {
		return nil, err
	}

	teamName := DeletedTeamName
	if team, err := h.teams.FindByID(ctx, inv.TeamID()); err == nil {
		teamName = team.Name()
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventInvitationAccepted, inv.TeamID(), actorID, now, map[string]string{
		"invitation_id": inv.ID().String(),
		"role":          inv.Role().String(),
	}))

	return &AcceptInvitationResult{
		TeamID:   inv.TeamID().String(),
		TeamName: teamName,
		Role:     inv.Role().String(),
	}, nil
}

// expire records the expiry. Failures are logged and never mask the expiry error.
func (h *AcceptInvitationHandler) expire(ctx context.Context, inv *collaboration.TeamInvitation) {
	err := h.invitations.Update(ctx, inv.MarkExpired(), collaboration.InvitationStatusPending)
	if err != nil && !errors.Is(err, collaboration.ErrInvitationNotPending) {
		h.logger.Warn("failed to mark invitation expired",
			zap.String("invitation_id", inv.ID().String()),
			zap.Error(err),
		)
	}
}

// RejectInvitationCommand represents a command to decline an invitation by id.
type RejectInvitationCommand struct {
	ActorID      string
	InvitationID string
}

// RejectInvitationByTokenCommand represents a command to decline an invitation by token.
type RejectInvitationByTokenCommand struct {
	ActorID string
	Token   string
}

// RejectInvitationHandler handles invitation rejection by the invitee.
type RejectInvitationHandler struct {
	invitations collaboration.InvitationRepository
	users       collaboration.UserLookup
	publisher   EventPublisher
	now         Clock
}

// NewRejectInvitationHandler creates a new handler.
func NewRejectInvitationHandler(
	invitations collaboration.InvitationRepository,
	users collaboration.UserLookup,
	publisher EventPublisher,
) *RejectInvitationHandler {
	return &RejectInvitationHandler{invitations: invitations, users: users, publisher: publisher, now: time.Now}
}

// Handle rejects the invitation identified by id.
func (h *RejectInvitationHandler) Handle(ctx context.Context, cmd RejectInvitationCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	invitationID, err := collaboration.ParseInvitationID(cmd.InvitationID)
	if err != nil {
		return err
	}

	inv, err := h.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return err
	}
	return h.reject(ctx, actorID, inv)
}

// HandleByToken rejects the invitation carrying the token.
func (h *RejectInvitationHandler) HandleByToken(ctx context.Context, cmd RejectInvitationByTokenCommand) error {
	actorID, err := collaboration.ParseUserID(cmd.ActorID)
	if err != nil {
		return err
	}
	token, err := collaboration.ParseInvitationToken(cmd.Token)
	if err != nil {
		return err
	}

	inv, err := h.invitations.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	return h.reject(ctx, actorID, inv)
}

func (h *RejectInvitationHandler) reject(ctx context.Context, actorID collaboration.UserID, inv *collaboration.TeamInvitation) error {
	user, err := h.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, collaboration.ErrUserNotFound) {
			return collaboration.ErrInvitationNotFound
		}
		return err
	}

	now := h.now()
	if inv.IsExpired(now) {
		return collaboration.ErrInvitationExpired
	}
	if !inv.IsPending() {
		return collaboration.ErrInvitationNotPending
	}
	if inv.Email() != user.Email {
		return collaboration.ErrInvitationEmailMismatch
	}

	rejected, err := inv.Reject()
	if err != nil {
		return err
	}
	if err := h.invitations.Update(ctx, rejected, collaboration.InvitationStatusPending); err != nil {
		return err
	}

	h.publisher.Publish(collaboration.NewTeamEvent(collaboration.EventInvitationRejected, inv.TeamID(), actorID, now, map[string]string{
		"invitation_id": inv.ID().String(),
	}))
	return nil
}
