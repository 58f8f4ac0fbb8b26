package collabhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/teamhub/server/internal/adapter/inbound/http/respond"
	"github.com/teamhub/server/internal/app/command"
	collabcmd "github.com/teamhub/server/internal/app/command/collaboration"
	"github.com/teamhub/server/internal/app/query"
	collabquery "github.com/teamhub/server/internal/app/query/collaboration"
)

// Commands groups the collaboration write handlers.
type Commands struct {
	CreateTeam       command.Handler[collabcmd.CreateTeamCommand, *collabcmd.CreateTeamResult]
	UpdateTeam       command.Handler[collabcmd.UpdateTeamCommand, *collabcmd.UpdateTeamResult]
	DeleteTeam       command.Handler[collabcmd.DeleteTeamCommand, command.NoResult]
	ChangeMemberRole command.Handler[collabcmd.ChangeMemberRoleCommand, *collabcmd.ChangeMemberRoleResult]
	RemoveMember     command.Handler[collabcmd.RemoveMemberCommand, command.NoResult]
	LeaveTeam        command.Handler[collabcmd.LeaveTeamCommand, command.NoResult]
	CreateInvitation command.Handler[collabcmd.CreateInvitationCommand, *collabcmd.CreateInvitationResult]
	CancelInvitation command.Handler[collabcmd.CancelInvitationCommand, command.NoResult]
	AcceptInvitation command.Handler[collabcmd.AcceptInvitationCommand, *collabcmd.AcceptInvitationResult]
	AcceptByToken    command.Handler[collabcmd.AcceptInvitationByTokenCommand, *collabcmd.AcceptInvitationResult]
	RejectInvitation command.Handler[collabcmd.RejectInvitationCommand, command.NoResult]
	RejectByToken    command.Handler[collabcmd.RejectInvitationByTokenCommand, command.NoResult]
}

// Queries groups the collaboration read handlers.
type Queries struct {
	GetTeam              query.Handler[collabquery.GetTeamQuery, *collabquery.GetTeamResult]
	ListMyTeams          query.Handler[collabquery.ListMyTeamsQuery, *collabquery.ListMyTeamsResult]
	ListMembers          query.Handler[collabquery.ListMembersQuery, *collabquery.ListMembersResult]
	ListTeamInvitations  query.Handler[collabquery.ListTeamInvitationsQuery, *collabquery.ListInvitationsResult]
	ListMyInvitations    query.Handler[collabquery.ListMyInvitationsQuery, *collabquery.ListInvitationsResult]
	GetInvitationByToken query.Handler[collabquery.GetInvitationByTokenQuery, *collabquery.GetInvitationResult]
}

// Handler handles collaboration HTTP requests.
type Handler struct {
	commands Commands
	queries  Queries
}

// NewHandler creates a new collaboration handler.
func NewHandler(commands Commands, queries Queries) *Handler {
	return &Handler{commands: commands, queries: queries}
}

// RegisterRoutes registers collaboration routes. inviteLimit guards invitation creation.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware, inviteLimit gin.HandlerFunc) {
	teams := r.Group("/teams")
	teams.Use(authMiddleware)
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListMyTeams)
		teams.GET("/:id", h.GetTeam)
		teams.PATCH("/:id", h.UpdateTeam)
		teams.DELETE("/:id", h.DeleteTeam)

		// Members
		teams.GET("/:id/members", h.ListMembers)
		teams.PATCH("/:id/members/:user_id", h.UpdateMemberRole)
		teams.DELETE("/:id/members/:user_id", h.RemoveMember)
		teams.POST("/:id/leave", h.LeaveTeam)

		// Team invitations
		teams.POST("/:id/invitations", inviteLimit, h.SendInvitation)
		teams.GET("/:id/invitations", h.ListTeamInvitations)
	}

	invitations := r.Group("/invitations")
	invitations.Use(authMiddleware)
	{
		invitations.GET("", h.ListMyInvitations)
		invitations.DELETE("/:id", h.CancelInvitation)
		invitations.POST("/:id/accept", h.AcceptInvitation)
		invitations.POST("/:id/reject", h.RejectInvitation)
		invitations.GET("/token/:token", h.GetInvitationByToken)
		invitations.POST("/token/:token/accept", h.AcceptInvitationByToken)
		invitations.POST("/token/:token/reject", h.RejectInvitationByToken)
	}
}

// ========== Team Handlers ==========

type createTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateTeam handles team creation.
func (h *Handler) CreateTeam(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.CreateTeam.Handle(c.Request.Context(), collabcmd.CreateTeamCommand{
		ActorID:     actor.String(),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, result.Team)
}

// ListMyTeams lists the teams of the current user.
func (h *Handler) ListMyTeams(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.queries.ListMyTeams.Handle(c.Request.Context(), collabquery.ListMyTeamsQuery{RequesterID: actor.String()})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"teams": result.Teams})
}

// GetTeam returns one team.
func (h *Handler) GetTeam(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.queries.GetTeam.Handle(c.Request.Context(), collabquery.GetTeamQuery{
		RequesterID: actor.String(),
		TeamID:      c.Param("id"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, result.Team)
}

type updateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateTeam updates name and description.
func (h *Handler) UpdateTeam(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.UpdateTeam.Handle(c.Request.Context(), collabcmd.UpdateTeamCommand{
		ActorID:     actor.String(),
		TeamID:      c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, result.Team)
}

// DeleteTeam deletes a team.
func (h *Handler) DeleteTeam(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.DeleteTeam.Handle(c.Request.Context(), collabcmd.DeleteTeamCommand{
		ActorID: actor.String(),
		TeamID:  c.Param("id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}

// ========== Member Handlers ==========

// ListMembers lists the members of a team.
func (h *Handler) ListMembers(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.queries.ListMembers.Handle(c.Request.Context(), collabquery.ListMembersQuery{
		RequesterID: actor.String(),
		TeamID:      c.Param("id"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"members": result.Members})
}

type updateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateMemberRole changes the role of a member.
func (h *Handler) UpdateMemberRole(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req updateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.ChangeMemberRole.Handle(c.Request.Context(), collabcmd.ChangeMemberRoleCommand{
		ActorID:      actor.String(),
		TeamID:       c.Param("id"),
		TargetUserID: c.Param("user_id"),
		Role:         req.Role,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"member": result.Member, "changed": result.Changed})
}

// RemoveMember removes a member from a team.
func (h *Handler) RemoveMember(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.RemoveMember.Handle(c.Request.Context(), collabcmd.RemoveMemberCommand{
		ActorID:      actor.String(),
		TeamID:       c.Param("id"),
		TargetUserID: c.Param("user_id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}

// LeaveTeam removes the current user from a team.
func (h *Handler) LeaveTeam(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.LeaveTeam.Handle(c.Request.Context(), collabcmd.LeaveTeamCommand{
		ActorID: actor.String(),
		TeamID:  c.Param("id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}

// ========== Invitation Handlers ==========

type sendInvitationRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

// SendInvitation invites an email address to a team.
func (h *Handler) SendInvitation(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req sendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.CreateInvitation.Handle(c.Request.Context(), collabcmd.CreateInvitationCommand{
		ActorID: actor.String(),
		TeamID:  c.Param("id"),
		Email:   req.Email,
		Role:    req.Role,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, result.Invitation)
}

// ListTeamInvitations lists the invitations of a team, optionally by ?status=.
func (h *Handler) ListTeamInvitations(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.queries.ListTeamInvitations.Handle(c.Request.Context(), collabquery.ListTeamInvitationsQuery{
		RequesterID: actor.String(),
		TeamID:      c.Param("id"),
		Status:      c.Query("status"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"invitations": result.Invitations})
}

// ListMyInvitations lists the pending invitations addressed to the current user.
func (h *Handler) ListMyInvitations(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.queries.ListMyInvitations.Handle(c.Request.Context(), collabquery.ListMyInvitationsQuery{RequesterID: actor.String()})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"invitations": result.Invitations})
}

// GetInvitationByToken shows an invitation to the holder of its token.
func (h *Handler) GetInvitationByToken(c *gin.Context) {
	result, err := h.queries.GetInvitationByToken.Handle(c.Request.Context(), collabquery.GetInvitationByTokenQuery{Token: c.Param("token")})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, result.Invitation)
}

// CancelInvitation cancels a pending invitation.
func (h *Handler) CancelInvitation(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.CancelInvitation.Handle(c.Request.Context(), collabcmd.CancelInvitationCommand{
		ActorID:      actor.String(),
		InvitationID: c.Param("id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}

// AcceptInvitation accepts an invitation by id.
func (h *Handler) AcceptInvitation(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.commands.AcceptInvitation.Handle(c.Request.Context(), collabcmd.AcceptInvitationCommand{
		ActorID:      actor.String(),
		InvitationID: c.Param("id"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, result)
}

// AcceptInvitationByToken accepts an invitation by token.
func (h *Handler) AcceptInvitationByToken(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	result, err := h.commands.AcceptByToken.Handle(c.Request.Context(), collabcmd.AcceptInvitationByTokenCommand{
		ActorID: actor.String(),
		Token:   c.Param("token"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, result)
}

// RejectInvitation rejects an invitation by id.
func (h *Handler) RejectInvitation(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.RejectInvitation.Handle(c.Request.Context(), collabcmd.RejectInvitationCommand{
		ActorID:      actor.String(),
		InvitationID: c.Param("id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}

// RejectInvitationByToken rejects an invitation by token.
func (h *Handler) RejectInvitationByToken(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.RejectByToken.Handle(c.Request.Context(), collabcmd.RejectInvitationByTokenCommand{
		ActorID: actor.String(),
		Token:   c.Param("token"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}
