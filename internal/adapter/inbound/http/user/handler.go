package userhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/teamhub/server/internal/adapter/inbound/http/respond"
	"github.com/teamhub/server/internal/app/command"
	usercmd "github.com/teamhub/server/internal/app/command/user"
	"github.com/teamhub/server/internal/app/query"
	userquery "github.com/teamhub/server/internal/app/query/user"
)

// Handler handles the current user's profile.
type Handler struct {
	getUser       query.Handler[userquery.GetUserQuery, *usercmd.UserDTO]
	updateProfile command.Handler[usercmd.UpdateProfileCommand, *usercmd.UserDTO]
}

// NewHandler creates a new profile handler.
func NewHandler(
	getUser query.Handler[userquery.GetUserQuery, *usercmd.UserDTO],
	updateProfile command.Handler[usercmd.UpdateProfileCommand, *usercmd.UserDTO],
) *Handler {
	return &Handler{getUser: getUser, updateProfile: updateProfile}
}

// RegisterRoutes registers profile routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	me := r.Group("/me")
	me.Use(authMiddleware)
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}
}

// GetMe handles GET /me.
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	u, err := h.getUser.Handle(c.Request.Context(), userquery.GetUserQuery{UserID: actor.String()})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, u)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateMe handles PATCH /me.
func (h *Handler) UpdateMe(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	u, err := h.updateProfile.Handle(c.Request.Context(), usercmd.UpdateProfileCommand{
		UserID:    actor.String(),
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, u)
}
