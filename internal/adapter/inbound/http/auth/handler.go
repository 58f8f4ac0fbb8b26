package authhttp

import (
	"github.com/gin-gonic/gin"

	"github.com/teamhub/server/internal/adapter/inbound/http/respond"
	"github.com/teamhub/server/internal/app/command"
	authcmd "github.com/teamhub/server/internal/app/command/auth"
	usercmd "github.com/teamhub/server/internal/app/command/user"
	"github.com/teamhub/server/internal/utils/metrics"
)

// Commands groups the account and session handlers.
type Commands struct {
	Register command.Handler[usercmd.RegisterCommand, *usercmd.RegisterResult]
	Login    command.Handler[authcmd.LoginCommand, *authcmd.LoginResult]
	Refresh  command.Handler[authcmd.RefreshTokensCommand, *authcmd.TokenPairDTO]
	Logout   command.Handler[authcmd.LogoutCommand, command.NoResult]
}

// Handler handles authentication HTTP requests.
type Handler struct {
	commands Commands
	metrics  *metrics.Metrics
}

// NewHandler creates a new auth handler. m may be nil.
func NewHandler(commands Commands, m *metrics.Metrics) *Handler {
	return &Handler{commands: commands, metrics: m}
}

// RegisterRoutes registers auth routes. limit guards the credential endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware, limit gin.HandlerFunc) {
	a := r.Group("/auth")
	{
		a.POST("/register", limit, h.Register)
		a.POST("/login", limit, h.Login)
		a.POST("/refresh", limit, h.Refresh)
		a.POST("/logout", authMiddleware, h.Logout)
	}
}

func (h *Handler) record(event string) {
	if h.metrics != nil {
		h.metrics.RecordAuthEvent(event)
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.Register.Handle(c.Request.Context(), usercmd.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.record("register")
	respond.Created(c, result.User)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	result, err := h.commands.Login.Handle(c.Request.Context(), authcmd.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.record("login_failed")
		respond.Error(c, err)
		return
	}
	h.record("login_success")
	respond.OK(c, result)
}

type refreshRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	tokens, err := h.commands.Refresh.Handle(c.Request.Context(), authcmd.RefreshTokensCommand{
		UserID:       req.UserID,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.record("token_refresh")
	respond.OK(c, tokens)
}

// Logout revokes every session of the current user.
func (h *Handler) Logout(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.Logout.Handle(c.Request.Context(), authcmd.LogoutCommand{UserID: actor.String()}); err != nil {
		respond.Error(c, err)
		return
	}
	h.record("logout")
	respond.NoContent(c)
}
