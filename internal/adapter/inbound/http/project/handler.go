package projecthttp

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamhub/server/internal/adapter/inbound/http/respond"
	"github.com/teamhub/server/internal/app/command"
	projectcmd "github.com/teamhub/server/internal/app/command/project"
	"github.com/teamhub/server/internal/app/query"
	projectquery "github.com/teamhub/server/internal/app/query/project"
	apperrors "github.com/teamhub/server/internal/utils/errors"
)

// Commands groups the project write handlers.
type Commands struct {
	Create  command.Handler[projectcmd.CreateProjectCommand, *projectcmd.ProjectDTO]
	Update  command.Handler[projectcmd.UpdateProjectCommand, *projectcmd.ProjectDTO]
	Archive command.Handler[projectcmd.ProjectCommand, *projectcmd.ProjectDTO]
	Restore command.Handler[projectcmd.ProjectCommand, *projectcmd.ProjectDTO]
	Delete  command.Handler[projectcmd.ProjectCommand, command.NoResult]
	Reorder command.Handler[projectcmd.ReorderProjectsCommand, []*projectcmd.ProjectDTO]
}

// Handler handles project HTTP requests.
type Handler struct {
	commands Commands
	list     query.Handler[projectquery.ListProjectsQuery, []*projectcmd.ProjectDTO]
}

// NewHandler creates a new project handler.
func NewHandler(commands Commands, list query.Handler[projectquery.ListProjectsQuery, []*projectcmd.ProjectDTO]) *Handler {
	return &Handler{commands: commands, list: list}
}

// RegisterRoutes registers project routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	teams := r.Group("/teams/:id/projects")
	teams.Use(authMiddleware)
	{
		teams.GET("", h.List)
		teams.POST("", h.Create)
		teams.PUT("/order", h.Reorder)
	}

	projects := r.Group("/projects")
	projects.Use(authMiddleware)
	{
		projects.PATCH("/:id", h.Update)
		projects.DELETE("/:id", h.Delete)
		projects.POST("/:id/archive", h.Archive)
		projects.POST("/:id/restore", h.Restore)
	}
}

// List lists a team's projects. ?include_archived=true adds archived ones.
func (h *Handler) List(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	includeArchived := false
	if raw := c.Query("include_archived"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			appErr := apperrors.BadRequest("include_archived must be a boolean")
			c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
			return
		}
		includeArchived = v
	}

	projects, err := h.list.Handle(c.Request.Context(), projectquery.ListProjectsQuery{
		RequesterID:     actor.String(),
		TeamID:          c.Param("id"),
		IncludeArchived: includeArchived,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"projects": projects})
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// Create adds a project to a team.
func (h *Handler) Create(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	p, err := h.commands.Create.Handle(c.Request.Context(), projectcmd.CreateProjectCommand{
		ActorID:     actor.String(),
		TeamID:      c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, p)
}

type reorderRequest struct {
	ProjectIDs []string `json:"project_ids" binding:"required"`
}

// Reorder rewrites the positions of a team's active projects.
func (h *Handler) Reorder(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	projects, err := h.commands.Reorder.Handle(c.Request.Context(), projectcmd.ReorderProjectsCommand{
		ActorID:    actor.String(),
		TeamID:     c.Param("id"),
		ProjectIDs: req.ProjectIDs,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, gin.H{"projects": projects})
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Update changes a project's name or description.
func (h *Handler) Update(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	p, err := h.commands.Update.Handle(c.Request.Context(), projectcmd.UpdateProjectCommand{
		ActorID:     actor.String(),
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, p)
}

// Archive archives a project.
func (h *Handler) Archive(c *gin.Context) {
	h.transition(c, h.commands.Archive)
}

// Restore reactivates an archived project.
func (h *Handler) Restore(c *gin.Context) {
	h.transition(c, h.commands.Restore)
}

func (h *Handler) transition(c *gin.Context, handler command.Handler[projectcmd.ProjectCommand, *projectcmd.ProjectDTO]) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	p, err := handler.Handle(c.Request.Context(), projectcmd.ProjectCommand{
		ActorID:   actor.String(),
		ProjectID: c.Param("id"),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, p)
}

// Delete removes a project.
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := respond.Actor(c)
	if !ok {
		return
	}
	if _, err := h.commands.Delete.Handle(c.Request.Context(), projectcmd.ProjectCommand{
		ActorID:   actor.String(),
		ProjectID: c.Param("id"),
	}); err != nil {
		respond.Error(c, err)
		return
	}
	respond.NoContent(c)
}
