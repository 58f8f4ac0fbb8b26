package user

import (
	"context"

	cmd "github.com/teamhub/server/internal/app/command/user"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// GetUserQuery represents a query to get a user by ID.
type GetUserQuery struct {
	UserID string
}

// GetUserHandler handles GetUserQuery.
type GetUserHandler struct {
	repo user.Repository
}

// NewGetUserHandler creates a new handler.
func NewGetUserHandler(repo user.Repository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the query.
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*cmd.UserDTO, error) {
	id, err := collaboration.ParseUserID(query.UserID)
	if err != nil {
		return nil, err
	}
	u, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cmd.ToDTO(u), nil
}
