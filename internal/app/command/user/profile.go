package user

import (
	"context"
	"fmt"
	"time"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// UpdateProfileCommand represents a command to update user profile.
type UpdateProfileCommand struct {
	UserID    string
	Name      *string
	AvatarURL *string
}

// UpdateProfileHandler handles UpdateProfileCommand.
type UpdateProfileHandler struct {
	repo user.Repository
	now  func() time.Time
}

// NewUpdateProfileHandler creates a new handler.
func NewUpdateProfileHandler(repo user.Repository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo, now: time.Now}
}

// Handle executes the command.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*UserDTO, error) {
	id, err := collaboration.ParseUserID(cmd.UserID)
	if err != nil {
		return nil, err
	}
	u, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name == nil && cmd.AvatarURL == nil {
		return ToDTO(u), nil
	}

	updated, err := u.UpdateProfile(user.Profile{Name: cmd.Name, AvatarURL: cmd.AvatarURL}, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return ToDTO(updated), nil
}
