package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// UserDTO is the public view of an account.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts a user.
func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID().String(),
		Email:     u.Email().String(),
		Name:      u.Name(),
		AvatarURL: u.AvatarURL(),
		CreatedAt: u.CreatedAt(),
	}
}

// RegisterCommand represents a command to register a new user.
type RegisterCommand struct {
	Email    string
	Password string
	Name     string
}

// RegisterResult is the result of user registration.
type RegisterResult struct {
	User *UserDTO
}

// RegisterHandler handles RegisterCommand.
type RegisterHandler struct {
	repo   user.Repository
	hasher auth.PasswordHasher
	logger *zap.Logger
	now    func() time.Time
}

// NewRegisterHandler creates a new handler.
func NewRegisterHandler(repo user.Repository, hasher auth.PasswordHasher, logger *zap.Logger) *RegisterHandler {
	return &RegisterHandler{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

// Handle executes the command.
func (h *RegisterHandler) Handle(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	email, err := collaboration.ParseEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if err := user.ValidatePassword(cmd.Password); err != nil {
		return nil, err
	}

	// Check if email already exists
	_, err = h.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, user.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := user.NewUser(email, cmd.Name, hash, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.repo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	h.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	return &RegisterResult{User: ToDTO(u)}, nil
}
