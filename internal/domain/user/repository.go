package user

import (
	"context"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Repository defines the interface for account data access (Port).
type Repository interface {
	// Create returns ErrEmailAlreadyRegistered on a duplicate email.
	Create(ctx context.Context, user *User) error
	// GetByID returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id collaboration.UserID) (*User, error)
	// GetByEmail returns ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email collaboration.Email) (*User, error)
	Update(ctx context.Context, user *User) error
}
