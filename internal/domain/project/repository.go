package project

import (
	"context"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// Repository persists projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error

	// FindByID returns ErrProjectNotFound when absent.
	FindByID(ctx context.Context, id ID) (*Project, error)

	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id ID) error

	// ListByTeam returns projects ordered by position.
	ListByTeam(ctx context.Context, teamID collaboration.TeamID, includeArchived bool) ([]*Project, error)

	// NextPosition returns the position after the last active project.
	NextPosition(ctx context.Context, teamID collaboration.TeamID) (int, error)
}
