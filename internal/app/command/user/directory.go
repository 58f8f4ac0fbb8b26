package user

import (
	"context"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// Directory serves collaboration.UserLookup from the account repository.
type Directory struct {
	repo user.Repository
}

// NewDirectory creates a Directory.
func NewDirectory(repo user.Repository) *Directory {
	return &Directory{repo: repo}
}

var _ collaboration.UserLookup = (*Directory)(nil)

// FindByID returns the account as seen by the collaboration engine.
func (d *Directory) FindByID(ctx context.Context, id collaboration.UserID) (*collaboration.UserInfo, error) {
	u, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Info(), nil
}
