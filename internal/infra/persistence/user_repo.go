package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
	"github.com/teamhub/server/internal/infra/persistence/entity"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure interface compliance
var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if err := conn(ctx, r.db).Create(entity.FromDomainUser(u)).Error; err != nil {
		if isDuplicate(err) {
			return user.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id collaboration.UserID) (*user.User, error) {
	return r.first(ctx, "id = ?", id.UUID())
}

func (r *UserRepository) GetByEmail(ctx context.Context, email collaboration.Email) (*user.User, error) {
	return r.first(ctx, "email = ?", email.String())
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var e entity.UserEntity
	if err := conn(ctx, r.db).Where(query, arg).First(&e).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return e.ToDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result := conn(ctx, r.db).
		Model(&entity.UserEntity{}).
		Where("id = ?", u.ID().UUID()).
		Updates(map[string]interface{}{
			"name":       u.Name(),
			"avatar_url": u.AvatarURL(),
			"status":     string(u.Status()),
			"updated_at": u.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
