package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/user"
)

// UserEntity is the GORM model for users table.
type UserEntity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	AvatarURL    string    `gorm:"column:avatar_url"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Status       string    `gorm:"not null;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName returns the database table name.
func (UserEntity) TableName() string {
	return "users"
}

// ToDomain converts entity to domain model.
func (e *UserEntity) ToDomain() *user.User {
	return user.RestoreUser(
		collaboration.UserID(e.ID),
		collaboration.Email(e.Email),
		e.Name,
		e.AvatarURL,
		e.PasswordHash,
		user.Status(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// FromDomainUser converts domain model to entity.
func FromDomainUser(u *user.User) *UserEntity {
	return &UserEntity{
		ID:           u.ID().UUID(),
		Email:        u.Email().String(),
		Name:         u.Name(),
		AvatarURL:    u.AvatarURL(),
		PasswordHash: u.PasswordHash(),
		Status:       string(u.Status()),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}
