package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
)

// ProjectEntity is the GORM entity for projects.
type ProjectEntity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description *string
	Position    int `gorm:"not null"`
	ArchivedAt  *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name.
func (ProjectEntity) TableName() string {
	return "projects"
}

// ToDomain converts to domain entity.
func (e *ProjectEntity) ToDomain() *project.Project {
	return project.Reconstruct(
		project.ID(e.ID),
		collaboration.TeamID(e.TeamID),
		e.Name,
		e.Description,
		e.Position,
		e.ArchivedAt,
		collaboration.UserID(e.CreatedBy),
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// FromDomainProject converts from domain entity.
func FromDomainProject(p *project.Project) *ProjectEntity {
	return &ProjectEntity{
		ID:          p.ID().UUID(),
		TeamID:      p.TeamID().UUID(),
		Name:        p.Name(),
		Description: p.Description(),
		Position:    p.Position(),
		ArchivedAt:  p.ArchivedAt(),
		CreatedBy:   p.CreatedBy().UUID(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
