package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
	"github.com/teamhub/server/internal/infra/persistence/entity"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ project.Repository = (*ProjectRepository)(nil)

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if err := conn(ctx, r.db).Create(entity.FromDomainProject(p)).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id project.ID) (*project.Project, error) {
	var e entity.ProjectEntity
	if err := conn(ctx, r.db).Where("id = ?", id.UUID()).First(&e).Error; err != nil {
		if isNotFound(err) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project by ID: %w", err)
	}
	return e.ToDomain(), nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	e := entity.FromDomainProject(p)
	result := conn(ctx, r.db).
		Model(&entity.ProjectEntity{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"name":        e.Name,
			"description": e.Description,
			"position":    e.Position,
			"archived_at": e.ArchivedAt,
			"updated_at":  e.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id project.ID) error {
	result := conn(ctx, r.db).Where("id = ?", id.UUID()).Delete(&entity.ProjectEntity{})
	if result.Error != nil {
		return fmt.Errorf("delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID collaboration.TeamID, includeArchived bool) ([]*project.Project, error) {
	query := conn(ctx, r.db).Where("team_id = ?", teamID.UUID())
	if !includeArchived {
		query = query.Where("archived_at IS NULL")
	}

	var entities []entity.ProjectEntity
	if err := query.Order("position ASC, created_at ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]*project.Project, len(entities))
	for i := range entities {
		projects[i] = entities[i].ToDomain()
	}
	return projects, nil
}

func (r *ProjectRepository) NextPosition(ctx context.Context, teamID collaboration.TeamID) (int, error) {
	var next int
	err := conn(ctx, r.db).
		Model(&entity.ProjectEntity{}).
		Select("COALESCE(MAX(position) + 1, 0)").
		Where("team_id = ? AND archived_at IS NULL", teamID.UUID()).
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("next project position: %w", err)
	}
	return next, nil
}
