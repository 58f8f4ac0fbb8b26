package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/infra/persistence/entity"
)

// InvitationRepository implements collaboration.InvitationRepository.
type InvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository.
func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

var _ collaboration.InvitationRepository = (*InvitationRepository)(nil)

func (r *InvitationRepository) Create(ctx context.Context, inv *collaboration.TeamInvitation) error {
	if err := conn(ctx, r.db).Create(entity.FromDomainTeamInvitation(inv)).Error; err != nil {
		// one pending invitation per team and email
		if isDuplicate(err) {
			return collaboration.ErrInvitationAlreadyExists
		}
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id collaboration.InvitationID) (*collaboration.TeamInvitation, error) {
	return r.first(ctx, "get invitation by ID", "id = ?", id.UUID())
}

func (r *InvitationRepository) FindByToken(ctx context.Context, token collaboration.InvitationToken) (*collaboration.TeamInvitation, error) {
	return r.first(ctx, "get invitation by token", "token = ?", token.String())
}

func (r *InvitationRepository) first(ctx context.Context, op, query string, args ...interface{}) (*collaboration.TeamInvitation, error) {
	var e entity.TeamInvitationEntity
	err := conn(ctx, r.db).Where(query, args...).Order("created_at DESC").First(&e).Error
	if err != nil {
		if isNotFound(err) {
			return nil, collaboration.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e.ToDomain(), nil
}

// Update issues a conditional UPDATE so that two concurrent transitions of
// the same invitation cannot both succeed.
func (r *InvitationRepository) Update(ctx context.Context, inv *collaboration.TeamInvitation, expected collaboration.InvitationStatus) error {
	db := conn(ctx, r.db)
	result := db.
		Model(&entity.TeamInvitationEntity{}).
		Where("id = ? AND status = ?", inv.ID().UUID(), expected.String()).
		Updates(map[string]interface{}{
			"status":     inv.Status().String(),
			"role":       inv.Role().String(),
			"expires_at": inv.ExpiresAt(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update invitation: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&entity.TeamInvitationEntity{}).Where("id = ?", inv.ID().UUID()).Count(&count).Error; err != nil {
		return fmt.Errorf("check invitation: %w", err)
	}
	if count == 0 {
		return collaboration.ErrInvitationNotFound
	}
	return collaboration.ErrInvitationNotPending
}

func (r *InvitationRepository) Delete(ctx context.Context, id collaboration.InvitationID) error {
	result := conn(ctx, r.db).Where("id = ?", id.UUID()).Delete(&entity.TeamInvitationEntity{})
	if result.Error != nil {
		return fmt.Errorf("delete invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return collaboration.ErrInvitationNotFound
	}
	return nil
}

func (r *InvitationRepository) FindPendingByEmail(ctx context.Context, email collaboration.Email) ([]*collaboration.InvitationWithDetails, error) {
	var rows []entity.InvitationWithDetailsRow
	err := conn(ctx, r.db).
		Table("team_invitations").
		Select("team_invitations.*, teams.name AS team_name, users.name AS inviter_name").
		Joins("JOIN teams ON teams.id = team_invitations.team_id").
		Joins("LEFT JOIN users ON users.id = team_invitations.invited_by").
		Where("team_invitations.email = ? AND team_invitations.status = ?", email.String(), collaboration.InvitationStatusPending.String()).
		Order("team_invitations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list pending invitations by email: %w", err)
	}

	out := make([]*collaboration.InvitationWithDetails, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *InvitationRepository) FindPendingByTeamAndEmail(ctx context.Context, teamID collaboration.TeamID, email collaboration.Email) (*collaboration.TeamInvitation, error) {
	return r.first(ctx, "get pending invitation",
		"team_id = ? AND email = ? AND status = ?",
		teamID.UUID(), email.String(), collaboration.InvitationStatusPending.String())
}

func (r *InvitationRepository) FindByTeam(ctx context.Context, teamID collaboration.TeamID, status *collaboration.InvitationStatus) ([]*collaboration.TeamInvitation, error) {
	query := conn(ctx, r.db).Where("team_id = ?", teamID.UUID())
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	var entities []entity.TeamInvitationEntity
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list invitations by team: %w", err)
	}

	invitations := make([]*collaboration.TeamInvitation, len(entities))
	for i := range entities {
		invitations[i] = entities[i].ToDomain()
	}
	return invitations, nil
}
