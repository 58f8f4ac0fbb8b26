package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/infra/persistence/entity"
)

// TeamRepository implements collaboration.TeamRepository.
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

var _ collaboration.TeamRepository = (*TeamRepository)(nil)

func (r *TeamRepository) Create(ctx context.Context, team *collaboration.Team, ownerID collaboration.UserID) (*collaboration.Team, error) {
	owner := collaboration.NewTeamMembership(team.ID(), ownerID, collaboration.RoleOwner, team.CreatedAt())
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entity.FromDomainTeam(team)).Error; err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		if err := tx.Create(entity.FromDomainTeamMembership(owner)).Error; err != nil {
			return fmt.Errorf("create owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id collaboration.TeamID) (*collaboration.Team, error) {
	var e entity.TeamEntity
	err := conn(ctx, r.db).Where("id = ?", id.UUID()).First(&e).Error
	if err != nil {
		if isNotFound(err) {
			return nil, collaboration.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team by ID: %w", err)
	}
	return e.ToDomain(), nil
}

func (r *TeamRepository) FindByIDWithMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.Team, *collaboration.TeamMembership, error) {
	team, err := r.FindByID(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	m, err := r.GetMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, collaboration.ErrMembershipNotFound) {
			return team, nil, nil
		}
		return nil, nil, err
	}
	return team, m, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *collaboration.Team) error {
	result := conn(ctx, r.db).
		Model(&entity.TeamEntity{}).
		Where("id = ?", team.ID().UUID()).
		Updates(map[string]interface{}{
			"name":        team.Name(),
			"description": team.Description(),
			"updated_at":  team.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("update team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return collaboration.ErrTeamNotFound
	}
	return nil
}

// Delete removes the team. Memberships, invitations and projects go with it
// through ON DELETE CASCADE.
func (r *TeamRepository) Delete(ctx context.Context, id collaboration.TeamID) error {
	result := conn(ctx, r.db).Where("id = ?", id.UUID()).Delete(&entity.TeamEntity{})
	if result.Error != nil {
		return fmt.Errorf("delete team: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return collaboration.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) FindByUserID(ctx context.Context, userID collaboration.UserID) ([]*collaboration.TeamWithRole, error) {
	var rows []entity.TeamWithRoleRow
	err := conn(ctx, r.db).
		Table("teams").
		Select("teams.*, team_memberships.role AS member_role").
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", userID.UUID()).
		Order("teams.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	teams := make([]*collaboration.TeamWithRole, len(rows))
	for i := range rows {
		teams[i] = rows[i].ToDomain()
	}
	return teams, nil
}

func (r *TeamRepository) GetMemberships(ctx context.Context, teamID collaboration.TeamID) ([]*collaboration.MemberWithUser, error) {
	var rows []entity.MemberWithUserRow
	err := conn(ctx, r.db).
		Table("team_memberships").
		Select("team_memberships.*, users.name AS user_name, users.email AS user_email, users.avatar_url AS user_avatar_url").
		Joins("JOIN users ON users.id = team_memberships.user_id").
		Where("team_memberships.team_id = ?", teamID.UUID()).
		Order("team_memberships.joined_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list members with users: %w", err)
	}

	members := make([]*collaboration.MemberWithUser, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return members, nil
}

func (r *TeamRepository) GetMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (*collaboration.TeamMembership, error) {
	var e entity.TeamMembershipEntity
	err := conn(ctx, r.db).
		Where("team_id = ? AND user_id = ?", teamID.UUID(), userID.UUID()).
		First(&e).Error
	if err != nil {
		if isNotFound(err) {
			return nil, collaboration.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return e.ToDomain(), nil
}

func (r *TeamRepository) AddMembership(ctx context.Context, m *collaboration.TeamMembership) error {
	if err := conn(ctx, r.db).Create(entity.FromDomainTeamMembership(m)).Error; err != nil {
		if isDuplicate(err) {
			return collaboration.ErrAlreadyMember
		}
		return fmt.Errorf("add membership: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpdateMembership(ctx context.Context, m *collaboration.TeamMembership, previous collaboration.TeamRole) error {
	db := conn(ctx, r.db)
	result := db.
		Model(&entity.TeamMembershipEntity{}).
		Where("id = ? AND role = ?", m.ID().UUID(), previous.String()).
		Update("role", m.Role().String())
	if result.Error != nil {
		return fmt.Errorf("update membership: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&entity.TeamMembershipEntity{}).Where("id = ?", m.ID().UUID()).Count(&count).Error; err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if count == 0 {
		return collaboration.ErrMembershipNotFound
	}
	return collaboration.ErrConcurrentUpdate
}

func (r *TeamRepository) RemoveMembership(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) error {
	result := conn(ctx, r.db).
		Where("team_id = ? AND user_id = ?", teamID.UUID(), userID.UUID()).
		Delete(&entity.TeamMembershipEntity{})
	if result.Error != nil {
		return fmt.Errorf("remove membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return collaboration.ErrMembershipNotFound
	}
	return nil
}

func (r *TeamRepository) CountMembers(ctx context.Context, teamID collaboration.TeamID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&entity.TeamMembershipEntity{}).
		Where("team_id = ?", teamID.UUID()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) IsMember(ctx context.Context, teamID collaboration.TeamID, userID collaboration.UserID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&entity.TeamMembershipEntity{}).
		Where("team_id = ? AND user_id = ?", teamID.UUID(), userID.UUID()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}

func (r *TeamRepository) IsEmailMember(ctx context.Context, teamID collaboration.TeamID, email collaboration.Email) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&entity.TeamMembershipEntity{}).
		Joins("JOIN users ON users.id = team_memberships.user_id").
		Where("team_memberships.team_id = ? AND users.email = ?", teamID.UUID(), email.String()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership by email: %w", err)
	}
	return count > 0, nil
}
