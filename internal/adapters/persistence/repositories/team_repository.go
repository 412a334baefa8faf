package repositories

import (
	"context"

	"fieldside/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Create creates a new team
func (r *teamRepository) Create(ctx context.Context, t *models.Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetByID gets a team by ID with its school and coach
func (r *teamRepository) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var t models.Team
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Coach").
		Preload("Coach.User").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Update updates a team
func (r *teamRepository) Update(ctx context.Context, t *models.Team) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete soft deletes a team
func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Team{}, id).Error
}

func applyTeamFilter(q *gorm.DB, filter TeamFilter) *gorm.DB {
	if len(filter.SchoolIDs) > 0 {
		q = q.Where("teams.school_id IN ?", filter.SchoolIDs)
	}
	if filter.CoachID != nil {
		q = q.Where("teams.coach_id = ?", *filter.CoachID)
	}
	if filter.PlayerID != nil {
		q = q.Joins("JOIN team_players ON team_players.team_id = teams.id").
			Where("team_players.player_id = ?", *filter.PlayerID)
	}
	return q
}

// List lists teams matching the filter. The scope inside the filter is
// applied to the query itself, never by post-filtering fetched rows.
func (r *teamRepository) List(ctx context.Context, filter TeamFilter, offset, limit int) ([]*models.Team, int64, error) {
	var teams []*models.Team
	var total int64

	countQ := applyTeamFilter(r.db.WithContext(ctx).Model(&models.Team{}), filter)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQ := applyTeamFilter(r.db.WithContext(ctx).Model(&models.Team{}), filter)
	err := listQ.
		Preload("School").
		Preload("Coach").
		Order("teams.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&teams).Error

	return teams, total, err
}

// AddPlayer adds a player to the roster
func (r *teamRepository) AddPlayer(ctx context.Context, teamID, playerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Team{ID: teamID}).
		Association("Players").
		Append(&models.Player{ID: playerID})
}

// RemovePlayer removes a player from the roster
func (r *teamRepository) RemovePlayer(ctx context.Context, teamID, playerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Team{ID: teamID}).
		Association("Players").
		Delete(&models.Player{ID: playerID})
}

// HasPlayer checks roster membership
func (r *teamRepository) HasPlayer(ctx context.Context, teamID, playerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("team_players").
		Where("team_id = ? AND player_id = ?", teamID, playerID).
		Count(&count).Error
	return count > 0, err
}

// RosterCount counts the players on a team
func (r *teamRepository) RosterCount(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("team_players").
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// TeamIDsForSchool returns the IDs of all teams in a school
func (r *teamRepository) TeamIDsForSchool(ctx context.Context, schoolID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("school_id = ?", schoolID).
		Pluck("id", &ids).Error
	return ids, err
}

// TeamIDsForCoach returns the IDs of all teams assigned to a coach
func (r *teamRepository) TeamIDsForCoach(ctx context.Context, coachID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("coach_id = ?", coachID).
		Pluck("id", &ids).Error
	return ids, err
}

// TeamIDsForPlayer returns the IDs of all teams a player is rostered on
func (r *teamRepository) TeamIDsForPlayer(ctx context.Context, playerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("team_players").
		Where("player_id = ?", playerID).
		Pluck("team_id", &ids).Error
	return ids, err
}
