package repositories

import (
	"context"
	"errors"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new training session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new training session
func (r *sessionRepository) Create(ctx context.Context, s *models.TrainingSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetByID gets a session by ID with its team
func (r *sessionRepository) GetByID(ctx context.Context, id uint) (*models.TrainingSession, error) {
	var s models.TrainingSession
	err := r.db.WithContext(ctx).Preload("Team").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update updates a session
func (r *sessionRepository) Update(ctx context.Context, s *models.TrainingSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete deletes a session
func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TrainingSession{}, id).Error
}

func applySessionFilter(q *gorm.DB, filter SessionFilter) *gorm.DB {
	if len(filter.TeamIDs) > 0 {
		q = q.Where("team_id IN ?", filter.TeamIDs)
	}
	if filter.TeamID != nil {
		q = q.Where("team_id = ?", *filter.TeamID)
	}
	if filter.FromDate != nil {
		q = q.Where("date >= ?", *filter.FromDate)
	}
	if !filter.IncludeCanceled {
		q = q.Where("is_canceled = ?", false)
	}
	return q
}

// List lists sessions matching the filter, soonest first
func (r *sessionRepository) List(ctx context.Context, filter SessionFilter, offset, limit int) ([]*models.TrainingSession, int64, error) {
	var sessions []*models.TrainingSession
	var total int64

	countQ := applySessionFilter(r.db.WithContext(ctx).Model(&models.TrainingSession{}), filter)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQ := applySessionFilter(r.db.WithContext(ctx), filter)
	err := listQ.
		Preload("Team").
		Order("date, start_time").
		Offset(offset).
		Limit(limit).
		Find(&sessions).Error

	return sessions, total, err
}

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create inserts an attendance row. The unique (player, session) index is
// the last line of defense against a duplicate-insert race; the violation
// surfaces as domain.ErrConflict.
func (r *attendanceRepository) Create(ctx context.Context, a *models.Attendance) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

// GetByID gets an attendance record by ID
func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (*models.Attendance, error) {
	var a models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("TrainingSession").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Exists checks whether the (player, session) pair is already recorded
func (r *attendanceRepository) Exists(ctx context.Context, playerID, sessionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("player_id = ? AND training_session_id = ?", playerID, sessionID).
		Count(&count).Error
	return count > 0, err
}

// Update updates an attendance record
func (r *attendanceRepository) Update(ctx context.Context, a *models.Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// ListBySession lists all attendance rows for a session
func (r *attendanceRepository) ListBySession(ctx context.Context, sessionID uint) ([]*models.Attendance, error) {
	var rows []*models.Attendance
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Player.User").
		Where("training_session_id = ?", sessionID).
		Order("player_id").
		Find(&rows).Error
	return rows, err
}

// ListByPlayer lists a player's attendance history, newest first
func (r *attendanceRepository) ListByPlayer(ctx context.Context, playerID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	var rows []*models.Attendance
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Attendance{}).Where("player_id = ?", playerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("TrainingSession").
		Where("player_id = ?", playerID).
		Order("recorded_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error

	return rows, total, err
}
