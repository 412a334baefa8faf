package repositories

import (
	"context"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// directoryRepository implements DirectoryRepository interface
type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a new role directory repository
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

// ------------------------------------------------------------
// Managers
// ------------------------------------------------------------

// CreateManager creates a new manager record
func (r *directoryRepository) CreateManager(ctx context.Context, m *models.Manager) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ManagerByID gets a manager by ID
func (r *directoryRepository) ManagerByID(ctx context.Context, id uint) (*models.Manager, error) {
	var m models.Manager
	err := r.db.WithContext(ctx).Preload("User").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ManagerByUserID gets a manager by its linked user
func (r *directoryRepository) ManagerByUserID(ctx context.Context, userID uint) (*models.Manager, error) {
	var m models.Manager
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateManager updates a manager
func (r *directoryRepository) UpdateManager(ctx context.Context, m *models.Manager) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// DeleteManager deletes a manager unless a school, coach or team still
// references it. Protected delete: dependents never cascade.
func (r *directoryRepository) DeleteManager(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.School{}).Where("manager_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	if err := r.db.WithContext(ctx).Model(&models.Coach{}).Where("manager_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	if err := r.db.WithContext(ctx).Model(&models.Team{}).Where("manager_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	// Players keep a nullable reference and survive the deletion.
	if err := r.db.WithContext(ctx).Model(&models.Player{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Manager{}, id).Error
}

// ------------------------------------------------------------
// Coaches
// ------------------------------------------------------------

// CreateCoach creates a new coach record
func (r *directoryRepository) CreateCoach(ctx context.Context, c *models.Coach) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CoachByID gets a coach by ID
func (r *directoryRepository) CoachByID(ctx context.Context, id uint) (*models.Coach, error) {
	var c models.Coach
	err := r.db.WithContext(ctx).Preload("User").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CoachByUserID gets a coach by its linked user
func (r *directoryRepository) CoachByUserID(ctx context.Context, userID uint) (*models.Coach, error) {
	var c models.Coach
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCoach updates a coach
func (r *directoryRepository) UpdateCoach(ctx context.Context, c *models.Coach) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteCoach soft deletes a coach and unassigns it from its teams
func (r *directoryRepository) DeleteCoach(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Team{}).Where("coach_id = ?", id).Update("coach_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Coach{}, id).Error
	})
}

// ListCoaches lists coaches hired by a manager
func (r *directoryRepository) ListCoaches(ctx context.Context, managerID uint, offset, limit int) ([]*models.Coach, int64, error) {
	var coaches []*models.Coach
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Coach{}).Where("manager_id = ?", managerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&coaches).Error

	return coaches, total, err
}

// ------------------------------------------------------------
// Players
// ------------------------------------------------------------

// CreatePlayer creates a new player record
func (r *directoryRepository) CreatePlayer(ctx context.Context, p *models.Player) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// PlayerByID gets a player by ID
func (r *directoryRepository) PlayerByID(ctx context.Context, id uint) (*models.Player, error) {
	var p models.Player
	err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PlayerByUserID gets a player by its linked user
func (r *directoryRepository) PlayerByUserID(ctx context.Context, userID uint) (*models.Player, error) {
	var p models.Player
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlayer updates a player
func (r *directoryRepository) UpdatePlayer(ctx context.Context, p *models.Player) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// DeletePlayer soft deletes a player
func (r *directoryRepository) DeletePlayer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Player{}, id).Error
}

// ListPlayers lists players scoped to the given schools.
// An empty schoolIDs slice means no scoping (admin).
func (r *directoryRepository) ListPlayers(ctx context.Context, schoolIDs []uint, offset, limit int) ([]*models.Player, int64, error) {
	var players []*models.Player
	var total int64

	countQ := r.db.WithContext(ctx).Model(&models.Player{})
	listQ := r.db.WithContext(ctx).Preload("User")
	if len(schoolIDs) > 0 {
		countQ = countQ.Where("school_id IN ?", schoolIDs)
		listQ = listQ.Where("school_id IN ?", schoolIDs)
	}

	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := listQ.Order("created_at DESC").Offset(offset).Limit(limit).Find(&players).Error
	return players, total, err
}

// PlayerIDsForSchool returns the IDs of all players enrolled in a school
func (r *directoryRepository) PlayerIDsForSchool(ctx context.Context, schoolID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("school_id = ?", schoolID).
		Pluck("id", &ids).Error
	return ids, err
}
