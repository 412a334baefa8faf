package repositories

import (
	"context"

	"fieldside/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// medicalRepository implements MedicalRepository interface
type medicalRepository struct {
	db *gorm.DB
}

// NewMedicalRepository creates a new medical record repository
func NewMedicalRepository(db *gorm.DB) MedicalRepository {
	return &medicalRepository{db: db}
}

// Create creates a medical record
func (r *medicalRepository) Create(ctx context.Context, m *models.MedicalRecord) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a medical record by ID
func (r *medicalRepository) GetByID(ctx context.Context, id uint) (*models.MedicalRecord, error) {
	var m models.MedicalRecord
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("TrainingSession").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update updates a medical record
func (r *medicalRepository) Update(ctx context.Context, m *models.MedicalRecord) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete deletes a medical record
func (r *medicalRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MedicalRecord{}, id).Error
}

// ListByPlayer lists a player's medical records, newest first
func (r *medicalRepository) ListByPlayer(ctx context.Context, playerID uint, offset, limit int) ([]*models.MedicalRecord, int64, error) {
	var records []*models.MedicalRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&models.MedicalRecord{}).Where("player_id = ?", playerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error

	return records, total, err
}
