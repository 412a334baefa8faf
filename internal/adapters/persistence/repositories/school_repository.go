package repositories

import (
	"context"
	"errors"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// schoolRepository implements SchoolRepository interface
type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

// Create creates a new school
func (r *schoolRepository) Create(ctx context.Context, s *models.School) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

// GetByID gets a school by ID with its manager
func (r *schoolRepository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var s models.School
	err := r.db.WithContext(ctx).Preload("Manager").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByManagerID gets the school owned by a manager
func (r *schoolRepository) GetByManagerID(ctx context.Context, managerID uint) (*models.School, error) {
	var s models.School
	err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update updates a school. The is_active column is excluded: activation
// state only changes through SetActive.
func (r *schoolRepository) Update(ctx context.Context, s *models.School) error {
	return r.db.WithContext(ctx).Model(s).Omit("is_active").Updates(map[string]interface{}{
		"name":    s.Name,
		"address": s.Address,
		"email":   s.Email,
	}).Error
}

// SetActive flips the activation flag
func (r *schoolRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.School{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// List lists all schools with pagination (admin)
func (r *schoolRepository) List(ctx context.Context, offset, limit int) ([]*models.School, int64, error) {
	var schools []*models.School
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.School{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Manager").
		Order("is_active DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&schools).Error

	return schools, total, err
}

// CreateSemester creates a semester; (name, school) pairs are unique
func (r *schoolRepository) CreateSemester(ctx context.Context, s *models.Semester) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

// SemesterByID gets a semester by ID
func (r *schoolRepository) SemesterByID(ctx context.Context, id uint) (*models.Semester, error) {
	var s models.Semester
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSemesters lists a school's semesters, newest first
func (r *schoolRepository) ListSemesters(ctx context.Context, schoolID uint) ([]*models.Semester, error) {
	var semesters []*models.Semester
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("start_date DESC").
		Find(&semesters).Error
	return semesters, err
}

// DeleteSemester deletes a semester
func (r *schoolRepository) DeleteSemester(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Semester{}, id).Error
}
