package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"
	"fieldside/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// School service errors
var (
	ErrSchoolAlreadyActive   = fmt.Errorf("%w: school is already active", domain.ErrConflict)
	ErrSchoolAlreadyInactive = fmt.Errorf("%w: school is already inactive", domain.ErrConflict)
	ErrManagerHasSchool      = fmt.Errorf("%w: manager already owns a school", domain.ErrConflict)
)

// SchoolService handles school and semester business logic
type SchoolService struct {
	schoolRepo    repositories.SchoolRepository
	directoryRepo repositories.DirectoryRepository
}

// NewSchoolService creates a new school service
func NewSchoolService(
	schoolRepo repositories.SchoolRepository,
	directoryRepo repositories.DirectoryRepository,
) *SchoolService {
	return &SchoolService{
		schoolRepo:    schoolRepo,
		directoryRepo: directoryRepo,
	}
}

// CreateSchoolInput represents school creation input
type CreateSchoolInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"required,email"`
}

// UpdateSchoolInput represents school update input
type UpdateSchoolInput struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Address *string `json:"address"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// CreateSemesterInput represents semester creation input
type CreateSemesterInput struct {
	Name      string    `json:"name" validate:"required,max=100"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// CreateSchool creates a school owned by the acting manager. A manager owns
// at most one school.
func (s *SchoolService) CreateSchool(ctx context.Context, actor domain.Actor, input *CreateSchoolInput) (*models.School, error) {
	// 1. Only managers create schools
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	// 2. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 3. One school per manager
	if _, err := s.schoolRepo.GetByManagerID(ctx, actor.ManagerID); err == nil {
		return nil, ErrManagerHasSchool
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	school := &models.School{
		Name:      input.Name,
		Address:   input.Address,
		Email:     input.Email,
		IsActive:  true,
		ManagerID: actor.ManagerID,
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}

	log.Printf("✅ School created: %s (manager: %d)", school.Name, actor.ManagerID)
	return school, nil
}

// GetSchool returns a school. Any authenticated actor may read a school's
// public record; it is an organizational container, not a private entity.
func (s *SchoolService) GetSchool(ctx context.Context, id uint) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return school, nil
}

// UpdateSchool updates a school's descriptive fields. The is_active flag is
// excluded; it only moves through Activate and Deactivate.
func (s *SchoolService) UpdateSchool(ctx context.Context, actor domain.Actor, id uint, input *UpdateSchoolInput) (*models.School, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	school, err := s.GetSchool(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(actor, school); err != nil {
		return nil, err
	}

	if input.Name != nil {
		school.Name = *input.Name
	}
	if input.Address != nil {
		school.Address = *input.Address
	}
	if input.Email != nil {
		school.Email = *input.Email
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// ActivateSchool turns an inactive school active. Activating an already
// active school is a conflict, not a no-op, so clients learn their picture
// of the state is stale.
func (s *SchoolService) ActivateSchool(ctx context.Context, actor domain.Actor, id uint) error {
	return s.setActive(ctx, actor, id, true)
}

// DeactivateSchool turns an active school inactive
func (s *SchoolService) DeactivateSchool(ctx context.Context, actor domain.Actor, id uint) error {
	return s.setActive(ctx, actor, id, false)
}

func (s *SchoolService) setActive(ctx context.Context, actor domain.Actor, id uint, active bool) error {
	school, err := s.GetSchool(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(actor, school); err != nil {
		return err
	}

	if school.IsActive == active {
		if active {
			return ErrSchoolAlreadyActive
		}
		return ErrSchoolAlreadyInactive
	}

	if err := s.schoolRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	log.Printf("✅ School %d active=%t", id, active)
	return nil
}

// ListSchools lists all schools. Admin only; managers reach their own school
// through GetSchool.
func (s *SchoolService) ListSchools(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.School, int64, error) {
	if !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}
	return s.schoolRepo.List(ctx, offset, limit)
}

// CreateSemester creates a semester within the acting manager's school.
// The (name, school) pair is unique.
func (s *SchoolService) CreateSemester(ctx context.Context, actor domain.Actor, schoolID uint, input *CreateSemesterInput) (*models.Semester, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domain.NewValidationError("end_date", "must not be before start_date")
	}

	school, err := s.GetSchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(actor, school); err != nil {
		return nil, err
	}

	semester := &models.Semester{
		Name:      input.Name,
		SchoolID:  school.ID,
		StartDate: datatypes.Date(input.StartDate),
		EndDate:   datatypes.Date(input.EndDate),
	}
	if err := s.schoolRepo.CreateSemester(ctx, semester); err != nil {
		return nil, err
	}
	return semester, nil
}

// ListSemesters lists a school's semesters
func (s *SchoolService) ListSemesters(ctx context.Context, schoolID uint) ([]*models.Semester, error) {
	return s.schoolRepo.ListSemesters(ctx, schoolID)
}

// DeleteSemester deletes a semester from the acting manager's school
func (s *SchoolService) DeleteSemester(ctx context.Context, actor domain.Actor, semesterID uint) error {
	semester, err := s.schoolRepo.SemesterByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	school, err := s.GetSchool(ctx, semester.SchoolID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(actor, school); err != nil {
		return err
	}

	return s.schoolRepo.DeleteSemester(ctx, semesterID)
}

// authorizeOwner allows the admin or the school's own manager
func (s *SchoolService) authorizeOwner(actor domain.Actor, school *models.School) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && school.ManagerID == actor.ManagerID {
		return nil
	}
	return domain.ErrForbidden
}
