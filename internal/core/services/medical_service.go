package services

import (
	"context"
	"errors"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"
	"fieldside/internal/pkg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MedicalService handles player medical records
type MedicalService struct {
	medicalRepo   repositories.MedicalRepository
	sessionRepo   repositories.SessionRepository
	teamRepo      repositories.TeamRepository
	directoryRepo repositories.DirectoryRepository
	scopeService  *ScopeService
}

// NewMedicalService creates a new medical service
func NewMedicalService(
	medicalRepo repositories.MedicalRepository,
	sessionRepo repositories.SessionRepository,
	teamRepo repositories.TeamRepository,
	directoryRepo repositories.DirectoryRepository,
	scopeService *ScopeService,
) *MedicalService {
	return &MedicalService{
		medicalRepo:   medicalRepo,
		sessionRepo:   sessionRepo,
		teamRepo:      teamRepo,
		directoryRepo: directoryRepo,
		scopeService:  scopeService,
	}
}

// CreateMedicalRecordInput represents medical record creation input
type CreateMedicalRecordInput struct {
	PlayerID          uint       `json:"player_id" validate:"required"`
	TrainingSessionID uint       `json:"training_session_id" validate:"required"`
	Title             string     `json:"title" validate:"required,max=200"`
	Description       string     `json:"description"`
	DiagnosedDate     time.Time  `json:"diagnosed_date" validate:"required"`
	RecoveryDate      *time.Time `json:"recovery_date"`
	PsychologistNote  string     `json:"psychologist_note" validate:"max=500"`
	DoctorName        string     `json:"doctor_name" validate:"max=100"`
}

// UpdateMedicalRecordInput represents medical record update input
type UpdateMedicalRecordInput struct {
	Title            *string    `json:"title" validate:"omitempty,max=200"`
	Description      *string    `json:"description"`
	RecoveryDate     *time.Time `json:"recovery_date"`
	PsychologistNote *string    `json:"psychologist_note" validate:"omitempty,max=500"`
	DoctorName       *string    `json:"doctor_name" validate:"omitempty,max=100"`
	IsActive         *bool      `json:"is_active"`
}

// CreateMedicalRecord files an injury or diagnosis against a player and the
// session it happened at. The recorder needs attendance-level access to the
// session.
func (s *MedicalService) CreateMedicalRecord(ctx context.Context, actor domain.Actor, input *CreateMedicalRecordInput) (*models.MedicalRecord, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 2. Load the session and its team, authorize the recorder
	session, err := s.sessionRepo.GetByID(ctx, input.TrainingSessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	team := session.Team
	if team == nil {
		team, err = s.teamRepo.GetByID(ctx, session.TeamID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.scopeService.CanRecordAttendance(actor, session, team); err != nil {
		return nil, err
	}

	// 3. The player must be visible to the recorder
	player, err := s.directoryRepo.PlayerByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.scopeService.CanViewPlayer(ctx, actor, player); err != nil {
		return nil, err
	}

	createdBy := actor.UserID
	record := &models.MedicalRecord{
		PlayerID:          player.ID,
		TrainingSessionID: session.ID,
		Title:             input.Title,
		Description:       input.Description,
		DiagnosedDate:     datatypes.Date(input.DiagnosedDate),
		PsychologistNote:  input.PsychologistNote,
		DoctorName:        input.DoctorName,
		IsActive:          true,
		CreatedBy:         &createdBy,
	}
	if input.RecoveryDate != nil {
		d := datatypes.Date(*input.RecoveryDate)
		record.RecoveryDate = &d
	}

	if err := s.medicalRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetMedicalRecord returns a record the actor may view
func (s *MedicalService) GetMedicalRecord(ctx context.Context, actor domain.Actor, id uint) (*models.MedicalRecord, error) {
	record, err := s.medicalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, record.PlayerID); err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateMedicalRecord updates a record, typically to close it with a
// recovery date.
func (s *MedicalService) UpdateMedicalRecord(ctx context.Context, actor domain.Actor, id uint, input *UpdateMedicalRecordInput) (*models.MedicalRecord, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	record, err := s.medicalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// players read their records but never edit them
	if actor.IsPlayer() {
		return nil, domain.ErrForbidden
	}
	if err := s.authorizeView(ctx, actor, record.PlayerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		record.Title = *input.Title
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.RecoveryDate != nil {
		d := datatypes.Date(*input.RecoveryDate)
		record.RecoveryDate = &d
	}
	if input.PsychologistNote != nil {
		record.PsychologistNote = *input.PsychologistNote
	}
	if input.DoctorName != nil {
		record.DoctorName = *input.DoctorName
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	if err := s.medicalRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteMedicalRecord removes a record
func (s *MedicalService) DeleteMedicalRecord(ctx context.Context, actor domain.Actor, id uint) error {
	record, err := s.medicalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if actor.IsPlayer() {
		return domain.ErrForbidden
	}
	if err := s.authorizeView(ctx, actor, record.PlayerID); err != nil {
		return err
	}
	return s.medicalRepo.Delete(ctx, id)
}

// ListPlayerMedicalRecords lists a player's medical history
func (s *MedicalService) ListPlayerMedicalRecords(ctx context.Context, actor domain.Actor, playerID uint, offset, limit int) ([]*models.MedicalRecord, int64, error) {
	if err := s.authorizeView(ctx, actor, playerID); err != nil {
		return nil, 0, err
	}
	return s.medicalRepo.ListByPlayer(ctx, playerID, offset, limit)
}

func (s *MedicalService) authorizeView(ctx context.Context, actor domain.Actor, playerID uint) error {
	player, err := s.directoryRepo.PlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.scopeService.CanViewPlayer(ctx, actor, player)
}
