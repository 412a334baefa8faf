package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"
	"fieldside/internal/pkg/validation"

	"gorm.io/gorm"
)

// Directory service errors
var (
	ErrManagerReferenced = fmt.Errorf("%w: manager still owns a school, coach or team", domain.ErrConflict)
)

// DirectoryService handles the manager/coach/player directory
type DirectoryService struct {
	directoryRepo repositories.DirectoryRepository
	scopeService  *ScopeService
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	directoryRepo repositories.DirectoryRepository,
	scopeService *ScopeService,
) *DirectoryService {
	return &DirectoryService{
		directoryRepo: directoryRepo,
		scopeService:  scopeService,
	}
}

// UpdateCoachInput represents coach profile update input
type UpdateCoachInput struct {
	Education         *string `json:"education" validate:"omitempty,max=255"`
	Specialty         *string `json:"specialty" validate:"omitempty,max=100"`
	Description       *string `json:"description"`
	BankAccountNumber *string `json:"bank_account_number" validate:"omitempty,sheba"`
}

// UpdatePlayerInput represents player profile update input
type UpdatePlayerInput struct {
	JerseyNumber *uint `json:"jersey_number"`
}

// GetCoach returns a coach visible to the actor
func (s *DirectoryService) GetCoach(ctx context.Context, actor domain.Actor, id uint) (*models.Coach, error) {
	coach, err := s.directoryRepo.CoachByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin &&
		!(actor.IsManager() && coach.ManagerID == actor.ManagerID) &&
		!(actor.IsCoach() && coach.ID == actor.CoachID) &&
		!(coach.SchoolID != 0 && coach.SchoolID == actor.SchoolID) {
		return nil, domain.ErrNotFound
	}
	return coach, nil
}

// UpdateCoach updates a coach profile. The hiring manager or the coach
// itself may edit.
func (s *DirectoryService) UpdateCoach(ctx context.Context, actor domain.Actor, id uint, input *UpdateCoachInput) (*models.Coach, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	coach, err := s.directoryRepo.CoachByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin &&
		!(actor.IsManager() && coach.ManagerID == actor.ManagerID) &&
		!(actor.IsCoach() && coach.ID == actor.CoachID) {
		return nil, domain.ErrNotFound
	}

	if input.Education != nil {
		coach.Education = *input.Education
	}
	if input.Specialty != nil {
		coach.Specialty = *input.Specialty
	}
	if input.Description != nil {
		coach.Description = *input.Description
	}
	if input.BankAccountNumber != nil {
		coach.BankAccountNumber = input.BankAccountNumber
	}

	if err := s.directoryRepo.UpdateCoach(ctx, coach); err != nil {
		return nil, err
	}
	return coach, nil
}

// ListCoaches lists the acting manager's coaches
func (s *DirectoryService) ListCoaches(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.Coach, int64, error) {
	if !actor.IsManager() && !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}
	return s.directoryRepo.ListCoaches(ctx, actor.ManagerID, offset, limit)
}

// GetPlayer returns a player visible to the actor
func (s *DirectoryService) GetPlayer(ctx context.Context, actor domain.Actor, id uint) (*models.Player, error) {
	player, err := s.directoryRepo.PlayerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.scopeService.CanViewPlayer(ctx, actor, player); err != nil {
		return nil, err
	}
	return player, nil
}

// UpdatePlayer updates a player profile. The school's manager or the player
// itself may edit.
func (s *DirectoryService) UpdatePlayer(ctx context.Context, actor domain.Actor, id uint, input *UpdatePlayerInput) (*models.Player, error) {
	player, err := s.directoryRepo.PlayerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin &&
		!(actor.IsManager() && player.SchoolID == actor.SchoolID) &&
		!(actor.IsPlayer() && player.ID == actor.PlayerID) {
		return nil, domain.ErrNotFound
	}

	if input.JerseyNumber != nil {
		player.JerseyNumber = input.JerseyNumber
	}

	if err := s.directoryRepo.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// ListPlayers lists the players in the actor's scope
func (s *DirectoryService) ListPlayers(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.Player, int64, error) {
	scope, err := s.scopeService.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	if scope.All {
		return s.directoryRepo.ListPlayers(ctx, nil, offset, limit)
	}
	if len(scope.SchoolIDs) == 0 {
		return nil, 0, nil
	}
	if actor.IsPlayer() {
		return nil, 0, domain.ErrForbidden
	}
	return s.directoryRepo.ListPlayers(ctx, scope.SchoolIDs, offset, limit)
}

// DeletePlayer removes a player from the school
func (s *DirectoryService) DeletePlayer(ctx context.Context, actor domain.Actor, id uint) error {
	player, err := s.directoryRepo.PlayerByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if !actor.IsAdmin && !(actor.IsManager() && player.SchoolID == actor.SchoolID) {
		return domain.ErrNotFound
	}
	return s.directoryRepo.DeletePlayer(ctx, id)
}

// DeleteManager removes a manager record. Protected: fails while a school,
// coach or team still references it.
func (s *DirectoryService) DeleteManager(ctx context.Context, actor domain.Actor, id uint) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}

	if _, err := s.directoryRepo.ManagerByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.directoryRepo.DeleteManager(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return ErrManagerReferenced
		}
		return err
	}

	log.Printf("✅ Manager %d deleted", id)
	return nil
}
