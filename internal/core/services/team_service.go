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

// Team service errors
var (
	ErrTeamFull          = fmt.Errorf("%w: team roster is at capacity", domain.ErrConflict)
	ErrAlreadyOnRoster   = fmt.Errorf("%w: player is already on the roster", domain.ErrConflict)
	ErrNotOnRoster       = fmt.Errorf("%w: player is not on the roster", domain.ErrConflict)
	ErrPlayerOtherSchool = fmt.Errorf("%w: player belongs to a different school", domain.ErrValidation)
	ErrCoachOtherSchool  = fmt.Errorf("%w: coach belongs to a different school", domain.ErrValidation)
)

// TeamService handles team and roster business logic
type TeamService struct {
	teamRepo      repositories.TeamRepository
	directoryRepo repositories.DirectoryRepository
	schoolRepo    repositories.SchoolRepository
	scopeService  *ScopeService
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repositories.TeamRepository,
	directoryRepo repositories.DirectoryRepository,
	schoolRepo repositories.SchoolRepository,
	scopeService *ScopeService,
) *TeamService {
	return &TeamService{
		teamRepo:      teamRepo,
		directoryRepo: directoryRepo,
		schoolRepo:    schoolRepo,
		scopeService:  scopeService,
	}
}

// CreateTeamInput represents team creation input
type CreateTeamInput struct {
	Name                 string    `json:"name" validate:"required,max=100"`
	CoachID              *uint     `json:"coach_id"`
	SemesterID           *uint     `json:"semester_id"`
	Specialization       string    `json:"specialization" validate:"max=150"`
	Location             string    `json:"location" validate:"max=255"`
	TrainingLocation     string    `json:"training_location" validate:"max=255"`
	Capacity             uint      `json:"capacity" validate:"required,min=1"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	StartTime            string    `json:"start_time" validate:"max=10"`
	ClassDuration        uint      `json:"class_duration"`
	EventDays            []string  `json:"event_days"`
	EquipmentRequired    bool      `json:"equipment_required"`
	EquipmentDescription string    `json:"equipment_description"`
	PaymentType          string    `json:"payment_type" validate:"required,oneof=card_transfer cash online"`
	PricePerMonth        int64     `json:"price_per_month" validate:"gte=0"`
}

// UpdateTeamInput represents team update input
type UpdateTeamInput struct {
	Name             *string  `json:"name" validate:"omitempty,max=100"`
	CoachID          *uint    `json:"coach_id"`
	Specialization   *string  `json:"specialization" validate:"omitempty,max=150"`
	Location         *string  `json:"location" validate:"omitempty,max=255"`
	TrainingLocation *string  `json:"training_location" validate:"omitempty,max=255"`
	Capacity         *uint    `json:"capacity" validate:"omitempty,min=1"`
	StartTime        *string  `json:"start_time" validate:"omitempty,max=10"`
	ClassDuration    *uint    `json:"class_duration"`
	EventDays        []string `json:"event_days"`
	PricePerMonth    *int64   `json:"price_per_month" validate:"omitempty,gte=0"`
}

// CreateTeam creates a team inside the acting manager's school
func (s *TeamService) CreateTeam(ctx context.Context, actor domain.Actor, input *CreateTeamInput) (*models.Team, error) {
	// 1. Only the school's manager (or admin) creates teams
	if !actor.IsAdmin && !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if actor.SchoolID == 0 {
		return nil, domain.NewValidationError("school", "manager has no school")
	}

	// 2. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domain.NewValidationError("end_date", "must not be before start_date")
	}
	for _, day := range input.EventDays {
		if !domain.ValidWeekdayTag(day) {
			return nil, domain.NewValidationError("event_days", "unknown weekday tag: "+day)
		}
	}

	// 3. An assigned coach must belong to the same school
	if input.CoachID != nil {
		if err := s.checkCoachSchool(ctx, *input.CoachID, actor.SchoolID); err != nil {
			return nil, err
		}
	}

	team := &models.Team{
		Name:                 input.Name,
		SchoolID:             actor.SchoolID,
		ManagerID:            actor.ManagerID,
		CoachID:              input.CoachID,
		SemesterID:           input.SemesterID,
		Specialization:       input.Specialization,
		Location:             input.Location,
		TrainingLocation:     input.TrainingLocation,
		Capacity:             input.Capacity,
		StartDate:            datatypes.Date(input.StartDate),
		EndDate:              datatypes.Date(input.EndDate),
		StartTime:            input.StartTime,
		ClassDuration:        input.ClassDuration,
		EquipmentRequired:    input.EquipmentRequired,
		EquipmentDescription: input.EquipmentDescription,
		PaymentType:          domain.TeamPaymentType(input.PaymentType),
		PricePerMonth:        input.PricePerMonth,
	}
	if err := team.SetEventDays(input.EventDays); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	log.Printf("✅ Team created: %s (school: %d)", team.Name, team.SchoolID)
	return team, nil
}

// GetTeam returns a team the actor may view
func (s *TeamService) GetTeam(ctx context.Context, actor domain.Actor, id uint) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.scopeService.CanViewTeam(ctx, actor, team); err != nil {
		return nil, err
	}
	return team, nil
}

// UpdateTeam updates a team
func (s *TeamService) UpdateTeam(ctx context.Context, actor domain.Actor, id uint, input *UpdateTeamInput) (*models.Team, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.scopeService.CanManageTeam(actor, team); err != nil {
		return nil, err
	}

	if input.CoachID != nil {
		if err := s.checkCoachSchool(ctx, *input.CoachID, team.SchoolID); err != nil {
			return nil, err
		}
		team.CoachID = input.CoachID
	}
	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Specialization != nil {
		team.Specialization = *input.Specialization
	}
	if input.Location != nil {
		team.Location = *input.Location
	}
	if input.TrainingLocation != nil {
		team.TrainingLocation = *input.TrainingLocation
	}
	if input.Capacity != nil {
		// shrinking below the current roster is rejected
		count, err := s.teamRepo.RosterCount(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		if int64(*input.Capacity) < count {
			return nil, domain.NewValidationError("capacity", "below current roster size")
		}
		team.Capacity = *input.Capacity
	}
	if input.StartTime != nil {
		team.StartTime = *input.StartTime
	}
	if input.ClassDuration != nil {
		team.ClassDuration = *input.ClassDuration
	}
	if input.PricePerMonth != nil {
		team.PricePerMonth = *input.PricePerMonth
	}
	if input.EventDays != nil {
		for _, day := range input.EventDays {
			if !domain.ValidWeekdayTag(day) {
				return nil, domain.NewValidationError("event_days", "unknown weekday tag: "+day)
			}
		}
		if err := team.SetEventDays(input.EventDays); err != nil {
			return nil, err
		}
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam soft deletes a team
func (s *TeamService) DeleteTeam(ctx context.Context, actor domain.Actor, id uint) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := s.scopeService.CanManageTeam(actor, team); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}

// ListTeams lists the teams inside the actor's scope
func (s *TeamService) ListTeams(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.Team, int64, error) {
	scope, err := s.scopeService.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	var filter repositories.TeamFilter
	switch {
	case scope.All:
		// no filter
	case actor.IsManager():
		if len(scope.SchoolIDs) == 0 {
			return nil, 0, nil
		}
		filter.SchoolIDs = scope.SchoolIDs
	case actor.IsCoach():
		filter.CoachID = &actor.CoachID
	case actor.IsPlayer():
		filter.PlayerID = &actor.PlayerID
	default:
		return nil, 0, domain.ErrForbidden
	}

	return s.teamRepo.List(ctx, filter, offset, limit)
}

// AddPlayer adds a player to the roster. The player must belong to the
// team's school and the roster must have room.
func (s *TeamService) AddPlayer(ctx context.Context, actor domain.Actor, teamID, playerID uint) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := s.scopeService.CanManageTeam(actor, team); err != nil {
		return err
	}

	player, err := s.directoryRepo.PlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if player.SchoolID != team.SchoolID {
		return ErrPlayerOtherSchool
	}

	onRoster, err := s.teamRepo.HasPlayer(ctx, teamID, playerID)
	if err != nil {
		return err
	}
	if onRoster {
		return ErrAlreadyOnRoster
	}

	count, err := s.teamRepo.RosterCount(ctx, teamID)
	if err != nil {
		return err
	}
	if count >= int64(team.Capacity) {
		return ErrTeamFull
	}

	if err := s.teamRepo.AddPlayer(ctx, teamID, playerID); err != nil {
		return err
	}

	log.Printf("✅ Player %d added to team %d", playerID, teamID)
	return nil
}

// RemovePlayer removes a player from the roster
func (s *TeamService) RemovePlayer(ctx context.Context, actor domain.Actor, teamID, playerID uint) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := s.scopeService.CanManageTeam(actor, team); err != nil {
		return err
	}

	onRoster, err := s.teamRepo.HasPlayer(ctx, teamID, playerID)
	if err != nil {
		return err
	}
	if !onRoster {
		return ErrNotOnRoster
	}

	return s.teamRepo.RemovePlayer(ctx, teamID, playerID)
}

func (s *TeamService) checkCoachSchool(ctx context.Context, coachID, schoolID uint) error {
	coach, err := s.directoryRepo.CoachByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewValidationError("coach_id", "coach does not exist")
		}
		return err
	}
	if coach.SchoolID != schoolID {
		return ErrCoachOtherSchool
	}
	return nil
}
