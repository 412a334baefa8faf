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

// Session service errors
var (
	ErrSessionCanceled        = fmt.Errorf("%w: session is canceled", domain.ErrConflict)
	ErrAttendanceExists       = fmt.Errorf("%w: attendance already recorded for this player and session", domain.ErrConflict)
	ErrPlayerNotOnSessionTeam = fmt.Errorf("%w: player is not on the session's team", domain.ErrValidation)
)

// SessionService handles training session and attendance business logic
type SessionService struct {
	sessionRepo    repositories.SessionRepository
	attendanceRepo repositories.AttendanceRepository
	teamRepo       repositories.TeamRepository
	directoryRepo  repositories.DirectoryRepository
	scopeService   *ScopeService
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repositories.SessionRepository,
	attendanceRepo repositories.AttendanceRepository,
	teamRepo repositories.TeamRepository,
	directoryRepo repositories.DirectoryRepository,
	scopeService *ScopeService,
) *SessionService {
	return &SessionService{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		teamRepo:       teamRepo,
		directoryRepo:  directoryRepo,
		scopeService:   scopeService,
	}
}

// CreateSessionInput represents session creation input
type CreateSessionInput struct {
	TeamID      uint      `json:"team_id" validate:"required"`
	CoachID     *uint     `json:"coach_id"`
	Title       string    `json:"title" validate:"required,max=255"`
	Date        time.Time `json:"date" validate:"required"`
	StartTime   string    `json:"start_time" validate:"required,max=10"`
	EndTime     string    `json:"end_time" validate:"required,max=10"`
	Location    string    `json:"location" validate:"max=255"`
	Description string    `json:"description"`
	SessionType string    `json:"session_type" validate:"omitempty,oneof=tactical technical fitness friendly_match"`
}

// UpdateSessionInput represents session update input
type UpdateSessionInput struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Date        *time.Time `json:"date"`
	StartTime   *string    `json:"start_time" validate:"omitempty,max=10"`
	EndTime     *string    `json:"end_time" validate:"omitempty,max=10"`
	Location    *string    `json:"location" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	SessionType *string    `json:"session_type" validate:"omitempty,oneof=tactical technical fitness friendly_match"`
	CoachID     *uint      `json:"coach_id"`
}

// RecordAttendanceInput represents attendance recording input
type RecordAttendanceInput struct {
	PlayerID    uint     `json:"player_id" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=present absent late excused"`
	Score       *float64 `json:"score" validate:"omitempty,gte=0,max=100"`
	TrainerNote string   `json:"trainer_note"`
}

// UpdateAttendanceInput represents attendance update input
type UpdateAttendanceInput struct {
	Status      *string  `json:"status" validate:"omitempty,oneof=present absent late excused"`
	Score       *float64 `json:"score" validate:"omitempty,gte=0,max=100"`
	TrainerNote *string  `json:"trainer_note"`
}

// CreateSession schedules a training session for a team. The school's
// manager or the team's coach may schedule.
func (s *SessionService) CreateSession(ctx context.Context, actor domain.Actor, input *CreateSessionInput) (*models.TrainingSession, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 2. Load the team and authorize
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeSchedule(actor, team); err != nil {
		return nil, err
	}

	sessionType := domain.SessionType(input.SessionType)
	if input.SessionType == "" {
		sessionType = domain.SessionTechnical
	}

	session := &models.TrainingSession{
		TeamID:      team.ID,
		CoachID:     input.CoachID,
		Title:       input.Title,
		Date:        datatypes.Date(input.Date),
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		Description: input.Description,
		SessionType: sessionType,
	}
	// sessions inherit the team coach unless overridden
	if session.CoachID == nil {
		session.CoachID = team.CoachID
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ Session created: %s (team: %d)", session.Title, team.ID)
	return session, nil
}

// GetSession returns a session the actor may view
func (s *SessionService) GetSession(ctx context.Context, actor domain.Actor, id uint) (*models.TrainingSession, error) {
	session, team, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.scopeService.CanViewTeam(ctx, actor, team); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSession updates a session's schedule fields
func (s *SessionService) UpdateSession(ctx context.Context, actor domain.Actor, id uint, input *UpdateSessionInput) (*models.TrainingSession, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	session, team, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeSchedule(actor, team); err != nil {
		return nil, err
	}

	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Date != nil {
		session.Date = datatypes.Date(*input.Date)
	}
	if input.StartTime != nil {
		session.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		session.EndTime = *input.EndTime
	}
	if input.Location != nil {
		session.Location = *input.Location
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.SessionType != nil {
		session.SessionType = domain.SessionType(*input.SessionType)
	}
	if input.CoachID != nil {
		session.CoachID = input.CoachID
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession marks a session canceled. Canceling twice is a conflict.
func (s *SessionService) CancelSession(ctx context.Context, actor domain.Actor, id uint) error {
	session, team, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeSchedule(actor, team); err != nil {
		return err
	}
	if session.IsCanceled {
		return ErrSessionCanceled
	}

	session.IsCanceled = true
	return s.sessionRepo.Update(ctx, session)
}

// DeleteSession removes a session
func (s *SessionService) DeleteSession(ctx context.Context, actor domain.Actor, id uint) error {
	_, team, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeSchedule(actor, team); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, id)
}

// ListSessions lists sessions inside the actor's scope, soonest first
func (s *SessionService) ListSessions(ctx context.Context, actor domain.Actor, teamID *uint, fromDate *time.Time, offset, limit int) ([]*models.TrainingSession, int64, error) {
	scope, err := s.scopeService.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	filter := repositories.SessionFilter{
		TeamID:   teamID,
		FromDate: fromDate,
	}
	if !scope.All {
		if len(scope.TeamIDs) == 0 {
			return nil, 0, nil
		}
		filter.TeamIDs = scope.TeamIDs
	}

	return s.sessionRepo.List(ctx, filter, offset, limit)
}

// RecordAttendance records one attendance outcome for a player at a session.
// A second record for the same pair is a conflict.
func (s *SessionService) RecordAttendance(ctx context.Context, actor domain.Actor, sessionID uint, input *RecordAttendanceInput) (*models.Attendance, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 2. Load the session and authorize
	session, team, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.scopeService.CanRecordAttendance(actor, session, team); err != nil {
		return nil, err
	}
	if session.IsCanceled {
		return nil, ErrSessionCanceled
	}

	// 3. The player must be rostered on the session's team
	onRoster, err := s.teamRepo.HasPlayer(ctx, team.ID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if !onRoster {
		return nil, ErrPlayerNotOnSessionTeam
	}

	// 4. Insert; the unique index catches the duplicate race
	attendance := &models.Attendance{
		PlayerID:          input.PlayerID,
		TrainingSessionID: session.ID,
		Status:            domain.AttendanceStatus(input.Status),
		Score:             input.Score,
		TrainerNote:       input.TrainerNote,
		RecordedBy:        actor.UserID,
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrAttendanceExists
		}
		return nil, err
	}

	log.Printf("✅ Attendance recorded: player %d session %d (%s)", input.PlayerID, session.ID, input.Status)
	return attendance, nil
}

// UpdateAttendance corrects an existing attendance record
func (s *SessionService) UpdateAttendance(ctx context.Context, actor domain.Actor, attendanceID uint, input *UpdateAttendanceInput) (*models.Attendance, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	attendance, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	session, team, err := s.loadSession(ctx, attendance.TrainingSessionID)
	if err != nil {
		return nil, err
	}
	if err := s.scopeService.CanRecordAttendance(actor, session, team); err != nil {
		return nil, err
	}

	if input.Status != nil {
		attendance.Status = domain.AttendanceStatus(*input.Status)
	}
	if input.Score != nil {
		attendance.Score = input.Score
	}
	if input.TrainerNote != nil {
		attendance.TrainerNote = *input.TrainerNote
	}

	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// ListSessionAttendance lists the attendance sheet of a session
func (s *SessionService) ListSessionAttendance(ctx context.Context, actor domain.Actor, sessionID uint) ([]*models.Attendance, error) {
	_, team, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.scopeService.CanViewTeam(ctx, actor, team); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListBySession(ctx, sessionID)
}

// ListPlayerAttendance lists a player's attendance history
func (s *SessionService) ListPlayerAttendance(ctx context.Context, actor domain.Actor, playerID uint, offset, limit int) ([]*models.Attendance, int64, error) {
	player, err := s.directoryRepo.PlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, err
	}
	if err := s.scopeService.CanViewPlayer(ctx, actor, player); err != nil {
		return nil, 0, err
	}
	return s.attendanceRepo.ListByPlayer(ctx, playerID, offset, limit)
}

// authorizeSchedule allows the admin, the owning school's manager, or the
// team's coach to manage the schedule.
func (s *SessionService) authorizeSchedule(actor domain.Actor, team *models.Team) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && team.SchoolID == actor.SchoolID {
		return nil
	}
	if actor.IsCoach() && team.CoachID != nil && *team.CoachID == actor.CoachID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *SessionService) loadSession(ctx context.Context, id uint) (*models.TrainingSession, *models.Team, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	team := session.Team
	if team == nil {
		team, err = s.teamRepo.GetByID(ctx, session.TeamID)
		if err != nil {
			return nil, nil, err
		}
	}
	return session, team, nil
}
