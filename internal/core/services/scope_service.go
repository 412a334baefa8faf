package services

import (
	"context"
	"errors"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
)

// ScopeService resolves the acting identity of a request and the set of
// organizational IDs it may see. Every other service takes the resolved
// domain.Actor as an explicit argument; nothing reads auth state ambiently.
type ScopeService struct {
	userRepo      repositories.UserRepository
	directoryRepo repositories.DirectoryRepository
	schoolRepo    repositories.SchoolRepository
	teamRepo      repositories.TeamRepository
}

// NewScopeService creates a new scope service
func NewScopeService(
	userRepo repositories.UserRepository,
	directoryRepo repositories.DirectoryRepository,
	schoolRepo repositories.SchoolRepository,
	teamRepo repositories.TeamRepository,
) *ScopeService {
	return &ScopeService{
		userRepo:      userRepo,
		directoryRepo: directoryRepo,
		schoolRepo:    schoolRepo,
		teamRepo:      teamRepo,
	}
}

// ResolveActor loads the user and its role record and builds the Actor.
// Called once per request by the auth middleware.
func (s *ScopeService) ResolveActor(ctx context.Context, userID uint) (domain.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, domain.ErrUnauthorized
		}
		return domain.Actor{}, err
	}
	if !user.IsActive {
		return domain.Actor{}, domain.ErrUnauthorized
	}

	actor := domain.Actor{
		UserID:  user.ID,
		Role:    user.Role,
		IsAdmin: user.IsAdmin,
	}

	switch user.Role {
	case domain.RoleManager:
		manager, err := s.directoryRepo.ManagerByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return actor, nil // admin account without a role record
			}
			return domain.Actor{}, err
		}
		actor.ManagerID = manager.ID
		school, err := s.schoolRepo.GetByManagerID(ctx, manager.ID)
		if err == nil {
			actor.SchoolID = school.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, err
		}

	case domain.RoleCoach:
		coach, err := s.directoryRepo.CoachByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return actor, nil
			}
			return domain.Actor{}, err
		}
		actor.CoachID = coach.ID
		actor.SchoolID = coach.SchoolID

	case domain.RolePlayer:
		player, err := s.directoryRepo.PlayerByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return actor, nil
			}
			return domain.Actor{}, err
		}
		actor.PlayerID = player.ID
		actor.SchoolID = player.SchoolID
	}

	return actor, nil
}

// ScopeFor computes the read scope of an actor. The IDs feed the SQL filters
// of every list endpoint; rows outside them are never fetched.
func (s *ScopeService) ScopeFor(ctx context.Context, actor domain.Actor) (domain.Scope, error) {
	if actor.IsAdmin {
		return domain.Scope{All: true}, nil
	}

	var scope domain.Scope

	switch {
	case actor.IsManager():
		if actor.SchoolID == 0 {
			return scope, nil // manager without a school yet sees nothing
		}
		scope.SchoolIDs = []uint{actor.SchoolID}
		teamIDs, err := s.teamRepo.TeamIDsForSchool(ctx, actor.SchoolID)
		if err != nil {
			return scope, err
		}
		scope.TeamIDs = teamIDs
		playerIDs, err := s.directoryRepo.PlayerIDsForSchool(ctx, actor.SchoolID)
		if err != nil {
			return scope, err
		}
		scope.PlayerIDs = playerIDs

	case actor.IsCoach():
		scope.SchoolIDs = []uint{actor.SchoolID}
		teamIDs, err := s.teamRepo.TeamIDsForCoach(ctx, actor.CoachID)
		if err != nil {
			return scope, err
		}
		scope.TeamIDs = teamIDs

	case actor.IsPlayer():
		scope.SchoolIDs = []uint{actor.SchoolID}
		scope.PlayerIDs = []uint{actor.PlayerID}
		teamIDs, err := s.teamRepo.TeamIDsForPlayer(ctx, actor.PlayerID)
		if err != nil {
			return scope, err
		}
		scope.TeamIDs = teamIDs
	}

	return scope, nil
}

// CanManageTeam checks write access to a team: the admin or the manager of
// the owning school. Organizational containers answer forbidden, not
// not-found, since their existence is not a secret inside the school.
func (s *ScopeService) CanManageTeam(actor domain.Actor, team *models.Team) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && team.SchoolID == actor.SchoolID {
		return nil
	}
	return domain.ErrForbidden
}

// CanViewTeam checks read access to a team: its manager, its coach, or a
// rostered player.
func (s *ScopeService) CanViewTeam(ctx context.Context, actor domain.Actor, team *models.Team) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && team.SchoolID == actor.SchoolID {
		return nil
	}
	if actor.IsCoach() && team.CoachID != nil && *team.CoachID == actor.CoachID {
		return nil
	}
	if actor.IsPlayer() {
		onRoster, err := s.teamRepo.HasPlayer(ctx, team.ID, actor.PlayerID)
		if err != nil {
			return err
		}
		if onRoster {
			return nil
		}
	}
	return domain.ErrForbidden
}

// CanViewPlayer checks read access to a player record: the admin, the
// manager of the player's school, a coach of a team the player is rostered
// on, or the player itself. Out-of-scope players answer not-found so their
// existence does not leak across schools.
func (s *ScopeService) CanViewPlayer(ctx context.Context, actor domain.Actor, player *models.Player) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && player.SchoolID == actor.SchoolID {
		return nil
	}
	if actor.IsPlayer() && player.ID == actor.PlayerID {
		return nil
	}
	if actor.IsCoach() {
		coachTeams, err := s.teamRepo.TeamIDsForCoach(ctx, actor.CoachID)
		if err != nil {
			return err
		}
		playerTeams, err := s.teamRepo.TeamIDsForPlayer(ctx, player.ID)
		if err != nil {
			return err
		}
		if intersects(coachTeams, playerTeams) {
			return nil
		}
	}
	return domain.ErrNotFound
}

// CanRecordAttendance checks write access to a session's attendance sheet:
// the assigned coach or the manager of the owning school.
func (s *ScopeService) CanRecordAttendance(actor domain.Actor, session *models.TrainingSession, team *models.Team) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && team.SchoolID == actor.SchoolID {
		return nil
	}
	if actor.IsCoach() {
		if session.CoachID != nil && *session.CoachID == actor.CoachID {
			return nil
		}
		if team.CoachID != nil && *team.CoachID == actor.CoachID {
			return nil
		}
	}
	return domain.ErrForbidden
}

func intersects(a, b []uint) bool {
	set := make(map[uint]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
