package services

import (
	"context"
	"testing"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scopeFixture struct {
	svc           *ScopeService
	userRepo      *fakeUserRepo
	directoryRepo *fakeDirectoryRepo
	teamRepo      *fakeTeamRepo

	school *models.School
	coach  *models.Coach
	player *models.Player
	team   *models.Team
}

func newScopeFixture(t *testing.T) *scopeFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	directoryRepo := newFakeDirectoryRepo()
	schoolRepo := newFakeSchoolRepo()
	teamRepo := newFakeTeamRepo()

	managerUser := &models.User{Username: "mona", Role: domain.RoleManager, IsActive: true}
	require.NoError(t, userRepo.Create(ctx, managerUser))
	manager := &models.Manager{UserID: managerUser.ID}
	require.NoError(t, directoryRepo.CreateManager(ctx, manager))
	school := &models.School{Name: "North FC Academy", ManagerID: manager.ID, IsActive: true}
	require.NoError(t, schoolRepo.Create(ctx, school))

	coachUser := &models.User{Username: "carl", Role: domain.RoleCoach, IsActive: true}
	require.NoError(t, userRepo.Create(ctx, coachUser))
	coach := &models.Coach{UserID: coachUser.ID, ManagerID: manager.ID, SchoolID: school.ID}
	require.NoError(t, directoryRepo.CreateCoach(ctx, coach))

	playerUser := &models.User{Username: "pete", Role: domain.RolePlayer, IsActive: true}
	require.NoError(t, userRepo.Create(ctx, playerUser))
	player := &models.Player{UserID: playerUser.ID, SchoolID: school.ID}
	require.NoError(t, directoryRepo.CreatePlayer(ctx, player))

	team := &models.Team{Name: "U16", SchoolID: school.ID, ManagerID: manager.ID, CoachID: &coach.ID, Capacity: 20}
	require.NoError(t, teamRepo.Create(ctx, team))
	require.NoError(t, teamRepo.AddPlayer(ctx, team.ID, player.ID))

	return &scopeFixture{
		svc:           NewScopeService(userRepo, directoryRepo, schoolRepo, teamRepo),
		userRepo:      userRepo,
		directoryRepo: directoryRepo,
		teamRepo:      teamRepo,
		school:        school,
		coach:         coach,
		player:        player,
		team:          team,
	}
}

func TestResolveActorFillsRoleRecord(t *testing.T) {
	f := newScopeFixture(t)
	ctx := context.Background()

	actor, err := f.svc.ResolveActor(ctx, f.coach.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, actor.Role)
	assert.Equal(t, f.coach.ID, actor.CoachID)
	assert.Equal(t, f.school.ID, actor.SchoolID)

	actor, err = f.svc.ResolveActor(ctx, f.player.UserID)
	require.NoError(t, err)
	assert.Equal(t, f.player.ID, actor.PlayerID)
	assert.Equal(t, f.school.ID, actor.SchoolID)
}

func TestResolveActorRejectsInactiveUser(t *testing.T) {
	f := newScopeFixture(t)
	ctx := context.Background()

	user, err := f.userRepo.GetByID(ctx, f.player.UserID)
	require.NoError(t, err)
	user.IsActive = false

	_, err = f.svc.ResolveActor(ctx, f.player.UserID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestScopeForManagerCoversWholeSchool(t *testing.T) {
	f := newScopeFixture(t)

	manager := domain.Actor{UserID: 1, Role: domain.RoleManager, ManagerID: 1, SchoolID: f.school.ID}
	scope, err := f.svc.ScopeFor(context.Background(), manager)
	require.NoError(t, err)
	assert.False(t, scope.All)
	assert.Equal(t, []uint{f.school.ID}, scope.SchoolIDs)
	assert.Contains(t, scope.TeamIDs, f.team.ID)
	assert.Contains(t, scope.PlayerIDs, f.player.ID)
}

func TestScopeForCoachLimitedToAssignedTeams(t *testing.T) {
	f := newScopeFixture(t)
	ctx := context.Background()

	// a second team with no coach stays invisible
	other := &models.Team{Name: "U18", SchoolID: f.school.ID, ManagerID: 1, Capacity: 20}
	require.NoError(t, f.teamRepo.Create(ctx, other))

	coach := domain.Actor{UserID: f.coach.UserID, Role: domain.RoleCoach, CoachID: f.coach.ID, SchoolID: f.school.ID}
	scope, err := f.svc.ScopeFor(ctx, coach)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.team.ID}, scope.TeamIDs)
}

func TestScopeForAdminSeesAll(t *testing.T) {
	f := newScopeFixture(t)

	scope, err := f.svc.ScopeFor(context.Background(), domain.Actor{UserID: 99, IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, scope.All)
}

func TestCanViewPlayerCoachNeedsSharedTeam(t *testing.T) {
	f := newScopeFixture(t)
	ctx := context.Background()

	coach := domain.Actor{UserID: f.coach.UserID, Role: domain.RoleCoach, CoachID: f.coach.ID, SchoolID: f.school.ID}
	assert.NoError(t, f.svc.CanViewPlayer(ctx, coach, f.player))

	// same school, but never rostered on one of the coach's teams
	outsider := &models.Player{UserID: 40, SchoolID: f.school.ID}
	require.NoError(t, f.directoryRepo.CreatePlayer(ctx, outsider))
	assert.ErrorIs(t, f.svc.CanViewPlayer(ctx, coach, outsider), domain.ErrNotFound)
}

func TestCanManageTeamDisclosesForbidden(t *testing.T) {
	f := newScopeFixture(t)

	foreign := domain.Actor{UserID: 7, Role: domain.RoleManager, ManagerID: 70, SchoolID: 70}
	assert.ErrorIs(t, f.svc.CanManageTeam(foreign, f.team), domain.ErrForbidden)
	assert.NoError(t, f.svc.CanManageTeam(domain.Actor{IsAdmin: true}, f.team))
}
