package services

import (
	"context"
	"testing"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc *SessionService

	manager domain.Actor
	coach   domain.Actor
	player  domain.Actor

	team     *models.Team
	playerID uint
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	directoryRepo := newFakeDirectoryRepo()
	schoolRepo := newFakeSchoolRepo()
	teamRepo := newFakeTeamRepo()
	sessionRepo := newFakeSessionRepo()
	attendanceRepo := newFakeAttendanceRepo()

	manager := &models.Manager{UserID: 1}
	require.NoError(t, directoryRepo.CreateManager(ctx, manager))
	school := &models.School{Name: "North FC Academy", ManagerID: manager.ID, IsActive: true}
	require.NoError(t, schoolRepo.Create(ctx, school))
	coach := &models.Coach{UserID: 2, ManagerID: manager.ID, SchoolID: school.ID}
	require.NoError(t, directoryRepo.CreateCoach(ctx, coach))
	player := &models.Player{UserID: 3, SchoolID: school.ID}
	require.NoError(t, directoryRepo.CreatePlayer(ctx, player))

	team := &models.Team{Name: "U14", SchoolID: school.ID, ManagerID: manager.ID, CoachID: &coach.ID, Capacity: 15}
	require.NoError(t, teamRepo.Create(ctx, team))
	require.NoError(t, teamRepo.AddPlayer(ctx, team.ID, player.ID))

	scopeService := NewScopeService(userRepo, directoryRepo, schoolRepo, teamRepo)
	svc := NewSessionService(sessionRepo, attendanceRepo, teamRepo, directoryRepo, scopeService)

	return &sessionFixture{
		svc:      svc,
		manager:  domain.Actor{UserID: 1, Role: domain.RoleManager, ManagerID: manager.ID, SchoolID: school.ID},
		coach:    domain.Actor{UserID: 2, Role: domain.RoleCoach, CoachID: coach.ID, SchoolID: school.ID},
		player:   domain.Actor{UserID: 3, Role: domain.RolePlayer, PlayerID: player.ID, SchoolID: school.ID},
		team:     team,
		playerID: player.ID,
	}
}

func (f *sessionFixture) createSession(t *testing.T) *models.TrainingSession {
	t.Helper()
	session, err := f.svc.CreateSession(context.Background(), f.coach, &CreateSessionInput{
		TeamID:    f.team.ID,
		Title:     "Tuesday technical drills",
		Date:      time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "17:00",
		EndTime:   "18:30",
	})
	require.NoError(t, err)
	return session
}

func TestCreateSessionInheritsTeamCoach(t *testing.T) {
	f := newSessionFixture(t)

	session := f.createSession(t)
	require.NotNil(t, session.CoachID)
	assert.Equal(t, *f.team.CoachID, *session.CoachID)
	assert.Equal(t, domain.SessionTechnical, session.SessionType)
}

func TestCreateSessionPlayerForbidden(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.CreateSession(context.Background(), f.player, &CreateSessionInput{
		TeamID:    f.team.ID,
		Title:     "Sneaky practice",
		Date:      time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "17:00",
		EndTime:   "18:30",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordAttendanceDuplicateConflicts(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session := f.createSession(t)

	input := &RecordAttendanceInput{PlayerID: f.playerID, Status: "present"}
	first, err := f.svc.RecordAttendance(ctx, f.coach, session.ID, input)
	require.NoError(t, err)
	assert.Equal(t, f.coach.UserID, first.RecordedBy)

	_, err = f.svc.RecordAttendance(ctx, f.coach, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "late"})
	assert.ErrorIs(t, err, ErrAttendanceExists)
}

func TestRecordAttendanceOnCanceledSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session := f.createSession(t)

	require.NoError(t, f.svc.CancelSession(ctx, f.coach, session.ID))

	_, err := f.svc.RecordAttendance(ctx, f.coach, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "present"})
	assert.ErrorIs(t, err, ErrSessionCanceled)
}

func TestRecordAttendanceRejectsUnrosteredPlayer(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t)

	_, err := f.svc.RecordAttendance(context.Background(), f.coach, session.ID, &RecordAttendanceInput{PlayerID: 42, Status: "present"})
	assert.ErrorIs(t, err, ErrPlayerNotOnSessionTeam)
}

func TestRecordAttendanceByPlayerForbidden(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t)

	_, err := f.svc.RecordAttendance(context.Background(), f.player, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "present"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordAttendanceByUnassignedCoachForbidden(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t)

	// a coach in the same school but without this team is not allowed near
	// its attendance sheet
	unassigned := domain.Actor{UserID: 20, Role: domain.RoleCoach, CoachID: 21, SchoolID: f.coach.SchoolID}
	_, err := f.svc.RecordAttendance(context.Background(), unassigned, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "present"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancelSessionTwiceConflicts(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session := f.createSession(t)

	require.NoError(t, f.svc.CancelSession(ctx, f.manager, session.ID))
	assert.ErrorIs(t, f.svc.CancelSession(ctx, f.manager, session.ID), ErrSessionCanceled)
}

func TestUpdateAttendanceCorrection(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session := f.createSession(t)

	attendance, err := f.svc.RecordAttendance(ctx, f.coach, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "absent"})
	require.NoError(t, err)

	status := "excused"
	score := 72.5
	updated, err := f.svc.UpdateAttendance(ctx, f.coach, attendance.ID, &UpdateAttendanceInput{Status: &status, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, domain.AttendanceStatus("excused"), updated.Status)
	require.NotNil(t, updated.Score)
	assert.Equal(t, 72.5, *updated.Score)
}

func TestListPlayerAttendanceScoped(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	session := f.createSession(t)

	_, err := f.svc.RecordAttendance(ctx, f.coach, session.ID, &RecordAttendanceInput{PlayerID: f.playerID, Status: "present"})
	require.NoError(t, err)

	// the player reads its own history
	entries, total, err := f.svc.ListPlayerAttendance(ctx, f.player, f.playerID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, entries, 1)

	// a stranger coach from nowhere gets not-found
	stranger := domain.Actor{UserID: 50, Role: domain.RoleCoach, CoachID: 40, SchoolID: 9}
	_, _, err = f.svc.ListPlayerAttendance(ctx, stranger, f.playerID, 0, 20)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
