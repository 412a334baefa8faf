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

type medicalFixture struct {
	svc *MedicalService

	manager domain.Actor
	coach   domain.Actor
	player  domain.Actor

	session  *models.TrainingSession
	playerID uint
}

func newMedicalFixture(t *testing.T) *medicalFixture {
	t.Helper()
	ctx := context.Background()

	userRepo := newFakeUserRepo()
	directoryRepo := newFakeDirectoryRepo()
	schoolRepo := newFakeSchoolRepo()
	teamRepo := newFakeTeamRepo()
	sessionRepo := newFakeSessionRepo()
	medicalRepo := newFakeMedicalRepo()

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

	session := &models.TrainingSession{TeamID: team.ID, CoachID: team.CoachID, Title: "Friday scrimmage"}
	require.NoError(t, sessionRepo.Create(ctx, session))

	scopeService := NewScopeService(userRepo, directoryRepo, schoolRepo, teamRepo)
	svc := NewMedicalService(medicalRepo, sessionRepo, teamRepo, directoryRepo, scopeService)

	return &medicalFixture{
		svc:      svc,
		manager:  domain.Actor{UserID: 1, Role: domain.RoleManager, ManagerID: manager.ID, SchoolID: school.ID},
		coach:    domain.Actor{UserID: 2, Role: domain.RoleCoach, CoachID: coach.ID, SchoolID: school.ID},
		player:   domain.Actor{UserID: 3, Role: domain.RolePlayer, PlayerID: player.ID, SchoolID: school.ID},
		session:  session,
		playerID: player.ID,
	}
}

func (f *medicalFixture) createRecord(t *testing.T) *models.MedicalRecord {
	t.Helper()
	record, err := f.svc.CreateMedicalRecord(context.Background(), f.coach, &CreateMedicalRecordInput{
		PlayerID:          f.playerID,
		TrainingSessionID: f.session.ID,
		Title:             "Sprained ankle",
		Description:       "Rolled the ankle during the scrimmage",
		DiagnosedDate:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		DoctorName:        "Dr. Rahimi",
	})
	require.NoError(t, err)
	return record
}

func TestCreateMedicalRecordByTeamCoach(t *testing.T) {
	f := newMedicalFixture(t)

	record := f.createRecord(t)
	assert.True(t, record.IsActive)
	assert.Nil(t, record.RecoveryDate)
	require.NotNil(t, record.CreatedBy)
	assert.Equal(t, f.coach.UserID, *record.CreatedBy)
}

func TestCreateMedicalRecordByPlayerForbidden(t *testing.T) {
	f := newMedicalFixture(t)

	_, err := f.svc.CreateMedicalRecord(context.Background(), f.player, &CreateMedicalRecordInput{
		PlayerID:          f.playerID,
		TrainingSessionID: f.session.ID,
		Title:             "Self-diagnosed",
		DiagnosedDate:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateMedicalRecordClosesWithRecovery(t *testing.T) {
	f := newMedicalFixture(t)
	ctx := context.Background()
	record := f.createRecord(t)

	recovery := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	inactive := false
	updated, err := f.svc.UpdateMedicalRecord(ctx, f.manager, record.ID, &UpdateMedicalRecordInput{
		RecoveryDate: &recovery,
		IsActive:     &inactive,
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.RecoveryDate)
	assert.False(t, updated.IsActive)
}

func TestPlayerReadsButNeverEditsOwnRecord(t *testing.T) {
	f := newMedicalFixture(t)
	ctx := context.Background()
	record := f.createRecord(t)

	got, err := f.svc.GetMedicalRecord(ctx, f.player, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)

	title := "Edited by patient"
	_, err = f.svc.UpdateMedicalRecord(ctx, f.player, record.ID, &UpdateMedicalRecordInput{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, f.svc.DeleteMedicalRecord(ctx, f.player, record.ID), domain.ErrForbidden)
}

func TestMedicalRecordHiddenOutsideScope(t *testing.T) {
	f := newMedicalFixture(t)
	record := f.createRecord(t)

	stranger := domain.Actor{UserID: 50, Role: domain.RoleCoach, CoachID: 40, SchoolID: 9}
	_, err := f.svc.GetMedicalRecord(context.Background(), stranger, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPlayerMedicalRecords(t *testing.T) {
	f := newMedicalFixture(t)
	f.createRecord(t)

	records, total, err := f.svc.ListPlayerMedicalRecords(context.Background(), f.coach, f.playerID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}
