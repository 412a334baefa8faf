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

func newSchoolFixture(t *testing.T) (*SchoolService, domain.Actor) {
	t.Helper()

	directoryRepo := newFakeDirectoryRepo()
	schoolRepo := newFakeSchoolRepo()

	manager := &models.Manager{UserID: 1}
	require.NoError(t, directoryRepo.CreateManager(context.Background(), manager))

	svc := NewSchoolService(schoolRepo, directoryRepo)
	actor := domain.Actor{UserID: 1, Role: domain.RoleManager, ManagerID: manager.ID}
	return svc, actor
}

func TestCreateSchoolOnePerManager(t *testing.T) {
	svc, manager := newSchoolFixture(t)
	ctx := context.Background()

	school, err := svc.CreateSchool(ctx, manager, &CreateSchoolInput{Name: "North FC Academy", Email: "north@fieldside.io"})
	require.NoError(t, err)
	assert.True(t, school.IsActive)

	_, err = svc.CreateSchool(ctx, manager, &CreateSchoolInput{Name: "Second Academy", Email: "second@fieldside.io"})
	assert.ErrorIs(t, err, ErrManagerHasSchool)
}

func TestCreateSchoolRequiresManagerRole(t *testing.T) {
	svc, _ := newSchoolFixture(t)

	coach := domain.Actor{UserID: 2, Role: domain.RoleCoach, CoachID: 1}
	_, err := svc.CreateSchool(context.Background(), coach, &CreateSchoolInput{Name: "Academy", Email: "a@fieldside.io"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestActivateDeactivateTransitions(t *testing.T) {
	svc, manager := newSchoolFixture(t)
	ctx := context.Background()

	school, err := svc.CreateSchool(ctx, manager, &CreateSchoolInput{Name: "North FC Academy", Email: "north@fieldside.io"})
	require.NoError(t, err)
	manager.SchoolID = school.ID

	// same-state transition is a conflict, not a no-op
	assert.ErrorIs(t, svc.ActivateSchool(ctx, manager, school.ID), ErrSchoolAlreadyActive)

	require.NoError(t, svc.DeactivateSchool(ctx, manager, school.ID))
	assert.ErrorIs(t, svc.DeactivateSchool(ctx, manager, school.ID), ErrSchoolAlreadyInactive)

	require.NoError(t, svc.ActivateSchool(ctx, manager, school.ID))
	got, err := svc.GetSchool(ctx, school.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestUpdateSchoolByForeignManagerForbidden(t *testing.T) {
	svc, manager := newSchoolFixture(t)
	ctx := context.Background()

	school, err := svc.CreateSchool(ctx, manager, &CreateSchoolInput{Name: "North FC Academy", Email: "north@fieldside.io"})
	require.NoError(t, err)

	intruder := domain.Actor{UserID: 9, Role: domain.RoleManager, ManagerID: 99}
	name := "Hijacked"
	_, err = svc.UpdateSchool(ctx, intruder, school.ID, &UpdateSchoolInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateSemesterValidatesDates(t *testing.T) {
	svc, manager := newSchoolFixture(t)
	ctx := context.Background()

	school, err := svc.CreateSchool(ctx, manager, &CreateSchoolInput{Name: "North FC Academy", Email: "north@fieldside.io"})
	require.NoError(t, err)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateSemester(ctx, manager, school.ID, &CreateSemesterInput{
		Name:      "Fall 2026",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	semester, err := svc.CreateSemester(ctx, manager, school.ID, &CreateSemesterInput{
		Name:      "Fall 2026",
		StartDate: start,
		EndDate:   start.AddDate(0, 4, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, school.ID, semester.SchoolID)

	// duplicate name within the school hits the unique pair
	_, err = svc.CreateSemester(ctx, manager, school.ID, &CreateSemesterInput{
		Name:      "Fall 2026",
		StartDate: start,
		EndDate:   start.AddDate(0, 4, 0),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListSchoolsAdminOnly(t *testing.T) {
	svc, manager := newSchoolFixture(t)
	ctx := context.Background()

	_, _, err := svc.ListSchools(ctx, manager, 0, 20)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := domain.Actor{UserID: 100, IsAdmin: true}
	_, total, err := svc.ListSchools(ctx, admin, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
