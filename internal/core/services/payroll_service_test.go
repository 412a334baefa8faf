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

type payrollFixture struct {
	svc     *PayrollService
	manager domain.Actor
	coach   domain.Actor
	coachID uint
}

func newPayrollFixture(t *testing.T) *payrollFixture {
	t.Helper()
	ctx := context.Background()

	directoryRepo := newFakeDirectoryRepo()
	payrollRepo := newFakePayrollRepo()

	manager := &models.Manager{UserID: 1}
	require.NoError(t, directoryRepo.CreateManager(ctx, manager))
	coach := &models.Coach{UserID: 2, ManagerID: manager.ID, SchoolID: 1}
	require.NoError(t, directoryRepo.CreateCoach(ctx, coach))

	svc := NewPayrollService(payrollRepo, directoryRepo)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	return &payrollFixture{
		svc:     svc,
		manager: domain.Actor{UserID: 1, Role: domain.RoleManager, ManagerID: manager.ID, SchoolID: 1},
		coach:   domain.Actor{UserID: 2, Role: domain.RoleCoach, CoachID: coach.ID, SchoolID: 1},
		coachID: coach.ID,
	}
}

func TestCreateContractOnePerCoach(t *testing.T) {
	f := newPayrollFixture(t)
	ctx := context.Background()

	contract, err := f.svc.CreateContract(ctx, f.manager, &CreateContractInput{CoachID: f.coachID, Price: 50000})
	require.NoError(t, err)
	assert.Equal(t, f.manager.ManagerID, contract.ManagerID)

	_, err = f.svc.CreateContract(ctx, f.manager, &CreateContractInput{CoachID: f.coachID, Price: 60000})
	assert.ErrorIs(t, err, ErrContractExists)
}

func TestCreateContractForForeignCoachHidden(t *testing.T) {
	f := newPayrollFixture(t)

	intruder := domain.Actor{UserID: 9, Role: domain.RoleManager, ManagerID: 77}
	_, err := f.svc.CreateContract(context.Background(), intruder, &CreateContractInput{CoachID: f.coachID, Price: 50000})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateContractRejectsNegativePrice(t *testing.T) {
	f := newPayrollFixture(t)

	_, err := f.svc.CreateContract(context.Background(), f.manager, &CreateContractInput{CoachID: f.coachID, Price: -1})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestGenerateMonthlySalariesIdempotent(t *testing.T) {
	f := newPayrollFixture(t)
	ctx := context.Background()

	contract, err := f.svc.CreateContract(ctx, f.manager, &CreateContractInput{CoachID: f.coachID, Price: 50000})
	require.NoError(t, err)

	month := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	created, err := f.svc.GenerateMonthlySalaries(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// re-running the same month skips the existing record
	created, err = f.svc.GenerateMonthlySalaries(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	records, err := f.svc.ListSalaryRecords(ctx, f.manager, contract.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.SalaryUnpaid, records[0].Status)
}

func TestGenerateMonthlySalariesSkipsExpiredContracts(t *testing.T) {
	f := newPayrollFixture(t)
	ctx := context.Background()

	expiry := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.CreateContract(ctx, f.manager, &CreateContractInput{
		CoachID:        f.coachID,
		Price:          50000,
		ExpirationDate: &expiry,
	})
	require.NoError(t, err)

	created, err := f.svc.GenerateMonthlySalaries(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestPaySalaryOnceAtContractPrice(t *testing.T) {
	f := newPayrollFixture(t)
	ctx := context.Background()

	contract, err := f.svc.CreateContract(ctx, f.manager, &CreateContractInput{CoachID: f.coachID, Price: 50000})
	require.NoError(t, err)

	_, err = f.svc.GenerateMonthlySalaries(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	records, err := f.svc.ListSalaryRecords(ctx, f.manager, contract.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	paid, err := f.svc.PaySalary(ctx, f.manager, records[0].ID, &PaySalaryInput{Description: "March salary"})
	require.NoError(t, err)
	assert.Equal(t, domain.SalaryPaid, paid.Status)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, int64(50000), paid.Payment.Amount)

	_, err = f.svc.PaySalary(ctx, f.manager, records[0].ID, &PaySalaryInput{})
	assert.ErrorIs(t, err, ErrSalaryAlreadyPaid)
}

func TestContractVisibleToContractedCoachOnly(t *testing.T) {
	f := newPayrollFixture(t)
	ctx := context.Background()

	contract, err := f.svc.CreateContract(ctx, f.manager, &CreateContractInput{CoachID: f.coachID, Price: 50000})
	require.NoError(t, err)

	_, err = f.svc.GetContract(ctx, f.coach, contract.ID)
	assert.NoError(t, err)

	otherCoach := domain.Actor{UserID: 8, Role: domain.RoleCoach, CoachID: 55, SchoolID: 1}
	_, err = f.svc.GetContract(ctx, otherCoach, contract.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
