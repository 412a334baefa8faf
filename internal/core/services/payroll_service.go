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

// Payroll service errors
var (
	ErrContractExists    = fmt.Errorf("%w: coach already has a contract", domain.ErrConflict)
	ErrSalaryAlreadyPaid = fmt.Errorf("%w: salary record is already paid", domain.ErrConflict)
	ErrNegativePrice     = fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
)

// PayrollService handles coach contracts and monthly salaries
type PayrollService struct {
	payrollRepo   repositories.PayrollRepository
	directoryRepo repositories.DirectoryRepository
	now           func() time.Time
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	payrollRepo repositories.PayrollRepository,
	directoryRepo repositories.DirectoryRepository,
) *PayrollService {
	return &PayrollService{
		payrollRepo:   payrollRepo,
		directoryRepo: directoryRepo,
		now:           time.Now,
	}
}

// CreateContractInput represents contract creation input
type CreateContractInput struct {
	CoachID        uint       `json:"coach_id" validate:"required"`
	Price          int64      `json:"price"`
	Description    string     `json:"description"`
	StartAt        *time.Time `json:"start_at"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// UpdateContractInput represents contract update input
type UpdateContractInput struct {
	Price          *int64     `json:"price"`
	Description    *string    `json:"description"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// PaySalaryInput represents salary payment input
type PaySalaryInput struct {
	TransactionID *string `json:"transaction_id" validate:"omitempty,max=100"`
	Description   string  `json:"description"`
}

// CreateContract fixes the monthly price for one of the manager's coaches.
// One live contract per coach.
func (s *PayrollService) CreateContract(ctx context.Context, actor domain.Actor, input *CreateContractInput) (*models.CoachContract, error) {
	// 1. Only managers run payroll
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	// 2. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Price < 0 {
		return nil, ErrNegativePrice
	}

	// 3. The coach must be one of the manager's own
	coach, err := s.directoryRepo.CoachByID(ctx, input.CoachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if coach.ManagerID != actor.ManagerID {
		return nil, domain.ErrNotFound
	}

	contract := &models.CoachContract{
		CoachID:     coach.ID,
		ManagerID:   actor.ManagerID,
		Price:       input.Price,
		Description: input.Description,
	}
	if input.StartAt != nil {
		d := datatypes.Date(*input.StartAt)
		contract.StartAt = &d
	}
	if input.ExpirationDate != nil {
		d := datatypes.Date(*input.ExpirationDate)
		contract.ExpirationDate = &d
	}

	if err := s.payrollRepo.CreateContract(ctx, contract); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrContractExists
		}
		return nil, err
	}

	log.Printf("✅ Contract created: coach %d price %d", coach.ID, contract.Price)
	return contract, nil
}

// GetContract returns a contract the actor may view: the owning manager,
// the contracted coach, or the admin.
func (s *PayrollService) GetContract(ctx context.Context, actor domain.Actor, id uint) (*models.CoachContract, error) {
	contract, err := s.payrollRepo.ContractByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeContract(actor, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// UpdateContract updates a contract's terms
func (s *PayrollService) UpdateContract(ctx context.Context, actor domain.Actor, id uint, input *UpdateContractInput) (*models.CoachContract, error) {
	contract, err := s.payrollRepo.ContractByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// only the owning manager edits terms
	if !actor.IsAdmin && !(actor.IsManager() && contract.ManagerID == actor.ManagerID) {
		return nil, domain.ErrNotFound
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrNegativePrice
		}
		contract.Price = *input.Price
	}
	if input.Description != nil {
		contract.Description = *input.Description
	}
	if input.ExpirationDate != nil {
		d := datatypes.Date(*input.ExpirationDate)
		contract.ExpirationDate = &d
	}

	if err := s.payrollRepo.UpdateContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// DeleteContract removes a contract
func (s *PayrollService) DeleteContract(ctx context.Context, actor domain.Actor, id uint) error {
	contract, err := s.payrollRepo.ContractByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if !actor.IsAdmin && !(actor.IsManager() && contract.ManagerID == actor.ManagerID) {
		return domain.ErrNotFound
	}
	return s.payrollRepo.DeleteContract(ctx, id)
}

// ListContracts lists the acting manager's contracts
func (s *PayrollService) ListContracts(ctx context.Context, actor domain.Actor, offset, limit int) ([]*models.CoachContract, int64, error) {
	if !actor.IsManager() && !actor.IsAdmin {
		return nil, 0, domain.ErrForbidden
	}
	return s.payrollRepo.ListContracts(ctx, actor.ManagerID, offset, limit)
}

// ListSalaryRecords lists a contract's salary history
func (s *PayrollService) ListSalaryRecords(ctx context.Context, actor domain.Actor, contractID uint) ([]*models.SalaryRecord, error) {
	contract, err := s.payrollRepo.ContractByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeContract(actor, contract); err != nil {
		return nil, err
	}
	return s.payrollRepo.ListSalaryRecords(ctx, contractID)
}

// PaySalary settles one salary record at the contract's price. Paying a
// record twice is a conflict; the repository enforces it under a row lock.
func (s *PayrollService) PaySalary(ctx context.Context, actor domain.Actor, recordID uint, input *PaySalaryInput) (*models.SalaryRecord, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	record, err := s.payrollRepo.SalaryRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	contract := record.Contract
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin && !(actor.IsManager() && contract.ManagerID == actor.ManagerID) {
		return nil, domain.ErrNotFound
	}

	payment := &models.SalaryPayment{
		Amount:        contract.Price,
		TransactionID: input.TransactionID,
		Description:   input.Description,
	}
	paid, err := s.payrollRepo.PaySalary(ctx, recordID, payment)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrSalaryAlreadyPaid
		}
		return nil, err
	}

	log.Printf("✅ Salary paid: record %d amount %d", paid.ID, contract.Price)
	return paid, nil
}

// GenerateMonthlySalaries creates one unpaid salary record per live contract
// for the given month. Re-running the generation is safe: the unique
// (contract, month) index turns duplicates into skips. Called by the monthly
// cron job.
func (s *PayrollService) GenerateMonthlySalaries(ctx context.Context, month time.Time) (int, error) {
	firstOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	contracts, err := s.payrollRepo.ListActiveContracts(ctx, firstOfMonth)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, contract := range contracts {
		record := &models.SalaryRecord{
			ContractID: contract.ID,
			Month:      datatypes.Date(firstOfMonth),
			Status:     domain.SalaryUnpaid,
		}
		err := s.payrollRepo.CreateSalaryRecord(ctx, record)
		if errors.Is(err, domain.ErrConflict) {
			continue // already generated for this month
		}
		if err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		log.Printf("✅ Salary generation: %d record(s) for %s", created, firstOfMonth.Format("2006-01"))
	}
	return created, nil
}

// authorizeContract allows the admin, the owning manager, or the contracted
// coach to read a contract.
func (s *PayrollService) authorizeContract(actor domain.Actor, contract *models.CoachContract) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.IsManager() && contract.ManagerID == actor.ManagerID {
		return nil
	}
	if actor.IsCoach() && contract.CoachID == actor.CoachID {
		return nil
	}
	return domain.ErrNotFound
}
