package repositories

import (
	"context"
	"errors"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// payrollRepository implements PayrollRepository interface
type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// CreateContract creates a coach contract; one contract per coach
func (r *payrollRepository) CreateContract(ctx context.Context, c *models.CoachContract) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

// ContractByID gets a contract by ID with its coach
func (r *payrollRepository) ContractByID(ctx context.Context, id uint) (*models.CoachContract, error) {
	var c models.CoachContract
	err := r.db.WithContext(ctx).Preload("Coach").Preload("Coach.User").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContractByCoachID gets the contract for a coach
func (r *payrollRepository) ContractByCoachID(ctx context.Context, coachID uint) (*models.CoachContract, error) {
	var c models.CoachContract
	err := r.db.WithContext(ctx).Where("coach_id = ?", coachID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContract updates a contract
func (r *payrollRepository) UpdateContract(ctx context.Context, c *models.CoachContract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// DeleteContract deletes a contract
func (r *payrollRepository) DeleteContract(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CoachContract{}, id).Error
}

// ListContracts lists a manager's contracts
func (r *payrollRepository) ListContracts(ctx context.Context, managerID uint, offset, limit int) ([]*models.CoachContract, int64, error) {
	var contracts []*models.CoachContract
	var total int64

	q := r.db.WithContext(ctx).Model(&models.CoachContract{}).Where("manager_id = ?", managerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Coach.User").
		Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&contracts).Error

	return contracts, total, err
}

// ListActiveContracts lists contracts that are live in the given month:
// started on or before it and not yet expired.
func (r *payrollRepository) ListActiveContracts(ctx context.Context, month time.Time) ([]*models.CoachContract, error) {
	day := month.Format("2006-01-02")
	var contracts []*models.CoachContract
	err := r.db.WithContext(ctx).
		Where("start_at IS NULL OR start_at <= ?", day).
		Where("expiration_date IS NULL OR expiration_date >= ?", day).
		Find(&contracts).Error
	return contracts, err
}

// CreateSalaryRecord creates one month of salary owed.
// The (contract, month) pair is unique.
func (r *payrollRepository) CreateSalaryRecord(ctx context.Context, rec *models.SalaryRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

// SalaryRecordByID gets a salary record with its contract
func (r *payrollRepository) SalaryRecordByID(ctx context.Context, id uint) (*models.SalaryRecord, error) {
	var rec models.SalaryRecord
	err := r.db.WithContext(ctx).Preload("Contract").Preload("Payment").First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSalaryRecords lists the salary history of a contract, newest first
func (r *payrollRepository) ListSalaryRecords(ctx context.Context, contractID uint) ([]*models.SalaryRecord, error) {
	var records []*models.SalaryRecord
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("contract_id = ?", contractID).
		Order("month DESC").
		Find(&records).Error
	return records, err
}

// PaySalary settles a salary record: the record row is locked, the 1:1
// payment inserted and the status flipped to paid, all in one transaction.
func (r *payrollRepository) PaySalary(ctx context.Context, recordID uint, payment *models.SalaryPayment) (*models.SalaryRecord, error) {
	var rec models.SalaryRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, recordID).Error; err != nil {
			return err
		}

		if rec.Status == domain.SalaryPaid {
			return domain.ErrConflict
		}

		payment.SalaryRecordID = rec.ID
		if err := tx.Create(payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrConflict
			}
			return err
		}

		if err := tx.Model(&rec).Update("status", domain.SalaryPaid).Error; err != nil {
			return err
		}
		rec.Status = domain.SalaryPaid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
