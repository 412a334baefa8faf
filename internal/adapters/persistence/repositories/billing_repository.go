package repositories

import (
	"context"
	"time"

	"fieldside/internal/adapters/persistence/models"
	"fieldside/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// billingRepository implements BillingRepository interface
type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

// CreateInvoice creates a new invoice with its initial derived status
func (r *billingRepository) CreateInvoice(ctx context.Context, inv *models.PlayerInvoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

// GetInvoiceByID gets an invoice with its player, team and payments
func (r *billingRepository) GetInvoiceByID(ctx context.Context, id uint) (*models.PlayerInvoice, error) {
	var inv models.PlayerInvoice
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Player.User").
		Preload("Team").
		Preload("Payments").
		First(&inv, id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func applyInvoiceFilter(q *gorm.DB, filter InvoiceFilter) *gorm.DB {
	if len(filter.TeamIDs) > 0 {
		q = q.Where("team_id IN ?", filter.TeamIDs)
	}
	if filter.PlayerID != nil {
		q = q.Where("player_id = ?", *filter.PlayerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	return q
}

// ListInvoices lists invoices matching the filter, newest first.
// The caller's scope arrives inside the filter and is part of the query.
func (r *billingRepository) ListInvoices(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]*models.PlayerInvoice, int64, error) {
	var invoices []*models.PlayerInvoice
	var total int64

	countQ := applyInvoiceFilter(r.db.WithContext(ctx).Model(&models.PlayerInvoice{}), filter)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQ := applyInvoiceFilter(r.db.WithContext(ctx), filter)
	err := listQ.
		Preload("Player").
		Preload("Player.User").
		Preload("Team").
		Order("issued_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&invoices).Error

	return invoices, total, err
}

// TotalPaid sums all payments against an invoice. An invoice with no
// payments sums to zero, never NULL.
func (r *billingRepository) TotalPaid(ctx context.Context, invoiceID uint) (int64, error) {
	return totalPaidTx(r.db.WithContext(ctx), invoiceID)
}

func totalPaidTx(tx *gorm.DB, invoiceID uint) (int64, error) {
	var total int64
	err := tx.
		Model(&models.PlayerFeePayment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// RecordPayment appends a payment and recomputes the owning invoice's status
// inside one transaction. The invoice row is locked first (SELECT ... FOR
// UPDATE), so two concurrent payments serialize and each recomputation sees
// every payment committed before it. Any failure rolls back the payment too:
// the ledger never holds a payment whose invoice status was not recomputed.
func (r *billingRepository) RecordPayment(ctx context.Context, payment *models.PlayerFeePayment, today time.Time) (*models.PlayerInvoice, error) {
	var inv models.PlayerInvoice

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, payment.InvoiceID).Error; err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		total, err := totalPaidTx(tx, inv.ID)
		if err != nil {
			return err
		}

		// Cancelled is a manual state, orthogonal to the derivation.
		if inv.Status != domain.InvoiceStatusCancelled {
			status := domain.DeriveInvoiceStatus(inv.Amount, total, time.Time(inv.DueDate), today)
			if status != inv.Status {
				if err := tx.Model(&inv).Update("status", status).Error; err != nil {
					return err
				}
				inv.Status = status
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

// CancelInvoice puts an invoice into the manual cancelled state.
// Fails with domain.ErrConflict if the invoice is already cancelled.
func (r *billingRepository) CancelInvoice(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.PlayerInvoice{}).
		Where("id = ?", id).
		Where("status <> ?", domain.InvoiceStatusCancelled).
		Update("status", domain.InvoiceStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

// MarkOverdue flips pending invoices past their due date to overdue.
// A pending invoice has totalPaid < amount by derivation, so the bulk
// update agrees with DeriveInvoiceStatus.
func (r *billingRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PlayerInvoice{}).
		Where("status = ?", domain.InvoiceStatusPending).
		Where("due_date < ?", today.Format("2006-01-02")).
		Update("status", domain.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

// ListPayments lists an invoice's payments, newest first
func (r *billingRepository) ListPayments(ctx context.Context, invoiceID uint) ([]*models.PlayerFeePayment, error) {
	var payments []*models.PlayerFeePayment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}
