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

// Billing service errors
var (
	ErrInvoiceCancelled   = fmt.Errorf("%w: invoice is cancelled", domain.ErrConflict)
	ErrNegativeAmount     = fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	ErrDueBeforeIssued    = fmt.Errorf("%w: due date must not be before issued date", domain.ErrValidation)
	ErrZeroPayment        = fmt.Errorf("%w: payment amount must be positive", domain.ErrValidation)
	ErrInvalidPayMethod   = fmt.Errorf("%w: unknown payment method", domain.ErrValidation)
	ErrPlayerNotOnInvTeam = fmt.Errorf("%w: player is not on the invoiced team", domain.ErrValidation)
)

// BillingService handles the invoice and payment ledger. Invoice status is
// derived state: this service never sets it directly except through the
// repository's transactional recompute and the manual cancel transition.
type BillingService struct {
	billingRepo   repositories.BillingRepository
	teamRepo      repositories.TeamRepository
	directoryRepo repositories.DirectoryRepository
	scopeService  *ScopeService
	now           func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	billingRepo repositories.BillingRepository,
	teamRepo repositories.TeamRepository,
	directoryRepo repositories.DirectoryRepository,
	scopeService *ScopeService,
) *BillingService {
	return &BillingService{
		billingRepo:   billingRepo,
		teamRepo:      teamRepo,
		directoryRepo: directoryRepo,
		scopeService:  scopeService,
		now:           time.Now,
	}
}

// CreateInvoiceInput represents invoice creation input
type CreateInvoiceInput struct {
	PlayerID    uint      `json:"player_id" validate:"required"`
	TeamID      uint      `json:"team_id" validate:"required"`
	Amount      int64     `json:"amount"`
	IssuedDate  time.Time `json:"issued_date" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Description string    `json:"description"`
}

// RecordPaymentInput represents payment recording input
type RecordPaymentInput struct {
	Amount        int64  `json:"amount"`
	Method        string `json:"method" validate:"required"`
	ReceiptNumber string `json:"receipt_number" validate:"max=255"`
	Note          string `json:"note"`
}

// CreateInvoice creates an obligation for a rostered player. A zero amount
// is legal and derives straight to paid.
func (s *BillingService) CreateInvoice(ctx context.Context, actor domain.Actor, input *CreateInvoiceInput) (*models.InvoiceResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	if input.DueDate.Before(input.IssuedDate) {
		return nil, ErrDueBeforeIssued
	}

	// 2. Load the team and authorize: only the school's manager bills
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := s.scopeService.CanManageTeam(actor, team); err != nil {
		return nil, err
	}

	// 3. The invoiced player must be on the team's roster
	onRoster, err := s.teamRepo.HasPlayer(ctx, team.ID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if !onRoster {
		return nil, ErrPlayerNotOnInvTeam
	}

	// 4. Create with the derived initial status
	invoice := &models.PlayerInvoice{
		PlayerID:    input.PlayerID,
		TeamID:      team.ID,
		Amount:      input.Amount,
		IssuedDate:  datatypes.Date(input.IssuedDate),
		DueDate:     datatypes.Date(input.DueDate),
		Status:      domain.DeriveInvoiceStatus(input.Amount, 0, input.DueDate, s.now()),
		Description: input.Description,
	}
	if err := s.billingRepo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	log.Printf("✅ Invoice created: player %d team %d amount %d (%s)", invoice.PlayerID, invoice.TeamID, invoice.Amount, invoice.Status)
	return invoice.ToResponse(0), nil
}

// GetInvoice returns an invoice with its running totals. Out-of-scope
// invoices answer not-found.
func (s *BillingService) GetInvoice(ctx context.Context, actor domain.Actor, id uint) (*models.InvoiceResponse, error) {
	invoice, err := s.loadAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.billingRepo.TotalPaid(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return invoice.ToResponse(totalPaid), nil
}

// ListInvoices lists invoices inside the actor's scope, with optional
// player and status filters.
func (s *BillingService) ListInvoices(ctx context.Context, actor domain.Actor, playerID *uint, status *domain.InvoiceStatus, offset, limit int) ([]*models.InvoiceResponse, int64, error) {
	scope, err := s.scopeService.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	filter := repositories.InvoiceFilter{
		PlayerID: playerID,
		Status:   status,
	}
	switch {
	case scope.All:
		// no scope filter
	case actor.IsPlayer():
		// players see only their own ledger regardless of the filter
		filter.PlayerID = &actor.PlayerID
	default:
		if len(scope.TeamIDs) == 0 {
			return nil, 0, nil
		}
		filter.TeamIDs = scope.TeamIDs
	}

	invoices, total, err := s.billingRepo.ListInvoices(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		totalPaid, err := s.billingRepo.TotalPaid(ctx, invoice.ID)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = invoice.ToResponse(totalPaid)
	}
	return responses, total, nil
}

// RecordPayment appends a payment to an invoice's ledger. Overpayment is
// accepted; outstanding floors at zero. The payment insert and the status
// recompute commit atomically in the repository.
func (s *BillingService) RecordPayment(ctx context.Context, actor domain.Actor, invoiceID uint, input *RecordPaymentInput) (*models.InvoiceResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, ErrZeroPayment
	}
	method := domain.PaymentMethod(input.Method)
	if !domain.ValidPaymentMethod(method) {
		return nil, ErrInvalidPayMethod
	}

	// 2. Load and authorize; only the school's manager records payments
	invoice, err := s.loadAuthorized(ctx, actor, invoiceID)
	if err != nil {
		return nil, err
	}
	if actor.IsPlayer() {
		return nil, domain.ErrForbidden
	}
	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, ErrInvoiceCancelled
	}

	// 3. Append and recompute atomically
	createdBy := actor.UserID
	payment := &models.PlayerFeePayment{
		InvoiceID:     invoice.ID,
		Amount:        input.Amount,
		Method:        method,
		ReceiptNumber: input.ReceiptNumber,
		Note:          input.Note,
		CreatedBy:     &createdBy,
	}
	updated, err := s.billingRepo.RecordPayment(ctx, payment, s.now())
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.billingRepo.TotalPaid(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Payment recorded: invoice %d amount %d (status: %s)", updated.ID, input.Amount, updated.Status)
	return updated.ToResponse(totalPaid), nil
}

// CancelInvoice puts an invoice into the manual cancelled state. Cancelling
// twice is a conflict. Payments already recorded stay in the ledger.
func (s *BillingService) CancelInvoice(ctx context.Context, actor domain.Actor, id uint) error {
	invoice, err := s.loadAuthorized(ctx, actor, id)
	if err != nil {
		return err
	}
	if actor.IsPlayer() {
		return domain.ErrForbidden
	}

	if err := s.billingRepo.CancelInvoice(ctx, invoice.ID); err != nil {
		return err
	}

	log.Printf("✅ Invoice cancelled: %d", invoice.ID)
	return nil
}

// ListPayments lists an invoice's payments, newest first
func (s *BillingService) ListPayments(ctx context.Context, actor domain.Actor, invoiceID uint) ([]*models.PlayerFeePayment, error) {
	invoice, err := s.loadAuthorized(ctx, actor, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.billingRepo.ListPayments(ctx, invoice.ID)
}

// loadAuthorized loads an invoice and checks read access: the admin, the
// owning school's manager, the team's coach, or the invoiced player. Anyone
// else gets not-found so cross-school invoice IDs stay unguessable.
func (s *BillingService) loadAuthorized(ctx context.Context, actor domain.Actor, id uint) (*models.PlayerInvoice, error) {
	invoice, err := s.billingRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if actor.IsAdmin {
		return invoice, nil
	}
	if actor.IsPlayer() && invoice.PlayerID == actor.PlayerID {
		return invoice, nil
	}

	team := invoice.Team
	if team == nil {
		team, err = s.teamRepo.GetByID(ctx, invoice.TeamID)
		if err != nil {
			return nil, err
		}
	}
	if actor.IsManager() && team.SchoolID == actor.SchoolID {
		return invoice, nil
	}
	if actor.IsCoach() && team.CoachID != nil && *team.CoachID == actor.CoachID {
		return invoice, nil
	}

	return nil, domain.ErrNotFound
}

// MarkOverdueSweep flips pending invoices past due to overdue. Called by the
// daily cron job.
func (s *BillingService) MarkOverdueSweep(ctx context.Context) (int64, error) {
	n, err := s.billingRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("✅ Overdue sweep: %d invoice(s) flipped", n)
	}
	return n, nil
}
