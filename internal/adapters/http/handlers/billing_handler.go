package handlers

import (
	"fieldside/internal/core/domain"
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles invoice and payment endpoints
type BillingHandler struct {
	billingService *services.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreateInvoice issues an invoice against a player on a team
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateInvoiceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invoice, err := h.billingService.CreateInvoice(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Invoice created successfully", invoice)
}

// GetInvoice returns an invoice with its payment totals
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice ID")
	}

	invoice, err := h.billingService.GetInvoice(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Invoice retrieved successfully", invoice)
}

// ListInvoices lists invoices visible to the acting user. Supports
// optional player_id and status query filters.
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var playerID *uint
	if v := c.QueryInt("player_id"); v > 0 {
		id := uint(v)
		playerID = &id
	}

	var status *domain.InvoiceStatus
	if v := c.Query("status"); v != "" {
		s := domain.InvoiceStatus(v)
		switch s {
		case domain.InvoiceStatusPending, domain.InvoiceStatusPaid,
			domain.InvoiceStatusOverdue, domain.InvoiceStatusCancelled:
			status = &s
		default:
			return response.BadRequest(c, "Invalid status filter")
		}
	}

	params := pagination.GetParams(c)
	invoices, total, err := h.billingService.ListInvoices(c.Context(), actor, playerID, status, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Invoices retrieved successfully", pagination.NewResponse(invoices, params, total))
}

// RecordPayment records a payment against an invoice
func (h *BillingHandler) RecordPayment(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice ID")
	}

	var input services.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invoice, err := h.billingService.RecordPayment(c.Context(), actor, invoiceID, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Payment recorded successfully", invoice)
}

// CancelInvoice cancels an invoice
func (h *BillingHandler) CancelInvoice(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice ID")
	}

	if err := h.billingService.CancelInvoice(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Invoice cancelled successfully", nil)
}

// ListPayments lists the payments recorded against an invoice
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	invoiceID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice ID")
	}

	payments, err := h.billingService.ListPayments(c.Context(), actor, invoiceID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Payments retrieved successfully", payments)
}
