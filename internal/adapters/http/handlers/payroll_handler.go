package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayrollHandler handles coach contract and salary endpoints
type PayrollHandler struct {
	payrollService *services.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// CreateContract creates a salary contract for a coach
func (h *PayrollHandler) CreateContract(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateContractInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contract, err := h.payrollService.CreateContract(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Contract created successfully", contract)
}

// GetContract returns a contract by ID
func (h *PayrollHandler) GetContract(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	contract, err := h.payrollService.GetContract(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Contract retrieved successfully", contract)
}

// UpdateContract updates a contract
func (h *PayrollHandler) UpdateContract(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	var input services.UpdateContractInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contract, err := h.payrollService.UpdateContract(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Contract updated successfully", contract)
}

// DeleteContract removes a contract
func (h *PayrollHandler) DeleteContract(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	if err := h.payrollService.DeleteContract(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Contract deleted successfully", nil)
}

// ListContracts lists contracts visible to the acting user
func (h *PayrollHandler) ListContracts(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	contracts, total, err := h.payrollService.ListContracts(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Contracts retrieved successfully", pagination.NewResponse(contracts, params, total))
}

// ListSalaryRecords lists the salary records of a contract
func (h *PayrollHandler) ListSalaryRecords(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	contractID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	records, err := h.payrollService.ListSalaryRecords(c.Context(), actor, contractID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Salary records retrieved successfully", records)
}

// PaySalary settles a salary record
func (h *PayrollHandler) PaySalary(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	recordID, err := parseID(c, "recordId")
	if err != nil {
		return response.BadRequest(c, "Invalid salary record ID")
	}

	var input services.PaySalaryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.payrollService.PaySalary(c.Context(), actor, recordID, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Salary paid successfully", record)
}
