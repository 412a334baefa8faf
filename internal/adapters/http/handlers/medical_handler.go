package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MedicalHandler handles player medical record endpoints
type MedicalHandler struct {
	medicalService *services.MedicalService
}

// NewMedicalHandler creates a new medical handler
func NewMedicalHandler(medicalService *services.MedicalService) *MedicalHandler {
	return &MedicalHandler{medicalService: medicalService}
}

// CreateMedicalRecord files a medical record for a player
func (h *MedicalHandler) CreateMedicalRecord(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateMedicalRecordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.medicalService.CreateMedicalRecord(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecord returns a medical record by ID
func (h *MedicalHandler) GetMedicalRecord(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	record, err := h.medicalService.GetMedicalRecord(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Medical record retrieved successfully", record)
}

// UpdateMedicalRecord updates a medical record
func (h *MedicalHandler) UpdateMedicalRecord(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	var input services.UpdateMedicalRecordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.medicalService.UpdateMedicalRecord(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Medical record updated successfully", record)
}

// DeleteMedicalRecord removes a medical record
func (h *MedicalHandler) DeleteMedicalRecord(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	if err := h.medicalService.DeleteMedicalRecord(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Medical record deleted successfully", nil)
}

// ListPlayerMedicalRecords lists a player's medical history
func (h *MedicalHandler) ListPlayerMedicalRecords(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	playerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	params := pagination.GetParams(c)
	records, total, err := h.medicalService.ListPlayerMedicalRecords(c.Context(), actor, playerID, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Medical records retrieved successfully", pagination.NewResponse(records, params, total))
}
