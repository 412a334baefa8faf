package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SchoolHandler handles school and semester endpoints
type SchoolHandler struct {
	schoolService *services.SchoolService
}

// NewSchoolHandler creates a new school handler
func NewSchoolHandler(schoolService *services.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

// CreateSchool creates a school for the acting manager
func (h *SchoolHandler) CreateSchool(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateSchoolInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	school, err := h.schoolService.CreateSchool(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "School created successfully", school)
}

// GetSchool returns a school by ID
func (h *SchoolHandler) GetSchool(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	school, err := h.schoolService.GetSchool(c.Context(), id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "School retrieved successfully", school)
}

// UpdateSchool updates a school's descriptive fields
func (h *SchoolHandler) UpdateSchool(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	var input services.UpdateSchoolInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	school, err := h.schoolService.UpdateSchool(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "School updated successfully", school)
}

// ActivateSchool reactivates a school
func (h *SchoolHandler) ActivateSchool(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	if err := h.schoolService.ActivateSchool(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "School activated successfully", nil)
}

// DeactivateSchool deactivates a school
func (h *SchoolHandler) DeactivateSchool(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	if err := h.schoolService.DeactivateSchool(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "School deactivated successfully", nil)
}

// ListSchools lists all schools (admin only)
func (h *SchoolHandler) ListSchools(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	schools, total, err := h.schoolService.ListSchools(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Schools retrieved successfully", pagination.NewResponse(schools, params, total))
}

// CreateSemester creates a semester within a school
func (h *SchoolHandler) CreateSemester(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	schoolID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	var input services.CreateSemesterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	semester, err := h.schoolService.CreateSemester(c.Context(), actor, schoolID, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Semester created successfully", semester)
}

// ListSemesters lists the semesters of a school
func (h *SchoolHandler) ListSemesters(c *fiber.Ctx) error {
	schoolID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid school ID")
	}

	semesters, err := h.schoolService.ListSemesters(c.Context(), schoolID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Semesters retrieved successfully", semesters)
}

// DeleteSemester removes a semester
func (h *SchoolHandler) DeleteSemester(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	semesterID, err := parseID(c, "semesterId")
	if err != nil {
		return response.BadRequest(c, "Invalid semester ID")
	}

	if err := h.schoolService.DeleteSemester(c.Context(), actor, semesterID); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Semester deleted successfully", nil)
}
