package handlers

import (
	"time"

	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles training session and attendance endpoints
type SessionHandler struct {
	sessionService *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession schedules a training session
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateSessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.sessionService.CreateSession(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Session created successfully", session)
}

// GetSession returns a training session by ID
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	session, err := h.sessionService.GetSession(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Session retrieved successfully", session)
}

// UpdateSession updates a training session
func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	var input services.UpdateSessionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.sessionService.UpdateSession(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Session updated successfully", session)
}

// CancelSession cancels a training session
func (h *SessionHandler) CancelSession(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	if err := h.sessionService.CancelSession(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Session cancelled successfully", nil)
}

// DeleteSession removes a training session
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	if err := h.sessionService.DeleteSession(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Session deleted successfully", nil)
}

// ListSessions lists sessions visible to the acting user. Supports
// optional team_id and from query filters.
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var teamID *uint
	if v := c.QueryInt("team_id"); v > 0 {
		id := uint(v)
		teamID = &id
	}

	var fromDate *time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		}
		fromDate = &parsed
	}

	params := pagination.GetParams(c)
	sessions, total, err := h.sessionService.ListSessions(c.Context(), actor, teamID, fromDate, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Sessions retrieved successfully", pagination.NewResponse(sessions, params, total))
}

// RecordAttendance records a player's attendance for a session
func (h *SessionHandler) RecordAttendance(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	sessionID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	var input services.RecordAttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendance, err := h.sessionService.RecordAttendance(c.Context(), actor, sessionID, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Attendance recorded successfully", attendance)
}

// UpdateAttendance updates an attendance entry
func (h *SessionHandler) UpdateAttendance(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	attendanceID, err := parseID(c, "attendanceId")
	if err != nil {
		return response.BadRequest(c, "Invalid attendance ID")
	}

	var input services.UpdateAttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendance, err := h.sessionService.UpdateAttendance(c.Context(), actor, attendanceID, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Attendance updated successfully", attendance)
}

// ListSessionAttendance lists all attendance entries for a session
func (h *SessionHandler) ListSessionAttendance(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	sessionID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid session ID")
	}

	entries, err := h.sessionService.ListSessionAttendance(c.Context(), actor, sessionID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Attendance retrieved successfully", entries)
}

// ListPlayerAttendance lists a player's attendance history
func (h *SessionHandler) ListPlayerAttendance(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	playerID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	params := pagination.GetParams(c)
	entries, total, err := h.sessionService.ListPlayerAttendance(c.Context(), actor, playerID, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Attendance retrieved successfully", pagination.NewResponse(entries, params, total))
}
