package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DirectoryHandler handles coach, player and manager directory endpoints
type DirectoryHandler struct {
	directoryService *services.DirectoryService
	userService      *services.UserService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *services.DirectoryService, userService *services.UserService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
		userService:      userService,
	}
}

// GetCoach returns a coach by ID
func (h *DirectoryHandler) GetCoach(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid coach ID")
	}

	coach, err := h.directoryService.GetCoach(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Coach retrieved successfully", coach)
}

// UpdateCoach updates a coach profile
func (h *DirectoryHandler) UpdateCoach(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid coach ID")
	}

	var input services.UpdateCoachInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	coach, err := h.directoryService.UpdateCoach(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Coach updated successfully", coach)
}

// ListCoaches lists the coaches of the acting manager's school
func (h *DirectoryHandler) ListCoaches(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	coaches, total, err := h.directoryService.ListCoaches(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Coaches retrieved successfully", pagination.NewResponse(coaches, params, total))
}

// DeleteCoach removes a coach and disables the linked account
func (h *DirectoryHandler) DeleteCoach(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid coach ID")
	}

	if err := h.userService.DeleteCoachUser(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Coach deleted successfully", nil)
}

// GetPlayer returns a player by ID
func (h *DirectoryHandler) GetPlayer(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	player, err := h.directoryService.GetPlayer(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Player retrieved successfully", player)
}

// UpdatePlayer updates a player profile
func (h *DirectoryHandler) UpdatePlayer(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	var input services.UpdatePlayerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	player, err := h.directoryService.UpdatePlayer(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Player updated successfully", player)
}

// ListPlayers lists players within the acting user's scope
func (h *DirectoryHandler) ListPlayers(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	players, total, err := h.directoryService.ListPlayers(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Players retrieved successfully", pagination.NewResponse(players, params, total))
}

// DeletePlayer removes a player
func (h *DirectoryHandler) DeletePlayer(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	if err := h.directoryService.DeletePlayer(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Player deleted successfully", nil)
}

// DeleteManager removes a manager (admin only)
func (h *DirectoryHandler) DeleteManager(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid manager ID")
	}

	if err := h.directoryService.DeleteManager(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Manager deleted successfully", nil)
}
