package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TeamHandler handles team and roster endpoints
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeam creates a team in the acting manager's school
func (h *TeamHandler) CreateTeam(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	team, err := h.teamService.CreateTeam(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, "Team created successfully", team)
}

// GetTeam returns a team by ID
func (h *TeamHandler) GetTeam(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid team ID")
	}

	team, err := h.teamService.GetTeam(c.Context(), actor, id)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Team retrieved successfully", team)
}

// UpdateTeam updates a team
func (h *TeamHandler) UpdateTeam(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid team ID")
	}

	var input services.UpdateTeamInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	team, err := h.teamService.UpdateTeam(c.Context(), actor, id, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Team updated successfully", team)
}

// DeleteTeam removes a team
func (h *TeamHandler) DeleteTeam(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid team ID")
	}

	if err := h.teamService.DeleteTeam(c.Context(), actor, id); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Team deleted successfully", nil)
}

// ListTeams lists teams visible to the acting user
func (h *TeamHandler) ListTeams(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	teams, total, err := h.teamService.ListTeams(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Teams retrieved successfully", pagination.NewResponse(teams, params, total))
}

// AddPlayer adds a player to the team roster
func (h *TeamHandler) AddPlayer(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	teamID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid team ID")
	}

	playerID, err := parseID(c, "playerId")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	if err := h.teamService.AddPlayer(c.Context(), actor, teamID, playerID); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Player added to team successfully", nil)
}

// RemovePlayer removes a player from the team roster
func (h *TeamHandler) RemovePlayer(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	teamID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid team ID")
	}

	playerID, err := parseID(c, "playerId")
	if err != nil {
		return response.BadRequest(c, "Invalid player ID")
	}

	if err := h.teamService.RemovePlayer(c.Context(), actor, teamID, playerID); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Player removed from team successfully", nil)
}
