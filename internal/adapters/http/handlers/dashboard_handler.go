package handlers

import (
	"fieldside/internal/core/domain"
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles role-specific dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the dashboard matching the acting user's role
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var (
		data interface{}
		err  error
	)

	switch {
	case actor.IsAdmin:
		data, err = h.dashboardService.GetAdminDashboard(c.Context(), actor)
	case actor.Role == domain.RoleManager:
		data, err = h.dashboardService.GetManagerDashboard(c.Context(), actor)
	case actor.Role == domain.RoleCoach:
		data, err = h.dashboardService.GetCoachDashboard(c.Context(), actor)
	case actor.Role == domain.RolePlayer:
		data, err = h.dashboardService.GetPlayerDashboard(c.Context(), actor)
	default:
		return response.Forbidden(c, "No dashboard for this role")
	}

	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// GetAdminDashboard returns platform-wide statistics (admin only)
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetAdminDashboard(c.Context(), actor)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
