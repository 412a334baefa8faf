package handlers

import (
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/pagination"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile and account endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the acting user's profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), actor)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile updates the acting user's profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), actor, &input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// ChangePassword changes the acting user's password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.ChangePassword(c.Context(), actor, &input); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Password changed successfully", nil)
}

// RotateBadge issues a fresh badge UUID for the acting user
func (h *UserHandler) RotateBadge(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.RotateBadge(c.Context(), actor)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Badge rotated successfully", profile)
}

// ListUsers lists all users (admin only)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	users, total, err := h.userService.ListUsers(c.Context(), actor, params.Offset, params.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", pagination.NewResponse(users, params, total))
}

// SetUserActive enables or disables an account (admin only)
func (h *UserHandler) SetUserActive(c *fiber.Ctx) error {
	actor, ok := ActorFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil || body.IsActive == nil {
		return response.BadRequest(c, "is_active is required")
	}

	if err := h.userService.SetUserActive(c.Context(), actor, id, *body.IsActive); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, "User updated successfully", nil)
}
