package handlers

import (
	"fieldside/internal/adapters/http/middleware"
	"fieldside/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// ActorFromCtx returns the actor resolved by the auth middleware
func ActorFromCtx(c *fiber.Ctx) (domain.Actor, bool) {
	return middleware.ActorFromCtx(c)
}

// parseID parses a numeric path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
