package middleware

import (
	"strings"

	"fieldside/internal/config"
	"fieldside/internal/core/domain"
	"fieldside/internal/core/services"
	"fieldside/internal/pkg/jwt"
	"fieldside/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// AuthMiddleware validates the access token and resolves the acting
// identity. The resolved domain.Actor lands in the request locals and is the
// only auth state downstream code sees.
func AuthMiddleware(cfg *config.Config, scopeService *services.ScopeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Resolve the actor once; the role record lookup happens here and
		// nowhere else.
		actor, err := scopeService.ResolveActor(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// ActorFromCtx returns the resolved actor set by AuthMiddleware
func ActorFromCtx(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(actorKey).(domain.Actor)
	return actor, ok
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// admins pass every role gate
		if actor.IsAdmin {
			return c.Next()
		}

		for _, allowed := range allowedRoles {
			if actor.Role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only admin accounts
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromCtx(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !actor.IsAdmin {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// ManagerOnly middleware allows managers (and admins)
func ManagerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleManager)
}

// CoachOrManager middleware allows coaches and managers (and admins)
func CoachOrManager() fiber.Handler {
	return RoleMiddleware(domain.RoleCoach, domain.RoleManager)
}
