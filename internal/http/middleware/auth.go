package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/auth"
	"docvault/internal/model"
)

// ActorLocalKey is the key used to store the authenticated identity in
// Fiber's context locals.
const ActorLocalKey = "actor"

// RequireAuth verifies the Bearer token on every request and stores the
// resolved identity in context locals. Requests without a valid token get
// 401 via the global error handler.
func RequireAuth(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(ActorLocalKey, identity)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin actors. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(ActorLocalKey).(auth.Identity)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing identity")
		}
		if actor.Role != model.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}

// ActorFromCtx returns the identity stored by RequireAuth.
func ActorFromCtx(c *fiber.Ctx) auth.Identity {
	actor, _ := c.Locals(ActorLocalKey).(auth.Identity)
	return actor
}
