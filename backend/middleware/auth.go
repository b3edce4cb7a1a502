package middleware

import (
	"github.com/gofiber/fiber/v2"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"
)

// AuthMiddleware verifies the bearer token and stores the caller's user ID in
// c.Locals("userID") for the handlers downstream.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user's
// stored role matches one of the given roles. The role is looked up on every
// request rather than trusted from the token, so a role change takes effect
// immediately.
func RequireRole(users *services.UserService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(int)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Forbidden - insufficient role")
	}
}

// UserID reads the authenticated caller's ID set by AuthMiddleware.
func UserID(c *fiber.Ctx) int {
	id, _ := c.Locals("userID").(int)
	return id
}
