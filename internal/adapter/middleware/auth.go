package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireUser reads the authenticated user id from the X-User-Id header and
// stores it in the request locals. The gateway in front of this service is
// what actually authenticates; here we only require a well-formed identity.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-User-Id")
		if header == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing X-User-Id header"})
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid X-User-Id header"})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
