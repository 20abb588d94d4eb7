package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/utils"
)

// AdminEmailKey is the locals key under which the verified operator email is
// stored for downstream handlers.
const AdminEmailKey = "admin_email"

// RequireAdmin verifies the bearer session token on every admin request.
// The guard runs server-side; a missing or invalid token is a 401 before any
// handler work happens.
func RequireAdmin(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokens == nil {
			return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Admin access is not configured. Set ADMIN_PASSWORD and JWT_SECRET.")
		}

		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Missing session token")
		}

		email, err := tokens.CheckToken(token)
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid or expired session token")
		}

		c.Locals(AdminEmailKey, email)
		return c.Next()
	}
}
