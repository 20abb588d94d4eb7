package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Health reports whether the gateway runs against the hosted backend or in
// demo mode, with a live head count when configured.
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":  "ok",
		"message": "API Gateway is healthy",
		"mode":    "demo",
	}

	if h.Projects != nil {
		resp["mode"] = "configured"
		count, err := h.Projects.Ping(c.Context())
		if err != nil {
			resp["database"] = fmt.Sprintf("error: %v", err)
		} else {
			resp["database"] = "ok"
			resp["projects"] = count
		}
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
