package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/utils"
)

// LoginRequest defines the expected request body for the admin login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login checks the configured operator credentials and issues a signed
// session token. There is exactly one operator account; anything else is a
// 401.
func (h *ApplicationHandler) Login(c *fiber.Ctx) error {
	req := new(LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse login request")
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	if h.Tokens == nil || h.AdminPassword == "" {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Admin access is not configured. Set ADMIN_PASSWORD and JWT_SECRET.")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.AdminPassword)) == 1
	if !emailOK || !passwordOK {
		h.Logger.Warnf("Failed admin login attempt for %s", req.Email)
		return utils.RespondWithError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.Tokens.CreateToken(req.Email)
	if err != nil {
		h.Logger.Errorf("Error creating session token: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not create session token")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}

// GetFlash returns the pending one-shot admin message, clearing it so it is
// shown exactly once.
func (h *ApplicationHandler) GetFlash(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"flash":  utils.PopFlash(c),
	})
}
