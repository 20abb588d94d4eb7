package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/models"
	"mgarquitectura/api-gateway/utils"
)

// SendContactMessage relays a visitor's contact submission to the firm's
// inbox. Nothing is persisted; a validation failure means no provider call
// is made at all.
func (h *ApplicationHandler) SendContactMessage(c *fiber.Ctx) error {
	form := new(models.ContactForm)
	if err := c.BodyParser(form); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse contact form: %v", err))
	}

	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if err := validate.Struct(form); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	if h.Mailer == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Contact relay is not configured. Set RESEND_API_KEY.")
	}

	emailID, err := h.Mailer.SendContactEmail(c.Context(), *form)
	if err != nil {
		h.Logger.Errorf("Error sending contact email: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadGateway, "Could not send your message. Please try again later.")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"message":  "¡Mensaje enviado exitosamente! Nos pondremos en contacto contigo en breve.",
		"email_id": emailID,
	})
}
