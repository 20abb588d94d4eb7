package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/models"
	"mgarquitectura/api-gateway/utils"
)

// GetHeroSlides returns the ordered banner slide set for the home page,
// falling back to demo content when the backend is unreachable.
func (h *ApplicationHandler) GetHeroSlides(c *fiber.Ctx) error {
	if cached, ok := h.Cache.Get(cache.PageHome); ok {
		if slides, ok := cached.([]models.HeroSlide); ok {
			return slideListResponse(c, slides)
		}
	}

	if h.Hero == nil {
		h.Logger.Info("Demo mode: serving fallback hero slides")
		slides, _ := h.Fallback.ListSlides(c.Context())
		return slideListResponse(c, slides)
	}

	slides, err := h.Hero.ListSlides(c.Context())
	if err != nil {
		h.Logger.Errorf("Error fetching hero slides: %v", err)
		if h.FallbackPolicy == FallbackDemo {
			slides, _ := h.Fallback.ListSlides(c.Context())
			return slideListResponse(c, slides)
		}
		return slideListResponse(c, []models.HeroSlide{})
	}

	h.Cache.Set(cache.PageHome, slides)
	return slideListResponse(c, slides)
}

// UpdateHeroSlides godoc
// @Summary Replace the banner slide set
// @Description Full replace of the hero slides: entries without title and description are dropped, new image files are uploaded, and the resulting list is persisted in submission order.
// @Tags hero
// @Accept mpfd
// @Produce json
// @Failure 400 {object} ErrorResponse "No valid slide in the submission"
// @Router /admin/hero-slides [post]
func (h *ApplicationHandler) UpdateHeroSlides(c *fiber.Ctx) error {
	h.Logger.Info("Received request to update hero slides")

	raw := c.FormValue("slidesData")
	if raw == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "slidesData is required")
	}

	var inputs []models.SlideInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse slidesData: %v", err))
	}

	// Reject before any upload or mutation: an empty save must leave the
	// persisted slide set untouched.
	validCount := 0
	for _, in := range inputs {
		if in.Valid() {
			validCount++
		}
	}
	if validCount == 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "At least one slide with title and description is required")
	}

	if h.Hero == nil || h.Images == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	slides := make([]models.HeroSlide, 0, validCount)
	for i, in := range inputs {
		if !in.Valid() {
			continue
		}

		imageURL := strings.TrimSpace(in.ImageURL)
		if fileHeader, err := c.FormFile(fmt.Sprintf("image_%d", i)); err == nil && fileHeader.Size > 0 {
			url, err := h.uploadFormFile(c.Context(), "hero-slides", fileHeader)
			if err != nil {
				h.Logger.Errorf("Error uploading slide image %d: %v", i, err)
				return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not upload slide image: %v", err))
			}
			imageURL = url
		}
		if imageURL == "" {
			imageURL = models.DefaultSlideImageURL
		}

		slides = append(slides, models.HeroSlide{
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			ImageURL:    imageURL,
			Order:       len(slides) + 1,
		})
	}

	if err := h.Hero.ReplaceSlides(c.Context(), slides); err != nil {
		h.Logger.Errorf("Error replacing hero slides: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not save slides: %v", err))
	}

	h.Cache.Invalidate(cache.PageAdminSettings, cache.PageHome)
	utils.SetFlash(c, "Slides actualizados exitosamente", "success")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Saved %d slides", len(slides)),
	})
}

func slideListResponse(c *fiber.Ctx, slides []models.HeroSlide) error {
	if slides == nil {
		slides = []models.HeroSlide{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   slides,
	})
}
