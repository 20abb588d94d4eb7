package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/store"
	"mgarquitectura/api-gateway/utils"
)

// SetCoverImage flags one image as the project's cover. Clearing the previous
// cover and setting the new one happens in the store, in a single transaction
// when the backend supports it.
func (h *ApplicationHandler) SetCoverImage(c *fiber.Ctx) error {
	projectID := c.Params("id")
	imageID := c.Params("imageId")
	h.Logger.Infof("Received request to set image %s as cover for project %s", imageID, projectID)

	if h.Projects == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	if err := h.Projects.SetCover(c.Context(), projectID, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound,
				fmt.Sprintf("Image %s not found for project %s", imageID, projectID))
		}
		h.Logger.Errorf("Error setting cover image %s: %v", imageID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not set cover image: %v", err))
	}

	h.invalidateProjectPages()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Cover image updated successfully",
	})
}

// DeleteProjectImage removes a single image row and, best-effort, its object
// in the storage bucket.
func (h *ApplicationHandler) DeleteProjectImage(c *fiber.Ctx) error {
	imageID := c.Params("imageId")
	h.Logger.Infof("Received request to delete image %s", imageID)

	if h.Projects == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	if err := h.Projects.DeleteImage(c.Context(), imageID); err != nil {
		h.Logger.Errorf("Error deleting image %s: %v", imageID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete image: %v", err))
	}

	h.Cache.Invalidate(cache.PageAdminProjects, cache.PageProjects, cache.PageHome)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Image deleted successfully",
	})
}
