package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/models"
	"mgarquitectura/api-gateway/store"
	"mgarquitectura/api-gateway/utils"
)

// ProjectListSuccessResponse defines the structure for a successful response
// when listing projects.
type ProjectListSuccessResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    []models.Project `json:"data"`
}

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GetPublishedProjects godoc
// @Summary List published projects
// @Description Retrieves published projects with their images, newest first. Degrades to fallback content when the backend is unreachable.
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListSuccessResponse
// @Router /projects [get]
func (h *ApplicationHandler) GetPublishedProjects(c *fiber.Ctx) error {
	if cached, ok := h.Cache.Get(cache.PageProjects); ok {
		if projects, ok := cached.([]models.Project); ok {
			return projectListResponse(c, projects)
		}
	}

	if h.Projects == nil {
		h.Logger.Info("Demo mode: serving fallback published projects")
		projects, _ := h.Fallback.ListPublished(c.Context())
		return projectListResponse(c, projects)
	}

	projects, err := h.Projects.ListPublished(c.Context())
	if err != nil {
		h.Logger.Errorf("Error fetching published projects: %v", err)
		return projectListResponse(c, h.fallbackPublished(c.Context()))
	}

	h.Cache.Set(cache.PageProjects, projects)
	return projectListResponse(c, projects)
}

// GetAllProjects returns every project regardless of status, for the admin
// listing.
func (h *ApplicationHandler) GetAllProjects(c *fiber.Ctx) error {
	if cached, ok := h.Cache.Get(cache.PageAdminProjects); ok {
		if projects, ok := cached.([]models.Project); ok {
			return projectListResponse(c, projects)
		}
	}

	if h.Projects == nil {
		h.Logger.Info("Demo mode: serving fallback project list")
		projects, _ := h.Fallback.ListAll(c.Context())
		return projectListResponse(c, projects)
	}

	projects, err := h.Projects.ListAll(c.Context())
	if err != nil {
		h.Logger.Errorf("Error fetching all projects: %v", err)
		if h.FallbackPolicy == FallbackDemo {
			projects, _ := h.Fallback.ListAll(c.Context())
			return projectListResponse(c, projects)
		}
		return projectListResponse(c, []models.Project{})
	}

	h.Cache.Set(cache.PageAdminProjects, projects)
	return projectListResponse(c, projects)
}

// GetProject handles retrieving a specific project by its ID.
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectID := c.Params("id")

	var (
		project *models.Project
		err     error
	)
	if h.Projects == nil {
		project, err = h.Fallback.GetByID(c.Context(), projectID)
	} else {
		project, err = h.Projects.GetByID(c.Context(), projectID)
		if err != nil && !errors.Is(err, store.ErrNotFound) && h.FallbackPolicy == FallbackDemo {
			h.Logger.Errorf("Error fetching project %s, trying fallback: %v", projectID, err)
			project, err = h.Fallback.GetByID(c.Context(), projectID)
		}
	}

	if errors.Is(err, store.ErrNotFound) {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
	}
	if err != nil {
		h.Logger.Errorf("Error fetching project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve project %s", projectID))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, project)
}

// CreateProject godoc
// @Summary Create a new project
// @Description Creates a project from the admin form, uploading any cover and gallery images to the storage bucket.
// @Tags projects
// @Accept mpfd
// @Produce json
// @Failure 400 {object} ErrorResponse "Missing required fields"
// @Router /admin/projects [post]
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	h.Logger.Info("Received request to create a new project")

	in := projectInputFromForm(c)
	in.Normalize(time.Now())
	if err := in.Validate(); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	if h.Projects == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	projectID, err := h.Projects.Create(c.Context(), in)
	if err != nil {
		return h.respondWriteError(c, "create project", err)
	}

	if err := h.saveProjectImages(c, projectID, false); err != nil {
		// The row is kept rather than compensated: the admin retries the
		// image upload via the edit form.
		h.invalidateProjectPages()
		h.Logger.Errorf("Project %s created but saving images failed: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Project was created but saving images failed: %v", err))
	}

	h.invalidateProjectPages()
	utils.SetFlash(c, "Proyecto guardado exitosamente", "success")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":     "success",
		"message":    "Project created successfully",
		"project_id": projectID,
	})
}

// UpdateProject handles updating an existing project by its ID.
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	projectID := c.Params("id")
	h.Logger.Infof("Received request to update project with ID: %s", projectID)

	in := projectInputFromForm(c)
	in.Normalize(time.Now())
	if err := in.Validate(); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	if h.Projects == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	if err := h.Projects.Update(c.Context(), projectID, in); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
		}
		return h.respondWriteError(c, "update project", err)
	}

	if err := h.saveProjectImages(c, projectID, true); err != nil {
		h.invalidateProjectPages()
		h.Logger.Errorf("Project %s updated but saving images failed: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Project was updated but saving images failed: %v", err))
	}

	h.invalidateProjectPages()
	utils.SetFlash(c, "Proyecto actualizado exitosamente", "success")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":     "success",
		"message":    "Project updated successfully",
		"project_id": projectID,
	})
}

// DeleteProject handles deleting a specific project by its ID. The delete is
// idempotent: deleting an id that no longer exists still succeeds.
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	projectID := c.Params("id")
	h.Logger.Infof("Received request to delete project with ID: %s", projectID)

	if h.Projects == nil {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, msgNotConfigured)
	}

	if err := h.Projects.Delete(c.Context(), projectID); err != nil {
		h.Logger.Errorf("Error deleting project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete project %s", projectID))
	}

	h.invalidateProjectPages()
	utils.SetFlash(c, "Proyecto eliminado exitosamente", "success")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Project with ID %s deleted", projectID),
	})
}

func (h *ApplicationHandler) fallbackPublished(ctx context.Context) []models.Project {
	if h.FallbackPolicy == FallbackDemo {
		projects, _ := h.Fallback.ListPublished(ctx)
		return projects
	}
	return []models.Project{}
}

// saveProjectImages uploads the cover and gallery files from the multipart
// form and persists their rows. With replaceCover set, the previous cover
// rows are removed first so the new file becomes the single cover.
func (h *ApplicationHandler) saveProjectImages(c *fiber.Ctx, projectID string, replaceCover bool) error {
	cover, err := c.FormFile("coverImage")
	if err == nil && cover.Size > 0 {
		if replaceCover {
			urls, err := h.Projects.DeleteCoverImages(c.Context(), projectID)
			if err != nil {
				h.Logger.Warnf("Could not remove previous cover rows for project %s: %v", projectID, err)
			} else if len(urls) > 0 {
				if err := h.Images.Remove(c.Context(), urls); err != nil {
					h.Logger.Warnf("Could not remove previous cover objects for project %s: %v", projectID, err)
				}
			}
		}

		url, err := h.uploadFormFile(c.Context(), projectID, cover)
		if err != nil {
			return err
		}
		if err := h.Projects.AddImage(c.Context(), models.ProjectImage{
			ProjectID: projectID,
			ImageURL:  url,
			IsCover:   true,
			Order:     0,
		}); err != nil {
			return err
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	files := form.File["otherImages"]

	// On update the project may already have gallery rows; new images continue
	// from the highest persisted order instead of colliding with them.
	base := 0
	if replaceCover && len(files) > 0 {
		max, err := h.Projects.MaxImageOrder(c.Context(), projectID)
		if err != nil {
			h.Logger.Warnf("Could not determine image order for project %s: %v", projectID, err)
		} else {
			base = max
		}
	}

	for i, fileHeader := range files {
		if fileHeader.Size == 0 {
			continue
		}
		url, err := h.uploadFormFile(c.Context(), projectID, fileHeader)
		if err != nil {
			return err
		}
		if err := h.Projects.AddImage(c.Context(), models.ProjectImage{
			ProjectID: projectID,
			ImageURL:  url,
			Order:     base + i + 1,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (h *ApplicationHandler) uploadFormFile(ctx context.Context, prefix string, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded file %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	return h.Images.Upload(ctx, prefix, fileHeader.Filename, file)
}

func (h *ApplicationHandler) respondWriteError(c *fiber.Ctx, op string, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, validationErr.Message)
	}
	h.Logger.Errorf("Could not %s: %v", op, err)
	return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not %s: %v", op, err))
}

func (h *ApplicationHandler) invalidateProjectPages() {
	h.Cache.Invalidate(cache.PageAdminProjects, cache.PageProjects, cache.PageHome)
}

func projectInputFromForm(c *fiber.Ctx) models.ProjectInput {
	return models.ProjectInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Year:        c.FormValue("year"),
		Location:    c.FormValue("location"),
		Area:        c.FormValue("area"),
		IsFeatured:  c.FormValue("is_featured") == "true" || c.FormValue("is_featured") == "on",
		Status:      c.FormValue("status"),
	}
}

func projectListResponse(c *fiber.Ctx, projects []models.Project) error {
	if projects == nil {
		projects = []models.Project{}
	}
	return c.Status(fiber.StatusOK).JSON(ProjectListSuccessResponse{
		Status:  "success",
		Message: "Projects retrieved successfully",
		Data:    projects,
	})
}
