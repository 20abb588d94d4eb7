package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"mgarquitectura/api-gateway/config"
	"mgarquitectura/api-gateway/models"
)

// projectSelect embeds the one-to-many image relation the way PostgREST
// resolves it, so a single query returns a project with its images.
const projectSelect = "*, project_images(*)"

// Projects encapsulates reads and writes against the projects and
// project_images tables. Public reads go through the anon client, everything
// else through the service-role client.
type Projects struct {
	log    *logrus.Logger
	public *supa.Client
	admin  *supa.Client
	rpc    *rpcClient
	bucket *Bucket
}

func NewProjects(log *logrus.Logger, clients *config.SupabaseClients, bucket *Bucket) *Projects {
	return &Projects{
		log:    log,
		public: clients.Public,
		admin:  clients.Admin,
		rpc:    newRPCClient(clients.URL, clients.ServiceKey),
		bucket: bucket,
	}
}

// ListPublished returns published projects, newest first, with their images.
func (p *Projects) ListPublished(ctx context.Context) ([]models.Project, error) {
	body, _, err := p.public.From(projectsTable).
		Select(projectSelect, "", false).
		Eq("status", models.StatusPublished).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching published projects: %w", err)
	}
	return decodeProjects(body)
}

// ListAll returns every project regardless of status, for the admin listing.
func (p *Projects) ListAll(ctx context.Context) ([]models.Project, error) {
	body, _, err := p.admin.From(projectsTable).
		Select(projectSelect, "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching all projects: %w", err)
	}
	return decodeProjects(body)
}

// GetByID returns one project with its images, or ErrNotFound.
func (p *Projects) GetByID(ctx context.Context, id string) (*models.Project, error) {
	body, _, err := p.public.From(projectsTable).
		Select(projectSelect, "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", id, err)
	}

	projects, err := decodeProjects(body)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrNotFound
	}
	return &projects[0], nil
}

// Create validates the input, inserts a row and returns its generated id.
func (p *Projects) Create(ctx context.Context, in models.ProjectInput) (string, error) {
	in.Normalize(time.Now())
	if err := in.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	payload := projectPayload(in)
	payload["created_at"] = now
	payload["updated_at"] = now

	body, _, err := p.admin.From(projectsTable).
		Insert(payload, false, "", "representation", "").
		Execute()
	if err != nil {
		return "", fmt.Errorf("creating project: %w", err)
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("decoding created project: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("creating project: empty response")
	}

	p.log.Infof("Project created: %s", results[0].ID)
	return results[0].ID, nil
}

// Update validates the input and updates the row, or returns ErrNotFound.
func (p *Projects) Update(ctx context.Context, id string, in models.ProjectInput) error {
	in.Normalize(time.Now())
	if err := in.Validate(); err != nil {
		return err
	}

	payload := projectPayload(in)
	payload["updated_at"] = time.Now()

	body, _, err := p.admin.From(projectsTable).
		Update(payload, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("decoding updated project: %w", err)
	}
	if len(results) == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project row; the FK cascade removes its image rows.
// Bucket objects are then removed best-effort: failures are logged, not
// escalated, because the row deletion is the success criterion. Deleting an
// id that no longer exists is not an error.
func (p *Projects) Delete(ctx context.Context, id string) error {
	urls, err := p.imageURLs(ctx, "project_id", id)
	if err != nil {
		p.log.Warnf("Could not fetch image URLs for project %s before delete: %v", id, err)
	}

	if _, _, err := p.admin.From(projectsTable).Delete("", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}

	if len(urls) > 0 {
		if err := p.bucket.Remove(ctx, urls); err != nil {
			p.log.Warnf("Deleted project %s but failed to clean up %d storage objects: %v", id, len(urls), err)
		}
	}

	p.log.Infof("Project deleted: %s", id)
	return nil
}

// AddImage inserts a project_images row for an already-uploaded object.
func (p *Projects) AddImage(ctx context.Context, img models.ProjectImage) error {
	payload := map[string]interface{}{
		"project_id": img.ProjectID,
		"image_url":  img.ImageURL,
		"is_cover":   img.IsCover,
		"order":      img.Order,
	}
	if _, _, err := p.admin.From(projectImagesTable).Insert(payload, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("saving image for project %s: %w", img.ProjectID, err)
	}
	return nil
}

// DeleteCoverImages removes the rows currently flagged as cover for the
// project and returns their URLs so the caller can clean up the bucket.
func (p *Projects) DeleteCoverImages(ctx context.Context, projectID string) ([]string, error) {
	body, _, err := p.admin.From(projectImagesTable).
		Select("image_url", "", false).
		Eq("project_id", projectID).
		Eq("is_cover", "true").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching cover images for project %s: %w", projectID, err)
	}

	var rows []models.ProjectImage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding cover images: %w", err)
	}

	if _, _, err := p.admin.From(projectImagesTable).
		Delete("", "").
		Eq("project_id", projectID).
		Eq("is_cover", "true").
		Execute(); err != nil {
		return nil, fmt.Errorf("deleting cover images for project %s: %w", projectID, err)
	}

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.ImageURL)
	}
	return urls, nil
}

// SetCover flags one image as the project's cover and clears the flag on every
// other image. The set_cover_image database function does both inside one
// transaction; when it is not installed, the call falls back to the
// clear-then-set sequence, which leaves a window where a concurrent reader can
// observe no cover.
func (p *Projects) SetCover(ctx context.Context, projectID, imageID string) error {
	err := p.rpc.call("set_cover_image", map[string]interface{}{
		"p_project_id": projectID,
		"p_image_id":   imageID,
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, errFunctionMissing) {
		return fmt.Errorf("setting cover image %s: %w", imageID, err)
	}
	p.log.Warn("set_cover_image is not installed, using clear-then-set fallback")

	if _, _, err := p.admin.From(projectImagesTable).
		Update(map[string]interface{}{"is_cover": false}, "minimal", "").
		Eq("project_id", projectID).
		Execute(); err != nil {
		return fmt.Errorf("clearing cover flags for project %s: %w", projectID, err)
	}

	body, _, err := p.admin.From(projectImagesTable).
		Update(map[string]interface{}{"is_cover": true}, "representation", "").
		Eq("id", imageID).
		Eq("project_id", projectID).
		Execute()
	if err != nil {
		return fmt.Errorf("setting cover image %s: %w", imageID, err)
	}

	var rows []models.ProjectImage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decoding cover update: %w", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteImage removes a single image row and best-effort removes its object.
func (p *Projects) DeleteImage(ctx context.Context, imageID string) error {
	urls, err := p.imageURLs(ctx, "id", imageID)
	if err != nil {
		p.log.Warnf("Could not fetch URL for image %s before delete: %v", imageID, err)
	}

	if _, _, err := p.admin.From(projectImagesTable).Delete("", "").Eq("id", imageID).Execute(); err != nil {
		return fmt.Errorf("deleting image %s: %w", imageID, err)
	}

	if len(urls) > 0 {
		if err := p.bucket.Remove(ctx, urls); err != nil {
			p.log.Warnf("Deleted image row %s but failed to remove its object: %v", imageID, err)
		}
	}
	return nil
}

// MaxImageOrder returns the highest order value among the project's images,
// or zero when it has none. New gallery images continue from this value so
// their orders never collide with already-persisted rows.
func (p *Projects) MaxImageOrder(ctx context.Context, projectID string) (int, error) {
	body, _, err := p.admin.From(projectImagesTable).
		Select("order", "", false).
		Eq("project_id", projectID).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("fetching image orders for project %s: %w", projectID, err)
	}

	var rows []models.ProjectImage
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("decoding image orders: %w", err)
	}

	max := 0
	for _, row := range rows {
		if row.Order > max {
			max = row.Order
		}
	}
	return max, nil
}

// Ping issues a head-only count against the projects table to verify the
// backend connection, returning the row count.
func (p *Projects) Ping(ctx context.Context) (int64, error) {
	_, count, err := p.public.From(projectsTable).Select("id", "exact", true).Execute()
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}

func (p *Projects) imageURLs(ctx context.Context, column, value string) ([]string, error) {
	body, _, err := p.admin.From(projectImagesTable).
		Select("image_url", "", false).
		Eq(column, value).
		Execute()
	if err != nil {
		return nil, err
	}
	var rows []models.ProjectImage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.ImageURL)
	}
	return urls, nil
}

func projectPayload(in models.ProjectInput) map[string]interface{} {
	return map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
		"category":    in.Category,
		"year":        in.Year,
		"location":    in.Location,
		"area":        in.Area,
		"is_featured": in.IsFeatured,
		"status":      in.Status,
	}
}

// decodeProjects unmarshals a PostgREST response and orders each project's
// images by their explicit order column, since the embedded relation does not
// guarantee any ordering on read.
func decodeProjects(body []byte) ([]models.Project, error) {
	var projects []models.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("decoding projects: %w", err)
	}
	for i := range projects {
		imgs := projects[i].Images
		sort.Slice(imgs, func(a, b int) bool { return imgs[a].Order < imgs[b].Order })
	}
	return projects, nil
}
