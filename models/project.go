package models

import (
	"fmt"
	"strings"
	"time"
)

// Project lifecycle states. Only published projects appear on the public site.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Defaults applied when the admin form leaves optional fields blank.
const (
	DefaultLocation = "Uruguay"
	DefaultArea     = "N/A"
)

// Project represents a row of the projects table, optionally with its images
// embedded the way PostgREST returns the one-to-many relation.
type Project struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Year        string         `json:"year"`
	Location    string         `json:"location"`
	Area        string         `json:"area"`
	IsFeatured  bool           `json:"is_featured"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Images      []ProjectImage `json:"project_images,omitempty"`
}

// ProjectImage represents a row of the project_images table. Ordering is an
// explicit integer because the backend does not guarantee insertion order on
// read, and at most one image per project carries the cover flag.
type ProjectImage struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"project_id"`
	ImageURL  string `json:"image_url"`
	IsCover   bool   `json:"is_cover"`
	Order     int    `json:"order"`
}

// CoverImage returns the image flagged as cover, or nil when none is set.
func (p *Project) CoverImage() *ProjectImage {
	for i := range p.Images {
		if p.Images[i].IsCover {
			return &p.Images[i]
		}
	}
	return nil
}

// ValidationError reports a rejected input field before any backend call is
// made. Handlers render it as a form-level message rather than a 500.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProjectInput carries the admin form fields for creating or updating a
// project.
type ProjectInput struct {
	Title       string
	Description string
	Category    string
	Year        string
	Location    string
	Area        string
	IsFeatured  bool
	Status      string
}

// Normalize trims every field and fills the documented defaults: current year,
// "Uruguay" location, "N/A" area, published status.
func (in *ProjectInput) Normalize(now time.Time) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Year = strings.TrimSpace(in.Year)
	in.Location = strings.TrimSpace(in.Location)
	in.Area = strings.TrimSpace(in.Area)

	if in.Year == "" {
		in.Year = fmt.Sprintf("%d", now.Year())
	}
	if in.Location == "" {
		in.Location = DefaultLocation
	}
	if in.Area == "" {
		in.Area = DefaultArea
	}
	if in.Status == "" {
		in.Status = StatusPublished
	}
}

// Validate enforces the record invariants: title, description and category are
// non-empty after trimming, the year is a 4-digit string and the status is a
// known lifecycle state. Call Normalize first.
func (in *ProjectInput) Validate() error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if in.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if len(in.Year) != 4 {
		return &ValidationError{Field: "year", Message: "year must be a 4-digit string"}
	}
	for _, r := range in.Year {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "year", Message: "year must be a 4-digit string"}
		}
	}
	if in.Status != StatusDraft && in.Status != StatusPublished {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("status must be %q or %q", StatusDraft, StatusPublished)}
	}
	return nil
}
