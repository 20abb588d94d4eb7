package store

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Table names in the hosted database.
const (
	projectsTable      = "projects"
	projectImagesTable = "project_images"
	heroSlidesTable    = "hero_slides"
)
