package models

import (
	"strings"
	"time"
)

// DefaultSlideImageURL is used when a slide is saved without an image.
const DefaultSlideImageURL = "/images/diseno-interiores.jpg"

// HeroSlide represents a row of the hero_slides table. The whole set is
// replaced on every save, so Order is simply the list position starting at 1.
type HeroSlide struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// SlideInput is one entry of the banner form. ImageURL holds the previously
// persisted URL; a freshly uploaded file replaces it before insertion.
type SlideInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Valid reports whether the entry carries the minimum content to be kept.
// Entries failing this check are silently dropped from the save, and a save
// with no valid entry at all is rejected before any mutation.
func (in SlideInput) Valid() bool {
	return strings.TrimSpace(in.Title) != "" && strings.TrimSpace(in.Description) != ""
}
