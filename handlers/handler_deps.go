package handlers

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/models"
	"mgarquitectura/api-gateway/utils"
)

var validate = validator.New()

// Fallback policies for public reads when the backend fails.
const (
	FallbackDemo  = "demo"
	FallbackEmpty = "empty"
)

// ProjectStore defines the operations handlers expect from the project record
// service. This allows for decoupling and easier testing; the concrete
// implementation is provided by the store package.
type ProjectStore interface {
	ListPublished(ctx context.Context) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in models.ProjectInput) (string, error)
	Update(ctx context.Context, id string, in models.ProjectInput) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, img models.ProjectImage) error
	MaxImageOrder(ctx context.Context, projectID string) (int, error)
	DeleteCoverImages(ctx context.Context, projectID string) ([]string, error)
	SetCover(ctx context.Context, projectID, imageID string) error
	DeleteImage(ctx context.Context, imageID string) error
	Ping(ctx context.Context) (int64, error)
}

// HeroStore defines the operations handlers expect for the banner slide set.
type HeroStore interface {
	ListSlides(ctx context.Context) ([]models.HeroSlide, error)
	ReplaceSlides(ctx context.Context, slides []models.HeroSlide) error
}

// ImageStore defines the bucket operations used by the upload flows.
type ImageStore interface {
	Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, urls []string) error
}

// ContactMailer relays a contact submission and returns the provider's
// message id.
type ContactMailer interface {
	SendContactEmail(ctx context.Context, form models.ContactForm) (string, error)
}

// ContentFallback is the read interface served when Supabase is not
// configured, or when a public read fails and the fallback policy allows it.
type ContentFallback interface {
	ListPublished(ctx context.Context) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListSlides(ctx context.Context) ([]models.HeroSlide, error)
}

// ApplicationHandler holds shared dependencies for handlers. Projects, Hero,
// Images and Mailer are nil when their backing service is not configured;
// handlers degrade instead of crashing.
type ApplicationHandler struct {
	Logger         *logrus.Logger
	Projects       ProjectStore
	Hero           HeroStore
	Images         ImageStore
	Mailer         ContactMailer
	Fallback       ContentFallback
	FallbackPolicy string
	Tokens         *utils.TokenManager
	Cache          *cache.PageCache
	AdminEmail     string
	AdminPassword  string
}

const msgNotConfigured = "Supabase is not configured. Check the environment variables."
