package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mgarquitectura/api-gateway/cache"
	"mgarquitectura/api-gateway/models"
	"mgarquitectura/api-gateway/store"
)

type mockProjectStore struct {
	mock.Mock
}

func (m *mockProjectStore) ListPublished(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	var projects []models.Project
	if v := args.Get(0); v != nil {
		projects = v.([]models.Project)
	}
	return projects, args.Error(1)
}

func (m *mockProjectStore) ListAll(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	var projects []models.Project
	if v := args.Get(0); v != nil {
		projects = v.([]models.Project)
	}
	return projects, args.Error(1)
}

func (m *mockProjectStore) GetByID(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	var project *models.Project
	if v := args.Get(0); v != nil {
		project = v.(*models.Project)
	}
	return project, args.Error(1)
}

func (m *mockProjectStore) Create(ctx context.Context, in models.ProjectInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockProjectStore) Update(ctx context.Context, id string, in models.ProjectInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *mockProjectStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProjectStore) AddImage(ctx context.Context, img models.ProjectImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *mockProjectStore) MaxImageOrder(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *mockProjectStore) DeleteCoverImages(ctx context.Context, projectID string) ([]string, error) {
	args := m.Called(ctx, projectID)
	var urls []string
	if v := args.Get(0); v != nil {
		urls = v.([]string)
	}
	return urls, args.Error(1)
}

func (m *mockProjectStore) SetCover(ctx context.Context, projectID, imageID string) error {
	args := m.Called(ctx, projectID, imageID)
	return args.Error(0)
}

func (m *mockProjectStore) DeleteImage(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

func (m *mockProjectStore) Ping(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockHeroStore struct {
	mock.Mock
}

func (m *mockHeroStore) ListSlides(ctx context.Context) ([]models.HeroSlide, error) {
	args := m.Called(ctx)
	var slides []models.HeroSlide
	if v := args.Get(0); v != nil {
		slides = v.([]models.HeroSlide)
	}
	return slides, args.Error(1)
}

func (m *mockHeroStore) ReplaceSlides(ctx context.Context, slides []models.HeroSlide) error {
	args := m.Called(ctx, slides)
	return args.Error(0)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, prefix, filename, r)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Remove(ctx context.Context, urls []string) error {
	args := m.Called(ctx, urls)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendContactEmail(ctx context.Context, form models.ContactForm) (string, error) {
	args := m.Called(ctx, form)
	return args.String(0), args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestHandler returns a handler in demo mode: no backend wired, demo
// fallback content, fresh cache.
func newTestHandler() *ApplicationHandler {
	return &ApplicationHandler{
		Logger:         testLogger(),
		Fallback:       store.NewDemo(),
		FallbackPolicy: FallbackDemo,
		Cache:          cache.New(time.Minute),
	}
}

// newTestApp mounts every route the gateway serves, without the admin guard
// so handlers can be exercised directly.
func newTestApp(h *ApplicationHandler) *fiber.App {
	app := fiber.New()
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Get("/projects", h.GetPublishedProjects)
	api.Get("/projects/:id", h.GetProject)
	api.Get("/hero-slides", h.GetHeroSlides)
	api.Post("/contact", h.SendContactMessage)
	api.Post("/auth/login", h.Login)

	admin := api.Group("/admin")
	admin.Get("/projects", h.GetAllProjects)
	admin.Post("/projects", h.CreateProject)
	admin.Patch("/projects/:id", h.UpdateProject)
	admin.Delete("/projects/:id", h.DeleteProject)
	admin.Put("/projects/:id/images/:imageId/cover", h.SetCoverImage)
	admin.Delete("/projects/:id/images/:imageId", h.DeleteProjectImage)
	admin.Post("/hero-slides", h.UpdateHeroSlides)
	admin.Get("/flash", h.GetFlash)
	return app
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
