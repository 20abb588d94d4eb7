package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mgarquitectura/api-gateway/utils"
)

func newGuardedApp(tokens *utils.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/admin/ping", RequireAdmin(tokens), func(c *fiber.Ctx) error {
		email, _ := c.Locals(AdminEmailKey).(string)
		return c.JSON(fiber.Map{"email": email})
	})
	return app
}

func TestRequireAdmin_AllowsValidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	app := newGuardedApp(tokens)

	token, err := tokens.CreateToken("proyectos.mgimenez@gmail.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_RejectsMissingOrInvalidToken(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	app := newGuardedApp(tokens)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRequireAdmin_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	app := newGuardedApp(utils.NewTokenManager("test-secret", time.Hour))

	forged, err := utils.NewTokenManager("other-secret", time.Hour).CreateToken("x@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+forged)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin_NotConfigured(t *testing.T) {
	app := newGuardedApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
