package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mgarquitectura/api-gateway/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testForm() models.ContactForm {
	return models.ContactForm{
		FirstName: "Ana",
		LastName:  "Pérez",
		Email:     "ana@example.com",
		Phone:     "+598 99 123 456",
		Subject:   "Proyecto nuevo",
		Message:   "Hola\nQuiero una cotización.",
	}
}

func TestSendContactEmail(t *testing.T) {
	var (
		gotAuth    string
		gotPath    string
		gotPayload resendEmailRequest
		calls      int
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	m := NewMailer(testLogger(), "test-key", "Contacto MG Arquitectura <contacto@mgarquitecturauy.com>", "proyectos@mgarquitecturauy.com")
	m.baseURL = srv.URL

	id, err := m.SendContactEmail(context.Background(), testForm())
	require.NoError(t, err)
	assert.Equal(t, "email-1", id)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/emails", gotPath)
	assert.Equal(t, "Contacto MG Arquitectura <contacto@mgarquitecturauy.com>", gotPayload.From)
	assert.Equal(t, []string{"proyectos@mgarquitecturauy.com"}, gotPayload.To)
	assert.Equal(t, "Consulta Web: Proyecto nuevo", gotPayload.Subject)
	assert.Equal(t, "ana@example.com", gotPayload.ReplyTo)
	assert.Contains(t, gotPayload.Html, "Ana")
	assert.Contains(t, gotPayload.Html, "Pérez")
	assert.Contains(t, gotPayload.Html, "Hola<br>Quiero una cotización.")
	assert.Contains(t, gotPayload.Text, "Hola\nQuiero una cotización.")
}

func TestSendContactEmail_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	m := NewMailer(testLogger(), "test-key", "bad-from", "proyectos@mgarquitecturauy.com")
	m.baseURL = srv.URL

	_, err := m.SendContactEmail(context.Background(), testForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
	assert.Contains(t, err.Error(), "422")
}

func TestRenderContactBodies(t *testing.T) {
	form := testForm()
	form.Message = "Hola <b>\nGracias"
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	htmlBody, textBody := renderContactBodies(form, now)

	assert.Contains(t, htmlBody, "Nueva Consulta desde MG Arquitectura")
	assert.Contains(t, htmlBody, "Hola &lt;b&gt;<br>Gracias")
	assert.Contains(t, htmlBody, "mailto:ana@example.com")
	if loc, err := time.LoadLocation("America/Montevideo"); err == nil {
		// Montevideo is UTC-3.
		assert.Equal(t, "15/06/2024 15:30", now.In(loc).Format("02/01/2006 15:04"))
		assert.Contains(t, htmlBody, "15/06/2024 15:30")
	}

	assert.Contains(t, textBody, "Hola <b>\nGracias")
	assert.Contains(t, textBody, "Nombre: Ana Pérez")
}

func TestRenderContactBodies_MissingPhone(t *testing.T) {
	form := testForm()
	form.Phone = ""

	htmlBody, textBody := renderContactBodies(form, time.Now())
	assert.Contains(t, htmlBody, "No proporcionado")
	assert.Contains(t, textBody, "Teléfono: No proporcionado")
}
