package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mgarquitectura/api-gateway/models"
)

func TestSendContactMessage_RejectsInvalidEmail(t *testing.T) {
	mailer := new(mockMailer)

	h := newTestHandler()
	h.Mailer = mailer
	app := newTestApp(h)

	req := jsonRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"first_name": "Ana",
		"last_name":  "Pérez",
		"email":      "not-an-email",
		"subject":    "Proyecto nuevo",
		"message":    "Hola, quiero una cotización.",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["message"], "valid email")
	mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
}

func TestSendContactMessage_RejectsMissingFields(t *testing.T) {
	mailer := new(mockMailer)

	h := newTestHandler()
	h.Mailer = mailer
	app := newTestApp(h)

	req := jsonRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"first_name": "Ana",
		"email":      "ana@example.com",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
}

func TestSendContactMessage_RelaysSubmission(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendContactEmail", mock.Anything, mock.MatchedBy(func(form models.ContactForm) bool {
		return form.FirstName == "Ana" &&
			form.LastName == "Pérez" &&
			form.Email == "ana@example.com" &&
			form.Subject == "Proyecto nuevo"
	})).Return("email-123", nil)

	h := newTestHandler()
	h.Mailer = mailer
	app := newTestApp(h)

	req := jsonRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"first_name": "  Ana ",
		"last_name":  "Pérez",
		"email":      " ana@example.com ",
		"subject":    "Proyecto nuevo",
		"message":    "Hola, quiero una cotización.",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "email-123", body["email_id"])
	assert.Contains(t, body["message"], "¡Mensaje enviado exitosamente!")
	mailer.AssertNumberOfCalls(t, "SendContactEmail", 1)
}

func TestSendContactMessage_ProviderFailure(t *testing.T) {
	mailer := new(mockMailer)
	mailer.On("SendContactEmail", mock.Anything, mock.Anything).
		Return("", errors.New("resend error (status 500): internal"))

	h := newTestHandler()
	h.Mailer = mailer
	app := newTestApp(h)

	req := jsonRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"first_name": "Ana",
		"last_name":  "Pérez",
		"email":      "ana@example.com",
		"subject":    "Proyecto nuevo",
		"message":    "Hola.",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSendContactMessage_NotConfigured(t *testing.T) {
	h := newTestHandler()
	app := newTestApp(h)

	req := jsonRequest(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"first_name": "Ana",
		"last_name":  "Pérez",
		"email":      "ana@example.com",
		"subject":    "Proyecto nuevo",
		"message":    "Hola.",
	})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
