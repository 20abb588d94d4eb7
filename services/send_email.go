package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mgarquitectura/api-gateway/models"
)

const resendBaseURL = "https://api.resend.com"

// resendEmailRequest represents the request payload for the Resend API.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// resendEmailResponse represents the response from the Resend API.
type resendEmailResponse struct {
	ID string `json:"id"`
}

// resendErrorResponse represents an error response from the Resend API.
type resendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer relays contact-form submissions to the firm's inbox through the
// Resend API. Nothing is persisted and no retry is made: one attempt either
// succeeds or the enclosing form submission fails.
type Mailer struct {
	log     *logrus.Logger
	client  *http.Client
	baseURL string
	apiKey  string
	from    string
	to      string
}

func NewMailer(log *logrus.Logger, apiKey, from, to string) *Mailer {
	return &Mailer{
		log:     log,
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: resendBaseURL,
		apiKey:  apiKey,
		from:    from,
		to:      to,
	}
}

// SendContactEmail renders the visitor's submission as HTML and plain text and
// dispatches it with the visitor's address as reply-to. It returns the
// provider's message id.
func (m *Mailer) SendContactEmail(ctx context.Context, form models.ContactForm) (string, error) {
	htmlBody, textBody := renderContactBodies(form, time.Now())

	payload := resendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: "Consulta Web: " + form.Subject,
		Html:    htmlBody,
		Text:    textBody,
		ReplyTo: form.Email,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("creating resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request to resend: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading resend response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp resendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return "", fmt.Errorf("resend error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return "", fmt.Errorf("resend error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResp resendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResp); err != nil {
		m.log.Warnf("Could not parse resend response, but email was sent: %v", err)
		return "", nil
	}

	m.log.Infof("Contact email sent via resend: %s", emailResp.ID)
	return emailResp.ID, nil
}

// renderContactBodies builds the HTML and plain-text message bodies. Field
// values are HTML-escaped, message newlines become <br> in the HTML variant,
// and the timestamp uses the firm's local time zone.
func renderContactBodies(form models.ContactForm, now time.Time) (string, string) {
	phone := form.Phone
	if phone == "" {
		phone = "No proporcionado"
	}

	loc, err := time.LoadLocation("America/Montevideo")
	if err != nil {
		loc = time.UTC
	}
	stamp := now.In(loc).Format("02/01/2006 15:04")

	escapedMessage := strings.ReplaceAll(html.EscapeString(form.Message), "\n", "<br>")

	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="border-bottom: 2px solid #000; padding-bottom: 10px;">Nueva Consulta desde MG Arquitectura</h2>
  <h3>Datos del Cliente:</h3>
  <p><strong>Nombre:</strong> %s %s</p>
  <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
  <p><strong>Teléfono:</strong> %s</p>
  <p><strong>Asunto:</strong> %s</p>
  <h3>Mensaje:</h3>
  <div style="background-color: #f5f5f5; padding: 15px; border-left: 4px solid #000;">%s</div>
  <p style="margin-top: 30px; color: #666; font-size: 12px;">Este mensaje fue enviado desde el formulario de contacto de mgarquitecturauy.com<br>Fecha: %s</p>
</div>`,
		html.EscapeString(form.FirstName), html.EscapeString(form.LastName),
		html.EscapeString(form.Email), html.EscapeString(form.Email),
		html.EscapeString(phone),
		html.EscapeString(form.Subject),
		escapedMessage,
		stamp,
	)

	textBody := fmt.Sprintf(`Nueva Consulta desde MG Arquitectura

DATOS DEL CLIENTE:
Nombre: %s %s
Email: %s
Teléfono: %s
Asunto: %s

MENSAJE:
%s

---
Este mensaje fue enviado desde el formulario de contacto de mgarquitecturauy.com
Fecha: %s
`, form.FirstName, form.LastName, form.Email, phone, form.Subject, form.Message, stamp)

	return htmlBody, textBody
}
