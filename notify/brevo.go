// Package notify relays contact form submissions through the Brevo
// transactional email API. One submission means exactly one outbound
// send; there is no retry and no idempotency key, so duplicate
// submissions produce duplicate emails.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/databricks/databricks-sdk-go/httpclient"
)

const defaultAPI = "https://api.brevo.com"

var ErrNotConfigured = errors.New("brevo api key or contact email not configured")

type Config struct {
	// APIKey authenticates against Brevo via the api-key header.
	APIKey string

	// ContactEmail receives every submission.
	ContactEmail string

	// BaseURL overrides https://api.brevo.com in tests.
	BaseURL string

	HTTPTimeout time.Duration
	Transport   http.RoundTripper
}

type Mailer struct {
	api *httpclient.ApiClient
	cfg *Config
}

func NewMailer(cfg *Config) *Mailer {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Mailer{
		api: httpclient.NewApiClient(httpclient.ClientConfig{
			Visitors: []httpclient.RequestVisitor{func(r *http.Request) error {
				r.Header.Set("api-key", cfg.APIKey)
				r.Header.Set("Accept", "application/json")
				return nil
			}},
			HTTPTimeout: cfg.HTTPTimeout,
			// one submission, one send attempt: a transient provider
			// failure surfaces to the caller instead of re-sending
			RetryTimeout: time.Millisecond,
			Transport:    cfg.Transport,
		}),
		cfg: cfg,
	}
}

// Configured reports whether the relay can send at all. The HTTP layer
// maps an unconfigured relay to a 500, never a silent drop.
func (m *Mailer) Configured() bool {
	return m.cfg.APIKey != "" && m.cfg.ContactEmail != ""
}

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s Submission) Valid() bool {
	return s.Name != "" && s.Email != "" && s.Message != ""
}

type contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type smtpEmail struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	TextContent string    `json:"textContent"`
	HTMLContent string    `json:"htmlContent"`
}

func (m *Mailer) Send(ctx context.Context, sub Submission) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	baseURL := m.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAPI
	}
	return m.api.Do(ctx, "POST", baseURL+"/v3/smtp/email",
		httpclient.WithRequestData(smtpEmail{
			Sender:      contact{Name: sub.Name, Email: sub.Email},
			To:          []contact{{Email: m.cfg.ContactEmail}},
			Subject:     fmt.Sprintf("New Contact Form Submission from %s", sub.Name),
			TextContent: sub.Message,
			HTMLContent: renderHTML(sub),
		}))
}

func renderHTML(sub Submission) string {
	return fmt.Sprintf(`<html>
  <body>
    <h1>New Message from %s</h1>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Message:</strong></p>
    <p>%s</p>
  </body>
</html>`,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email),
		html.EscapeString(sub.Message))
}
