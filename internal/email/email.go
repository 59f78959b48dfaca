// Package email relays form submissions through a hosted transactional
// email API. A submission is a fixed service id + template id + a field
// map; nothing is persisted and nothing is retried.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultAPIURL = "https://api.emailjs.com/api/v1.0/email/send"

var ErrSendFailed = errors.New("email send failed")

// Template addresses one email template at the hosted service.
type Template struct {
	ServiceID  string
	TemplateID string
}

// Sender relays field maps to the email service.
type Sender interface {
	Send(ctx context.Context, tpl Template, fields map[string]string) error
}

// Client is an HTTP client for the email API.
type Client struct {
	apiURL    string
	userID    string // public key identifying the account
	http      *http.Client
	Contact   Template
	Emergency Template
}

// NewClient builds a Client from the EMAIL_* environment variables.
func NewClient() *Client {
	apiURL := os.Getenv("EMAIL_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		userID: os.Getenv("EMAIL_USER_ID"),
		http:   &http.Client{Timeout: 10 * time.Second},
		Contact: Template{
			ServiceID:  os.Getenv("EMAIL_CONTACT_SERVICE_ID"),
			TemplateID: os.Getenv("EMAIL_CONTACT_TEMPLATE_ID"),
		},
		Emergency: Template{
			ServiceID:  os.Getenv("EMAIL_EMERGENCY_SERVICE_ID"),
			TemplateID: os.Getenv("EMAIL_EMERGENCY_TEMPLATE_ID"),
		},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts one submission to the email API. The submission_date field is
// stamped here so templates can show when the form was sent.
func (c *Client) Send(ctx context.Context, tpl Template, fields map[string]string) error {
	params := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		params[k] = v
	}
	params["submission_date"] = time.Now().Format(time.RFC1123)

	payload, err := json.Marshal(sendRequest{
		ServiceID:      tpl.ServiceID,
		TemplateID:     tpl.TemplateID,
		UserID:         c.userID,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, string(body))
	}
	return nil
}
