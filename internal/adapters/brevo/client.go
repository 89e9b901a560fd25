// Package brevo delivers transactional email through the Brevo HTTP API.
package brevo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/postroom/postroom/internal/core"
)

// Config captures the subset of Brevo API behaviour we need.
type Config struct {
	APIKey      string
	BaseURL     string
	SenderName  string
	SenderEmail string
	Timeout     time.Duration
	Client      *http.Client
}

// Client sends single transactional emails. Callers should pass a validated
// config.
type Client struct {
	apiKey      string
	baseURL     string
	senderName  string
	senderEmail string
	client      *http.Client
}

// NewClient builds a Brevo API client.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("brevo api key is required")
	}

	senderEmail := strings.TrimSpace(cfg.SenderEmail)
	if senderEmail == "" {
		return nil, errors.New("sender email is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.brevo.com/v3"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:      apiKey,
		baseURL:     baseURL,
		senderName:  strings.TrimSpace(cfg.SenderName),
		senderEmail: senderEmail,
		client:      hc,
	}, nil
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type attachmentPayload struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type sendPayload struct {
	Sender      party               `json:"sender"`
	To          []party             `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachment  []attachmentPayload `json:"attachment,omitempty"`
}

// Send posts one transactional email. Any non-2xx response surfaces as an
// error carrying the API's status and body.
func (c *Client) Send(ctx context.Context, req core.SendRequest) error {
	payload := sendPayload{
		Sender:      party{Name: c.senderName, Email: c.senderEmail},
		To:          []party{{Email: req.To}},
		Subject:     req.Message.Subject,
		HTMLContent: htmlBody(req.Message.Body),
	}
	if req.Attachment != nil && len(req.Attachment.Content) > 0 {
		payload.Attachment = []attachmentPayload{{
			Content: base64.StdEncoding.EncodeToString(req.Attachment.Content),
			Name:    req.Attachment.Name,
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode brevo payload: %w", err)
	}

	return c.post(ctx, body)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create brevo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	return drainSuccess(resp)
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read brevo error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read brevo error response: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return fmt.Errorf("brevo api %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}

func drainSuccess(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain brevo response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain brevo response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

// htmlBody converts plain-text newlines to HTML line breaks; composed bodies
// are plain text but Brevo renders htmlContent as HTML.
func htmlBody(body string) string {
	return strings.ReplaceAll(body, "\n", "<br>")
}
