package pricenotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the pricenotify client.
type Config struct {
	// BaseURL is the root URL of the pricenotify server.
	// Example: "https://notify.example.com". A trailing "/api/v1" is removed.
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 35s timeout is used, which outlasts the
	// server's default provider timeout.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 35 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/api/v1")
}

// Client calls the pricenotify HTTP API. It is safe for concurrent use.
type Client struct {
	cfg Config
}

// NewClient creates a new pricenotify client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// SendPriceAlert asks the server to email a price change alert.
func (c *Client) SendPriceAlert(ctx context.Context, req PriceAlertRequest) (*Response, error) {
	return c.post(ctx, "/api/v1/send-price-alert", req)
}

// SendProjectInquiry forwards a project inquiry to req.RecipientEmail.
func (c *Client) SendProjectInquiry(ctx context.Context, req ProjectInquiryRequest) (*Response, error) {
	return c.post(ctx, "/api/v1/send-project-inquiry", req)
}

// SendCustomEmail sends caller-authored HTML to req.Email.
func (c *Client) SendCustomEmail(ctx context.Context, req CustomEmailRequest) (*Response, error) {
	return c.post(ctx, "/api/v1/send-custom-email", req)
}

// Health returns nil when the server reports status "ok".
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("pricenotify: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("pricenotify: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("pricenotify: failed to parse health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, health.Status)
	}
	return nil
}

// post sends a POST request to the pricenotify API. Statuses of 400 and above
// become an *APIError; any other reply must carry a JSON envelope, otherwise a
// parse error is returned.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pricenotify: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pricenotify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricenotify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pricenotify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("pricenotify: failed to parse response: %w", err)
	}
	return &out, nil
}
