package email

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

// MailjetConfig holds the configuration for the Mailjet sender.
type MailjetConfig struct {
	PublicKey  string
	PrivateKey string
	// BaseURL defaults to https://api.mailjet.com
	BaseURL string
	// HTTPClient defaults to a client with a 30s timeout
	HTTPClient *http.Client
}

// MailjetSender implements Sender using the Mailjet Send API v3.1.
type MailjetSender struct {
	publicKey  string
	privateKey string
	endpoint   string
	client     *http.Client
}

// NewMailjetSender creates a new MailjetSender.
func NewMailjetSender(cfg MailjetConfig) (*MailjetSender, error) {
	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("mailjet: %w", ErrMissingCredentials)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.mailjet.com"
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	return &MailjetSender{
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		endpoint:   baseURL + "/v3.1/send",
		client:     client,
	}, nil
}

// Name implements Sender.
func (s *MailjetSender) Name() string { return "mailjet" }

type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type mailjetMessage struct {
	From     mailjetAddress   `json:"From"`
	To       []mailjetAddress `json:"To"`
	ReplyTo  *mailjetAddress  `json:"ReplyTo,omitempty"`
	Subject  string           `json:"Subject"`
	TextPart string           `json:"TextPart,omitempty"`
	HTMLPart string           `json:"HTMLPart,omitempty"`
}

type mailjetRequest struct {
	Messages []mailjetMessage `json:"Messages"`
}

func newMailjetRequest(msg Message) mailjetRequest {
	m := mailjetMessage{
		From:     mailjetAddress(msg.From),
		To:       make([]mailjetAddress, len(msg.To)),
		Subject:  msg.Subject,
		TextPart: msg.TextBody,
		HTMLPart: msg.HTMLBody,
	}
	for i, to := range msg.To {
		m.To[i] = mailjetAddress(to)
	}
	if msg.ReplyTo != nil {
		replyTo := mailjetAddress(*msg.ReplyTo)
		m.ReplyTo = &replyTo
	}
	return mailjetRequest{Messages: []mailjetMessage{m}}
}

// Deliver implements Sender.
func (s *MailjetSender) Deliver(ctx context.Context, msg Message) DeliveryResult {
	payload, err := json.Marshal(newMailjetRequest(msg))
	if err != nil {
		return transportFailure(fmt.Errorf("mailjet: failed to encode message: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return transportFailure(fmt.Errorf("mailjet: failed to build request: %w", err))
	}
	req.SetBasicAuth(s.publicKey, s.privateKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return transportFailure(fmt.Errorf("mailjet: request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(fmt.Errorf("mailjet: failed to read response: %w", err))
	}

	return DeliveryResult{
		Success:     isSuccess(resp.StatusCode),
		StatusCode:  resp.StatusCode,
		RawResponse: rawPayload(body),
	}
}
