package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/resend/resend-go/v3"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a new ResendSender.
func NewResendSender(apiKey string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend: %w", ErrMissingCredentials)
	}
	return &ResendSender{client: resend.NewClient(apiKey)}, nil
}

// Name implements Sender.
func (s *ResendSender) Name() string { return "resend" }

// Deliver implements Sender.
func (s *ResendSender) Deliver(ctx context.Context, msg Message) DeliveryResult {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = addr.String()
	}

	req := &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      to,
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
	}
	if msg.ReplyTo != nil {
		req.ReplyTo = msg.ReplyTo.String()
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		// resend-go folds the API error body into err; the status is not exposed
		return transportFailure(fmt.Errorf("resend: %w", err))
	}

	raw, _ := json.Marshal(map[string]string{"id": sent.Id})
	return DeliveryResult{
		Success:     true,
		StatusCode:  http.StatusOK,
		RawResponse: raw,
	}
}
