package email

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GmailConfig holds the configuration for the Gmail email sender.
type GmailConfig struct {
	// CredentialsJSON is the service account credentials JSON with
	// domain-wide delegation.
	CredentialsJSON string
	// ClientID, ClientSecret and RefreshToken are the OAuth2 alternative for
	// personal mailboxes.
	ClientID     string
	ClientSecret string
	RefreshToken string
	// SenderAddress is the mailbox the messages are sent from.
	SenderAddress string
}

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service *gmail.Service
}

// NewGmailSender creates a new GmailSender. A service account JSON takes
// precedence over OAuth2 client credentials.
func NewGmailSender(ctx context.Context, cfg GmailConfig) (*GmailSender, error) {
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("gmail: %w", ErrMissingSender)
	}

	var client *http.Client
	switch {
	case cfg.CredentialsJSON != "":
		jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope)
		if err != nil {
			return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
		}
		// Impersonate the sender mailbox
		jwtConfig.Subject = cfg.SenderAddress
		client = jwtConfig.Client(ctx)
	case cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.RefreshToken != "":
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		}
		client = oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	default:
		return nil, fmt.Errorf("gmail: %w", ErrMissingCredentials)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{service: svc}, nil
}

// Name implements Sender.
func (g *GmailSender) Name() string { return "gmail" }

// Deliver implements Sender.
func (g *GmailSender) Deliver(ctx context.Context, msg Message) DeliveryResult {
	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(buildMIME(msg))),
	}

	sent, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return DeliveryResult{
				Success:     false,
				StatusCode:  apiErr.Code,
				RawResponse: rawPayload([]byte(apiErr.Body)),
			}
		}
		return transportFailure(fmt.Errorf("gmail: failed to send email: %w", err))
	}

	raw, _ := json.Marshal(map[string]string{"id": sent.Id, "threadId": sent.ThreadId})
	return DeliveryResult{
		Success:     true,
		StatusCode:  http.StatusOK,
		RawResponse: raw,
	}
}

// buildMIME renders msg as an RFC 5322 message with a multipart/alternative
// body when both parts are present.
func buildMIME(msg Message) string {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = formatHeaderAddress(addr)
	}

	headers := []string{
		"From: " + formatHeaderAddress(msg.From),
		"To: " + strings.Join(to, ", "),
	}
	if msg.ReplyTo != nil {
		headers = append(headers, "Reply-To: "+formatHeaderAddress(*msg.ReplyTo))
	}
	headers = append(headers,
		"Subject: "+mime.QEncoding.Encode("utf-8", msg.Subject),
		"MIME-Version: 1.0",
	)

	var lines []string
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := "boundary_pricenotify_email"
		lines = append(headers,
			"Content-Type: multipart/alternative; boundary="+boundary,
			"",
			"--"+boundary,
			"Content-Type: text/plain; charset=UTF-8",
			"Content-Transfer-Encoding: 8bit",
			"",
			msg.TextBody,
			"",
			"--"+boundary,
			"Content-Type: text/html; charset=UTF-8",
			"Content-Transfer-Encoding: 8bit",
			"",
			msg.HTMLBody,
			"",
			"--"+boundary+"--",
		)
	case msg.HTMLBody != "":
		lines = append(headers,
			"Content-Type: text/html; charset=UTF-8",
			"",
			msg.HTMLBody,
		)
	default:
		lines = append(headers,
			"Content-Type: text/plain; charset=UTF-8",
			"",
			msg.TextBody,
		)
	}

	return strings.Join(lines, "\r\n")
}

func formatHeaderAddress(a Address) string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", a.Name), a.Email)
}
