package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/pricenotify/pricenotify/internal/config"
	"github.com/pricenotify/pricenotify/internal/logger"
)

// NewSender creates the Sender selected by cfg.Provider.
func NewSender(ctx context.Context, cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider != "log" && cfg.SenderAddress == "" {
		return nil, ErrMissingSender
	}

	var (
		sender Sender
		err    error
	)
	switch provider {
	case "", "mailjet":
		sender, err = NewMailjetSender(MailjetConfig{
			PublicKey:  cfg.Mailjet.PublicKey,
			PrivateKey: cfg.Mailjet.PrivateKey,
			BaseURL:    cfg.Mailjet.BaseURL,
		})
	case "ses":
		sender, err = NewSESSender(ctx, SESConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		})
	case "resend":
		sender, err = NewResendSender(cfg.Resend.APIKey)
	case "gmail":
		sender, err = NewGmailSender(ctx, GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
			SenderAddress:   cfg.SenderAddress,
		})
	case "log":
		sender = NewLogSender(log)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	// Never hand out a typed nil next to an error
	if err != nil {
		return nil, err
	}
	return sender, nil
}

// IdentityFromConfig extracts the sender identity used by the Builder.
func IdentityFromConfig(cfg config.EmailConfig) Identity {
	return Identity{
		SenderEmail:             cfg.SenderAddress,
		SenderName:              cfg.SenderName,
		CustomSenderName:        cfg.CustomSenderName,
		PriceAlertRecipientName: cfg.PriceAlertRecipientName,
		InquiryRecipientName:    cfg.InquiryRecipientName,
		CustomRecipientName:     cfg.CustomRecipientName,
		SanitizeCustomHTML:      cfg.SanitizeCustomHTML,
	}
}
