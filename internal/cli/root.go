// Package cli implements the notify command line tool.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pricenotify/pricenotify/internal/config"
	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/logger"
	"github.com/pricenotify/pricenotify/internal/service"
)

// Notifier sends notifications. *service.NotificationService implements it.
type Notifier interface {
	SendPriceAlert(ctx context.Context, req email.PriceAlert) service.Result
	SendProjectInquiry(ctx context.Context, req email.ProjectInquiry) service.Result
	SendCustomEmail(ctx context.Context, req email.CustomEmail) service.Result
}

// NotifierFactory builds the Notifier once a subcommand actually runs, so
// that help output never needs configuration.
type NotifierFactory func(ctx context.Context) (Notifier, error)

// NewRootCommand creates the notify command tree.
func NewRootCommand(newNotifier NotifierFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "notify",
		Short:         "Send price alerts, project inquiries and custom emails",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPriceAlertCommand(newNotifier),
		newProjectInquiryCommand(newNotifier),
		newCustomEmailCommand(newNotifier),
	)

	return root
}

// FromConfig is the NotifierFactory used by the notify binary. Logs go to
// stderr so they do not mix with command output.
func FromConfig(ctx context.Context) (Notifier, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, "console")

	sender, err := email.NewSender(ctx, cfg.Email, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create email sender: %w", err)
	}

	builder := email.NewBuilder(email.IdentityFromConfig(cfg.Email))
	return service.NewNotificationService(builder, sender, cfg.Email.Timeout, log), nil
}

// report prints the outcome of res and returns a non-nil error unless the
// notification was delivered.
func report(cmd *cobra.Command, res service.Result) error {
	out := cmd.OutOrStdout()

	switch res.Outcome {
	case service.Delivered:
		fmt.Fprintf(out, "✅ %s notification sent successfully to %s\n", res.Kind.Title(), res.Recipient)
		return nil
	case service.DeliveryFailure:
		fmt.Fprintf(out, "❌ Failed to send %s notification. Status code: %d\n", res.Kind, res.Delivery.StatusCode)
		fmt.Fprintf(out, "Error details: %s\n", res.Delivery.RawResponse)
	default:
		fmt.Fprintf(out, "❌ %s\n", res.Message())
	}

	return fmt.Errorf("%s notification was not sent", res.Kind)
}
