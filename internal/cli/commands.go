package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pricenotify/pricenotify/internal/email"
)

func newPriceAlertCommand(newNotifier NotifierFactory) *cobra.Command {
	var req email.PriceAlert

	cmd := &cobra.Command{
		Use:   "price-alert",
		Short: "Send price alert notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := newNotifier(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, n.SendPriceAlert(cmd.Context(), req))
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "Email address of the recipient")
	f.StringVar(&req.ProductName, "product", "", "Name of the product")
	f.Float64Var(&req.CurrentPrice, "current_price", 0, "Current price of the product")
	f.Float64Var(&req.PreviousPrice, "previous_price", 0, "Previous price of the product")
	f.StringVar(&req.ProductURL, "url", "", "URL of the product")
	f.StringVar(&req.ImageURL, "image", "", "URL of the product image (optional)")
	for _, name := range []string{"email", "product", "current_price", "previous_price", "url"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newProjectInquiryCommand(newNotifier NotifierFactory) *cobra.Command {
	var req email.ProjectInquiry

	cmd := &cobra.Command{
		Use:   "project-inquiry",
		Short: "Send project inquiry notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := newNotifier(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, n.SendProjectInquiry(cmd.Context(), req))
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.RecipientEmail, "recipient", "", "Email address of the recipient")
	f.StringVar(&req.SenderName, "name", "", "Name of the sender")
	f.StringVar(&req.SenderEmail, "email", "", "Email address of the sender")
	f.StringVar(&req.Subject, "subject", "", "Subject of the inquiry")
	f.StringVar(&req.Message, "message", "", "Message body of the inquiry")
	for _, name := range []string{"recipient", "name", "email", "subject", "message"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newCustomEmailCommand(newNotifier NotifierFactory) *cobra.Command {
	var (
		req      email.CustomEmail
		htmlFile string
		text     string
	)

	cmd := &cobra.Command{
		Use:   "custom-email",
		Short: "Send a custom HTML email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if htmlFile != "" {
				b, err := os.ReadFile(htmlFile)
				if err != nil {
					return fmt.Errorf("failed to read html file: %w", err)
				}
				req.HTMLContent = string(b)
			}
			if cmd.Flags().Changed("text") {
				req.TextContent = &text
			}

			n, err := newNotifier(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, n.SendCustomEmail(cmd.Context(), req))
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "Email address of the recipient")
	f.StringVar(&req.Subject, "subject", "", "Subject of the email")
	f.StringVar(&req.HTMLContent, "html", "", "HTML body")
	f.StringVar(&htmlFile, "html-file", "", "Path to a file holding the HTML body")
	f.StringVar(&text, "text", "", "Plain text body (optional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsOneRequired("html", "html-file")
	cmd.MarkFlagsMutuallyExclusive("html", "html-file")

	return cmd
}
