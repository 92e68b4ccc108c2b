package email

import (
	"fmt"
	"html"
	"math"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultCustomText is the plain-text body used when a custom email has none.
const DefaultCustomText = "This email contains HTML content. Please use an email client that supports HTML to view it properly."

const (
	dropColor     = "#28a745"
	increaseColor = "#dc3545"
)

// Identity is the sender configuration shared by every built message.
// Empty names fall back to the defaults below.
type Identity struct {
	SenderEmail             string
	SenderName              string
	CustomSenderName        string
	PriceAlertRecipientName string
	InquiryRecipientName    string
	CustomRecipientName     string
	// SanitizeCustomHTML runs custom email bodies through a user-content
	// policy instead of passing them through verbatim.
	SanitizeCustomHTML bool
}

// PriceAlert is the input for a price change notification
type PriceAlert struct {
	Email         string
	ProductName   string
	CurrentPrice  float64
	PreviousPrice float64
	ProductURL    string
	ImageURL      string
}

// ProjectInquiry is the input for a project inquiry notification
type ProjectInquiry struct {
	RecipientEmail string
	SenderName     string
	SenderEmail    string
	Subject        string
	Message        string
}

// CustomEmail is the input for a caller-authored HTML email
type CustomEmail struct {
	Email       string
	Subject     string
	HTMLContent string
	// TextContent is optional; nil selects DefaultCustomText
	TextContent *string
}

// Builder turns notification inputs into Messages. It holds no mutable state
// and is safe for concurrent use.
type Builder struct {
	identity Identity
	policy   *bluemonday.Policy // nil when custom HTML passes through
}

// NewBuilder creates a Builder for the given sender identity
func NewBuilder(identity Identity) *Builder {
	if identity.SenderName == "" {
		identity.SenderName = "Price Tracker"
	}
	if identity.CustomSenderName == "" {
		identity.CustomSenderName = "Birthday Buddy"
	}
	if identity.PriceAlertRecipientName == "" {
		identity.PriceAlertRecipientName = "Valued Customer"
	}
	if identity.InquiryRecipientName == "" {
		identity.InquiryRecipientName = "Project Team"
	}
	if identity.CustomRecipientName == "" {
		identity.CustomRecipientName = "Recipient"
	}
	b := &Builder{identity: identity}
	if identity.SanitizeCustomHTML {
		b.policy = bluemonday.UGCPolicy()
	}
	return b
}

// PriceChange describes the movement between two prices.
type PriceChange struct {
	Diff    float64 // previous - current
	Percent float64 // Diff relative to previous, 0 when previous <= 0
	Drop    bool
}

// NewPriceChange compares the current price against the previous one.
// Equal prices count as an increase of zero.
func NewPriceChange(current, previous float64) PriceChange {
	diff := previous - current
	var percent float64
	if previous > 0 {
		percent = diff / previous * 100
	}
	return PriceChange{
		Diff:    diff,
		Percent: percent,
		Drop:    current < previous,
	}
}

// Label returns the headline shown in the alert
func (c PriceChange) Label() string {
	if c.Drop {
		return fmt.Sprintf("Price Drop Alert: Save $%.2f (%.1f%%)", c.Diff, c.Percent)
	}
	return fmt.Sprintf("Price Increase Alert: $%.2f (%.1f%%)", math.Abs(c.Diff), math.Abs(c.Percent))
}

// Color returns the accent color for the headline
func (c PriceChange) Color() string {
	if c.Drop {
		return dropColor
	}
	return increaseColor
}

// PriceAlert builds the price change notification.
func (b *Builder) PriceAlert(req PriceAlert) Message {
	change := NewPriceChange(req.CurrentPrice, req.PreviousPrice)
	label := change.Label()

	return Message{
		From:    Address{Email: b.identity.SenderEmail, Name: b.identity.SenderName},
		To:      []Address{{Email: req.Email, Name: b.identity.PriceAlertRecipientName}},
		Subject: "Price Alert: " + req.ProductName,
		TextBody: fmt.Sprintf("%s for %s. Current price: $%.2f, Previous price: $%.2f. View at: %s",
			label, req.ProductName, req.CurrentPrice, req.PreviousPrice, req.ProductURL),
		HTMLBody: b.priceAlertHTML(req, change),
	}
}

func (b *Builder) priceAlertHTML(req PriceAlert, change PriceChange) string {
	product := html.EscapeString(req.ProductName)

	var image string
	if req.ImageURL != "" {
		image = fmt.Sprintf(`<img src="%s" alt="%s" style="max-width:150px;max-height:150px;margin-right:20px;" />`,
			html.EscapeString(req.ImageURL), product)
	}

	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;border:1px solid #eee;border-radius:5px;">
  <h2 style="color:%s;">%s</h2>
  <div style="display:flex;margin-bottom:20px;">
    %s
    <div>
      <h3>%s</h3>
      <p>Current Price: <strong>$%.2f</strong></p>
      <p>Previous Price: <s>$%.2f</s></p>
    </div>
  </div>
  <a href="%s" style="display:inline-block;background-color:#007bff;color:white;padding:10px 15px;text-decoration:none;border-radius:4px;">View Product</a>
</div>`, change.Color(), change.Label(), image, product, req.CurrentPrice, req.PreviousPrice, html.EscapeString(req.ProductURL))
}

// ProjectInquiry builds the inquiry notification. The inquirer is both sender
// and reply-to so the team can answer directly.
func (b *Builder) ProjectInquiry(req ProjectInquiry) Message {
	inquirer := Address{Email: req.SenderEmail, Name: req.SenderName}

	return Message{
		From:     inquirer,
		To:       []Address{{Email: req.RecipientEmail, Name: b.identity.InquiryRecipientName}},
		ReplyTo:  &inquirer,
		Subject:  "Project Inquiry: " + req.Subject,
		TextBody: fmt.Sprintf("New inquiry from %s (%s)\n\nSubject: %s\n\nMessage:\n%s", req.SenderName, req.SenderEmail, req.Subject, req.Message),
		HTMLBody: fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;border:1px solid #eee;border-radius:5px;">
  <h2 style="color:#007bff;">New Project Inquiry</h2>
  <div style="margin-bottom:20px;padding:15px;background-color:#f8f9fa;border-radius:5px;">
    <p><strong>From:</strong> %s (%s)</p>
    <p><strong>Subject:</strong> %s</p>
    <div style="margin-top:15px;padding-top:15px;border-top:1px solid #ddd;">
      <p><strong>Message:</strong></p>
      <p style="white-space:pre-line;">%s</p>
    </div>
  </div>
  <div style="margin-top:20px;padding-top:20px;border-top:1px solid #eee;font-size:0.9em;color:#6c757d;">
    <p>To reply to this inquiry, simply respond directly to this email.</p>
  </div>
</div>`,
			html.EscapeString(req.SenderName),
			html.EscapeString(req.SenderEmail),
			html.EscapeString(req.Subject),
			html.EscapeString(req.Message)),
	}
}

// CustomEmail wraps caller-authored HTML. Content is passed through as given
// unless the builder sanitizes custom HTML.
func (b *Builder) CustomEmail(req CustomEmail) Message {
	text := DefaultCustomText
	if req.TextContent != nil {
		text = *req.TextContent
	}

	body := req.HTMLContent
	if b.policy != nil {
		body = b.policy.Sanitize(body)
	}

	return Message{
		From:     Address{Email: b.identity.SenderEmail, Name: b.identity.CustomSenderName},
		To:       []Address{{Email: req.Email, Name: b.identity.CustomRecipientName}},
		Subject:  req.Subject,
		TextBody: text,
		HTMLBody: body,
	}
}
