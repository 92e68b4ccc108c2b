package pricenotify

import "encoding/json"

// PriceAlertRequest is the body of POST /api/v1/send-price-alert.
type PriceAlertRequest struct {
	Email         string  `json:"email"`
	ProductName   string  `json:"product_name"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousPrice float64 `json:"previous_price"`
	ProductURL    string  `json:"product_url"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// ProjectInquiryRequest is the body of POST /api/v1/send-project-inquiry.
type ProjectInquiryRequest struct {
	RecipientEmail string `json:"recipient_email"`
	SenderName     string `json:"sender_name"`
	SenderEmail    string `json:"sender_email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
}

// CustomEmailRequest is the body of POST /api/v1/send-custom-email.
// A nil TextContent lets the server use its fallback text.
type CustomEmailRequest struct {
	Email       string  `json:"email"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"html_content"`
	TextContent *string `json:"text_content,omitempty"`
}

// Response is the envelope returned for a delivered notification.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Provider is the email provider's raw response
	Provider json.RawMessage `json:"response,omitempty"`
}
