package email

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// StatusTransportFailure is reported when the provider could not be reached
// or did not answer in time.
const StatusTransportFailure = http.StatusBadGateway

// Sender is the interface that all email providers must implement.
// Deliver attempts delivery exactly once and reports the outcome in the
// returned DeliveryResult instead of an error.
type Sender interface {
	// Name identifies the provider in logs and metrics
	Name() string
	// Deliver sends the message to its recipients.
	Deliver(ctx context.Context, msg Message) DeliveryResult
}

// Address is an email address with an optional display name
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// String formats the address as "Name <email>" when a name is set
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Message represents an email message to be sent.
type Message struct {
	From     Address
	To       []Address
	ReplyTo  *Address
	Subject  string
	TextBody string // plain-text fallback body
	HTMLBody string
}

// Recipient returns the first recipient's address
func (m Message) Recipient() string {
	if len(m.To) == 0 {
		return ""
	}
	return m.To[0].Email
}

// DeliveryResult is the provider's answer to a single delivery attempt.
type DeliveryResult struct {
	Success     bool            `json:"success"`
	StatusCode  int             `json:"status_code"`
	RawResponse json.RawMessage `json:"raw_response,omitempty"`
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// transportFailure reports an error that happened before the provider
// produced a response.
func transportFailure(err error) DeliveryResult {
	return DeliveryResult{
		Success:     false,
		StatusCode:  StatusTransportFailure,
		RawResponse: errorPayload(err.Error()),
	}
}

func errorPayload(message string) json.RawMessage {
	b, _ := json.Marshal(map[string]string{"error": message})
	return b
}

// rawPayload keeps a JSON body verbatim and wraps anything else as a JSON string
func rawPayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	b, _ := json.Marshal(string(body))
	return b
}
