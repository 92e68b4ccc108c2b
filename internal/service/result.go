package service

import (
	"fmt"
	"strings"

	"github.com/pricenotify/pricenotify/internal/email"
)

// Kind names a notification type
type Kind string

const (
	KindPriceAlert     Kind = "price alert"
	KindProjectInquiry Kind = "project inquiry"
	KindCustomEmail    Kind = "custom email"
)

// Title returns the kind with its first letter capitalized
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Outcome classifies a notification attempt
type Outcome int

const (
	Delivered Outcome = iota
	ValidationFailure
	DeliveryFailure
	UnexpectedFault
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case ValidationFailure:
		return "validation_failure"
	case DeliveryFailure:
		return "delivery_failure"
	case UnexpectedFault:
		return "unexpected_fault"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ValidationError reports a request field that is missing or malformed.
// Field is empty when the request as a whole could not be read.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// MissingField returns the error for an absent required field
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "Missing required field: " + field}
}

// InvalidField returns the error for a field whose value cannot be used
func InvalidField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "Invalid value for field: " + field}
}

// Result is the outcome of a single notification request.
type Result struct {
	Outcome   Outcome
	Kind      Kind
	Recipient string
	// Field is set for ValidationFailure when a specific field was at fault
	Field string
	// Delivery is set for Delivered and DeliveryFailure
	Delivery email.DeliveryResult
	// Err is set for ValidationFailure and UnexpectedFault
	Err error
}

// OK reports whether the notification was delivered
func (r Result) OK() bool {
	return r.Outcome == Delivered
}

// Message returns the human readable summary used in response envelopes
func (r Result) Message() string {
	switch r.Outcome {
	case Delivered:
		return fmt.Sprintf("%s notification sent to %s", r.Kind.Title(), r.Recipient)
	case DeliveryFailure:
		return fmt.Sprintf("Failed to send %s notification", r.Kind)
	case ValidationFailure:
		if r.Err != nil {
			return r.Err.Error()
		}
		return "Invalid request"
	default:
		if r.Err != nil {
			return "Error: " + r.Err.Error()
		}
		return "Error: unexpected failure"
	}
}
