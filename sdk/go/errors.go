package pricenotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnhealthy is returned by Health when the server does not report "ok".
var ErrUnhealthy = errors.New("pricenotify: server unhealthy")

// APIError represents an error response from the pricenotify API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	// Provider is the email provider's raw response when delivery failed
	Provider json.RawMessage `json:"response,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pricenotify: API error %d: %s", e.StatusCode, e.Message)
}

// IsValidation reports whether the request was rejected before delivery.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusRequestEntityTooLarge
}

func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
	}
	return apiErr
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
