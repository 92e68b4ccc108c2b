package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pricenotify/pricenotify/internal/service"
)

// Envelope is the response body of every notification route
type Envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

// writeResult maps a notification Result onto an HTTP status and Envelope
func (h *Handler) writeResult(w http.ResponseWriter, res service.Result) {
	msg := res.Message()

	switch res.Outcome {
	case service.Delivered:
		writeJSON(w, http.StatusOK, Envelope{Success: true, Message: msg, Response: res.Delivery.RawResponse})
	case service.DeliveryFailure:
		writeJSON(w, http.StatusInternalServerError, Envelope{Message: msg, Response: res.Delivery.RawResponse})
	case service.ValidationFailure:
		status := http.StatusBadRequest
		if errors.Is(res.Err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, Envelope{Message: msg, Error: msg})
	default:
		h.log.Error().Err(res.Err).Str("kind", string(res.Kind)).Msg("notification failed unexpectedly")
		writeJSON(w, http.StatusInternalServerError, Envelope{Message: msg})
	}
}
