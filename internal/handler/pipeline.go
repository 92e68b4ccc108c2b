package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pricenotify/pricenotify/internal/service"
)

var (
	errInvalidJSON  = &service.ValidationError{Reason: "Invalid JSON body"}
	errBodyTooLarge = &service.ValidationError{Reason: "Request body too large"}
)

// endpoint describes one notification route: which fields must be present,
// how to turn them into a typed request, and which service call delivers it.
type endpoint[T any] struct {
	kind     service.Kind
	required []string
	decode   func(fields) (T, *service.ValidationError)
	send     func(context.Context, T) service.Result
}

// serve runs the shared validate, build, deliver and normalize pipeline for ep.
func serve[T any](h *Handler, ep endpoint[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Preflight never reaches validation or delivery
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		f, verr := readFields(r)
		if verr == nil {
			verr = f.require(ep.required...)
		}
		if verr != nil {
			h.writeResult(w, h.svc.Reject(ep.kind, verr))
			return
		}

		req, verr := ep.decode(f)
		if verr != nil {
			h.writeResult(w, h.svc.Reject(ep.kind, verr))
			return
		}

		h.writeResult(w, ep.send(r.Context(), req))
	}
}

// readFields decodes the request body into a JSON object.
func readFields(r *http.Request) (fields, *service.ValidationError) {
	if r.Body == nil {
		return nil, errInvalidJSON
	}
	defer r.Body.Close()

	var f fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errBodyTooLarge
		}
		return nil, errInvalidJSON
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}
