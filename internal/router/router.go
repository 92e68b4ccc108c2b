package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pricenotify/pricenotify/internal/config"
	"github.com/pricenotify/pricenotify/internal/handler"
	"github.com/pricenotify/pricenotify/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", h.Health)

	// Notification routes. OPTIONS is answered by the same handler with an
	// empty 204.
	routes := map[string]http.HandlerFunc{
		"/api/v1/send-price-alert":     h.SendPriceAlert,
		"/api/v1/send-project-inquiry": h.SendProjectInquiry,
		"/api/v1/send-custom-email":    h.SendCustomEmail,
		// Legacy alias
		"/send-notification": h.SendPriceAlert,
	}
	for path, fn := range routes {
		mux.HandleFunc("POST "+path, fn)
		mux.HandleFunc("OPTIONS "+path, fn)
	}

	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.Handler())
	}

	// Apply middleware stack
	var handler http.Handler = mux

	// Metrics (innermost, reads the matched pattern)
	handler = mw.Metrics(handler)

	// Body size limit
	handler = mw.BodyLimit(handler)

	// CORS
	handler = mw.CORS(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
