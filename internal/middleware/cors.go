package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the configured cross-origin policy. Preflight requests are
// passed through so the route handlers answer them.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	c := m.cfg.Security.CORS
	return cors.Handler(cors.Options{
		AllowedOrigins:     c.AllowedOrigins,
		AllowedMethods:     c.AllowedMethods,
		AllowedHeaders:     c.AllowedHeaders,
		ExposedHeaders:     []string{"X-Request-ID"},
		MaxAge:             c.MaxAge,
		OptionsPassthrough: true,
	})(next)
}
