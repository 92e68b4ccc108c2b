package handler

import (
	"net/http"

	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/logger"
	"github.com/pricenotify/pricenotify/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	log *logger.Logger
	svc *service.NotificationService

	priceAlert     http.HandlerFunc
	projectInquiry http.HandlerFunc
	customEmail    http.HandlerFunc
}

// New creates a new Handler instance
func New(log *logger.Logger, svc *service.NotificationService) *Handler {
	h := &Handler{
		log: log.WithComponent("handler"),
		svc: svc,
	}

	h.priceAlert = serve(h, endpoint[email.PriceAlert]{
		kind:     service.KindPriceAlert,
		required: []string{"email", "product_name", "current_price", "previous_price", "product_url"},
		decode:   decodePriceAlert,
		send:     svc.SendPriceAlert,
	})
	h.projectInquiry = serve(h, endpoint[email.ProjectInquiry]{
		kind:     service.KindProjectInquiry,
		required: []string{"recipient_email", "sender_name", "sender_email", "subject", "message"},
		decode:   decodeProjectInquiry,
		send:     svc.SendProjectInquiry,
	})
	h.customEmail = serve(h, endpoint[email.CustomEmail]{
		kind:     service.KindCustomEmail,
		required: []string{"email", "subject", "html_content"},
		decode:   decodeCustomEmail,
		send:     svc.SendCustomEmail,
	})

	return h
}

// SendPriceAlert handles POST /api/v1/send-price-alert and the legacy
// /send-notification route
func (h *Handler) SendPriceAlert(w http.ResponseWriter, r *http.Request) {
	h.priceAlert(w, r)
}

// SendProjectInquiry handles POST /api/v1/send-project-inquiry
func (h *Handler) SendProjectInquiry(w http.ResponseWriter, r *http.Request) {
	h.projectInquiry(w, r)
}

// SendCustomEmail handles POST /api/v1/send-custom-email
func (h *Handler) SendCustomEmail(w http.ResponseWriter, r *http.Request) {
	h.customEmail(w, r)
}
