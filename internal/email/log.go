package email

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pricenotify/pricenotify/internal/logger"
)

// LogSender is a development Sender that writes messages to the log and
// reports them as delivered.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("log_sender")}
}

// Name implements Sender.
func (s *LogSender) Name() string { return "log" }

// Deliver implements Sender.
func (s *LogSender) Deliver(_ context.Context, msg Message) DeliveryResult {
	id := uuid.New().String()
	s.log.Info().
		Str("message_id", id).
		Str("from", msg.From.String()).
		Str("to", logger.RedactEmail(msg.Recipient())).
		Str("subject", msg.Subject).
		Str("text", msg.TextBody).
		Msg("email not sent, log provider")

	raw, _ := json.Marshal(map[string]string{"id": id, "status": "logged"})
	return DeliveryResult{
		Success:     true,
		StatusCode:  http.StatusOK,
		RawResponse: raw,
	}
}
