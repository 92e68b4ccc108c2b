package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/logger"
)

// NotificationService builds notification emails and hands them to a Sender.
// It is safe for concurrent use.
type NotificationService struct {
	builder *email.Builder
	sender  email.Sender
	timeout time.Duration
	log     *logger.Logger
}

// NewNotificationService creates a new NotificationService. A zero timeout
// leaves provider calls bounded only by ctx.
func NewNotificationService(builder *email.Builder, sender email.Sender, timeout time.Duration, log *logger.Logger) *NotificationService {
	return &NotificationService{
		builder: builder,
		sender:  sender,
		timeout: timeout,
		log:     log.WithComponent("notification"),
	}
}

// Provider returns the name of the configured delivery provider.
func (s *NotificationService) Provider() string {
	return s.sender.Name()
}

// SendPriceAlert notifies req.Email about a price change.
func (s *NotificationService) SendPriceAlert(ctx context.Context, req email.PriceAlert) Result {
	return s.dispatch(ctx, KindPriceAlert, req.Email, func() email.Message {
		return s.builder.PriceAlert(req)
	})
}

// SendProjectInquiry forwards an inquiry to req.RecipientEmail.
func (s *NotificationService) SendProjectInquiry(ctx context.Context, req email.ProjectInquiry) Result {
	return s.dispatch(ctx, KindProjectInquiry, req.RecipientEmail, func() email.Message {
		return s.builder.ProjectInquiry(req)
	})
}

// SendCustomEmail sends caller-authored HTML to req.Email.
func (s *NotificationService) SendCustomEmail(ctx context.Context, req email.CustomEmail) Result {
	return s.dispatch(ctx, KindCustomEmail, req.Email, func() email.Message {
		return s.builder.CustomEmail(req)
	})
}

// Reject records a request that failed validation before any delivery was
// attempted.
func (s *NotificationService) Reject(kind Kind, verr *ValidationError) Result {
	res := Result{
		Outcome: ValidationFailure,
		Kind:    kind,
		Field:   verr.Field,
		Err:     verr,
	}

	s.log.Debug().
		Str("kind", string(kind)).
		Str("field", verr.Field).
		Msg(verr.Reason)
	notificationsTotal.WithLabelValues(string(kind), s.sender.Name(), res.Outcome.String()).Inc()

	return res
}

func (s *NotificationService) dispatch(ctx context.Context, kind Kind, recipient string, build func() email.Message) (res Result) {
	start := time.Now()
	res = Result{Kind: kind, Recipient: recipient}
	provider := s.sender.Name()

	defer func() {
		if p := recover(); p != nil {
			s.log.Error().
				Interface("panic", p).
				Str("stack", string(debug.Stack())).
				Str("kind", string(kind)).
				Msg("notification panicked")
			res.Outcome = UnexpectedFault
			res.Err = fmt.Errorf("%v", p)
		}

		s.log.Notification(string(kind), provider, recipient, res.Outcome.String(), res.Delivery.StatusCode, time.Since(start))
		notificationsTotal.WithLabelValues(string(kind), provider, res.Outcome.String()).Inc()
	}()

	msg := build()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sendStart := time.Now()
	res.Delivery = s.sender.Deliver(ctx, msg)
	providerRequestDuration.WithLabelValues(provider).Observe(time.Since(sendStart).Seconds())
	providerStatusTotal.WithLabelValues(provider, strconv.Itoa(res.Delivery.StatusCode)).Inc()

	if res.Delivery.Success {
		res.Outcome = Delivered
	} else {
		res.Outcome = DeliveryFailure
	}
	return res
}
