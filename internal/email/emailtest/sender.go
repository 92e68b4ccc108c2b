// Package emailtest provides test doubles for email.Sender.
package emailtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pricenotify/pricenotify/internal/email"
)

// MockSender is a testify mock implementing email.Sender.
type MockSender struct {
	mock.Mock
	ProviderName string
}

// Name implements email.Sender.
func (m *MockSender) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Deliver implements email.Sender.
func (m *MockSender) Deliver(ctx context.Context, msg email.Message) email.DeliveryResult {
	args := m.Called(ctx, msg)
	if fn, ok := args.Get(0).(func(email.Message) email.DeliveryResult); ok {
		return fn(msg)
	}
	return args.Get(0).(email.DeliveryResult)
}

// Accepted is a DeliveryResult for a 200 provider response with body raw.
func Accepted(raw string) email.DeliveryResult {
	return email.DeliveryResult{Success: true, StatusCode: 200, RawResponse: []byte(raw)}
}

// Rejected is a DeliveryResult for a failed provider response.
func Rejected(status int, raw string) email.DeliveryResult {
	return email.DeliveryResult{Success: false, StatusCode: status, RawResponse: []byte(raw)}
}
