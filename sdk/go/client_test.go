package pricenotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pricenotify/pricenotify/internal/config"
	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/email/emailtest"
	"github.com/pricenotify/pricenotify/internal/handler"
	"github.com/pricenotify/pricenotify/internal/logger"
	"github.com/pricenotify/pricenotify/internal/middleware"
	"github.com/pricenotify/pricenotify/internal/router"
	"github.com/pricenotify/pricenotify/internal/service"
)

func newTestServer(t *testing.T, sender *emailtest.MockSender) *Client {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{MaxBodyBytes: 1 << 20}}
	log := logger.Nop()
	builder := email.NewBuilder(email.Identity{SenderEmail: "alerts@shop.example"})
	svc := service.NewNotificationService(builder, sender, 0, log)

	srv := httptest.NewServer(router.New(handler.New(log, svc), middleware.New(log, cfg), cfg))
	t.Cleanup(srv.Close)

	return NewClient(Config{BaseURL: srv.URL + "/api/v1/"})
}

func TestClient_SendPriceAlert(t *testing.T) {
	sender := &emailtest.MockSender{}
	sender.On("Deliver", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
		return m.Subject == "Price Alert: Widget"
	})).Return(emailtest.Accepted(`{"Messages":[{"Status":"success"}]}`)).Once()

	resp, err := newTestServer(t, sender).SendPriceAlert(context.Background(), PriceAlertRequest{
		Email:         "a@b.com",
		ProductName:   "Widget",
		CurrentPrice:  9.99,
		PreviousPrice: 12.50,
		ProductURL:    "http://x",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Price alert notification sent to a@b.com", resp.Message)
	assert.JSONEq(t, `{"Messages":[{"Status":"success"}]}`, string(resp.Provider))
}

func TestClient_ValidationError(t *testing.T) {
	sender := &emailtest.MockSender{}

	_, err := newTestServer(t, sender).SendProjectInquiry(context.Background(), ProjectInquiryRequest{
		RecipientEmail: "t@example.com",
	})

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, "Missing required field: sender_name", apiErr.Message)
	sender.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestClient_DeliveryFailure(t *testing.T) {
	sender := &emailtest.MockSender{}
	sender.On("Deliver", mock.Anything, mock.Anything).
		Return(emailtest.Rejected(http.StatusBadRequest, `{"ErrorMessage":"invalid recipient"}`)).Once()

	text := "plain"
	_, err := newTestServer(t, sender).SendCustomEmail(context.Background(), CustomEmailRequest{
		Email:       "f@example.com",
		Subject:     "Hi",
		HTMLContent: "<p>hi</p>",
		TextContent: &text,
	})

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.False(t, apiErr.IsValidation())
	assert.Equal(t, "Failed to send custom email notification", apiErr.Message)
	assert.JSONEq(t, `{"ErrorMessage":"invalid recipient"}`, string(apiErr.Provider))
}

func TestClient_Health(t *testing.T) {
	require.NoError(t, newTestServer(t, &emailtest.MockSender{}).Health(context.Background()))
}

func TestClient_HealthUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"down"}`))
	}))
	defer srv.Close()

	err := NewClient(Config{BaseURL: srv.URL}).Health(context.Background())
	assert.True(t, errors.Is(err, ErrUnhealthy))
}

func TestClient_HealthNonJSONGatewayPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer srv.Close()

	err := NewClient(Config{BaseURL: srv.URL}).Health(context.Background())
	assert.ErrorIs(t, err, ErrUnhealthy)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_HealthWrongStatusBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer srv.Close()

	err := NewClient(Config{BaseURL: srv.URL}).Health(context.Background())
	assert.ErrorIs(t, err, ErrUnhealthy)
}

func TestClient_NonJSONSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).SendCustomEmail(context.Background(), CustomEmailRequest{Email: "f@example.com"})
	require.Error(t, err)
	_, isAPI := IsAPIError(err)
	assert.False(t, isAPI)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestParseAPIError_NonJSONBody(t *testing.T) {
	err := parseAPIError(http.StatusBadGateway, []byte("bad gateway"))

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "bad gateway", apiErr.Message)
}
