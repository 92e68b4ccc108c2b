package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailjetSender_RequiresKeys(t *testing.T) {
	_, err := NewMailjetSender(MailjetConfig{PublicKey: "pub"})
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestMailjetSender_Deliver_Success(t *testing.T) {
	var got mailjetRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3.1/send", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "pub", user)
		assert.Equal(t, "priv", pass)

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Messages":[{"Status":"success"}]}`))
	}))
	defer srv.Close()

	sender, err := NewMailjetSender(MailjetConfig{PublicKey: "pub", PrivateKey: "priv", BaseURL: srv.URL})
	require.NoError(t, err)

	replyTo := Address{Email: "john@example.com", Name: "John"}
	result := sender.Deliver(context.Background(), Message{
		From:     Address{Email: "john@example.com", Name: "John"},
		To:       []Address{{Email: "team@example.com", Name: "Project Team"}},
		ReplyTo:  &replyTo,
		Subject:  "Project Inquiry: hi",
		TextBody: "text",
		HTMLBody: "<p>html</p>",
	})

	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"Messages":[{"Status":"success"}]}`, string(result.RawResponse))

	require.Len(t, got.Messages, 1)
	m := got.Messages[0]
	assert.Equal(t, "john@example.com", m.From.Email)
	assert.Equal(t, "team@example.com", m.To[0].Email)
	assert.Equal(t, "Project Team", m.To[0].Name)
	require.NotNil(t, m.ReplyTo)
	assert.Equal(t, "John", m.ReplyTo.Name)
	assert.Equal(t, "Project Inquiry: hi", m.Subject)
	assert.Equal(t, "text", m.TextPart)
	assert.Equal(t, "<p>html</p>", m.HTMLPart)
}

func TestMailjetSender_Deliver_ProviderRejects(t *testing.T) {
	const payload = `{"ErrorIdentifier":"abc","ErrorCode":"mj-0002","StatusCode":401,"ErrorMessage":"API key authentication/authorization failure."}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	sender, err := NewMailjetSender(MailjetConfig{PublicKey: "pub", PrivateKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	result := sender.Deliver(context.Background(), Message{To: []Address{{Email: "a@b.com"}}})

	assert.False(t, result.Success)
	assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
	assert.Equal(t, payload, string(result.RawResponse))
}

func TestMailjetSender_Deliver_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	sender, err := NewMailjetSender(MailjetConfig{PublicKey: "pub", PrivateKey: "priv", BaseURL: srv.URL})
	require.NoError(t, err)

	result := sender.Deliver(context.Background(), Message{})

	assert.False(t, result.Success)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
	assert.Equal(t, `"upstream unavailable"`, string(result.RawResponse))
}

func TestMailjetSender_Deliver_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	sender, err := NewMailjetSender(MailjetConfig{
		PublicKey:  "pub",
		PrivateKey: "priv",
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Timeout: 20 * time.Millisecond},
	})
	require.NoError(t, err)

	result := sender.Deliver(context.Background(), Message{})

	assert.False(t, result.Success)
	assert.Equal(t, StatusTransportFailure, result.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(result.RawResponse, &body))
	assert.Contains(t, body["error"], "mailjet: request failed")
}

func TestMailjetSender_Deliver_CanceledContext(t *testing.T) {
	sender, err := NewMailjetSender(MailjetConfig{PublicKey: "pub", PrivateKey: "priv", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := sender.Deliver(ctx, Message{})
	assert.False(t, result.Success)
	assert.Equal(t, StatusTransportFailure, result.StatusCode)
}
