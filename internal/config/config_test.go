package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs Load from an empty directory so no .env or config.yaml
// from the working tree is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(16*1024*1024), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mailjet", cfg.Email.Provider)
	assert.Equal(t, "Price Tracker", cfg.Email.SenderName)
	assert.Equal(t, "Birthday Buddy", cfg.Email.CustomSenderName)
	assert.False(t, cfg.Email.SanitizeCustomHTML)
	assert.Equal(t, 30*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "https://api.mailjet.com", cfg.Email.Mailjet.BaseURL)
	assert.Equal(t, []string{"*"}, cfg.Security.CORS.AllowedOrigins)
	assert.Equal(t, "100 per minute", cfg.Security.RateLimiting.Default)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("FLASK_ENV", "production")
	t.Setenv("MJ_APIKEY_PUBLIC", "pub")
	t.Setenv("MJ_APIKEY_PRIVATE", "priv")
	t.Setenv("SENDER_EMAIL", "alerts@shop.example")
	t.Setenv("SENDER_NAME", "Deals")
	t.Setenv("CORS_ORIGINS", "https://shop.example, https://admin.shop.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "pub", cfg.Email.Mailjet.PublicKey)
	assert.Equal(t, "priv", cfg.Email.Mailjet.PrivateKey)
	assert.Equal(t, "alerts@shop.example", cfg.Email.SenderAddress)
	assert.Equal(t, "Deals", cfg.Email.SenderName)
	assert.Equal(t, []string{"https://shop.example", "https://admin.shop.example"}, cfg.Security.CORS.AllowedOrigins)
	assert.Equal(t, "50 per minute", cfg.Security.RateLimiting.Default)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SENDER_EMAIL", "legacy@shop.example")
	t.Setenv("PRICENOTIFY_EMAIL_SENDER_ADDRESS", "new@shop.example")
	t.Setenv("PRICENOTIFY_ENVIRONMENT", "testing")
	t.Setenv("PRICENOTIFY_EMAIL_PROVIDER", "ses")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "new@shop.example", cfg.Email.SenderAddress)
	assert.Equal(t, EnvTesting, cfg.Environment)
	assert.Equal(t, "1000 per minute", cfg.Security.RateLimiting.Default)
	assert.Equal(t, "ses", cfg.Email.Provider)
}

func TestLoad_ConfigFile(t *testing.T) {
	chdirTemp(t)
	yaml := "server:\n  port: 8080\nemail:\n  provider: log\n  custom_sender_name: Announcements\n"
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "log", cfg.Email.Provider)
	assert.Equal(t, "Announcements", cfg.Email.CustomSenderName)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Empty(t, splitList(""))
}
