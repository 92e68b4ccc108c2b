package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names recognized by Load
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Log         LogConfig      `mapstructure:"log"`
	Email       EmailConfig    `mapstructure:"email"`
	Security    SecurityConfig `mapstructure:"security"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the delivery provider: "mailjet", "ses", "resend", "gmail" or "log"
	Provider string `mapstructure:"provider"`
	// SenderAddress is the "From" address for price alerts and custom emails
	SenderAddress string `mapstructure:"sender_address"`
	// SenderName is the display name used on price alerts
	SenderName string `mapstructure:"sender_name"`
	// CustomSenderName is the display name used on custom emails
	CustomSenderName string `mapstructure:"custom_sender_name"`
	// Recipient display names per notification kind
	PriceAlertRecipientName string `mapstructure:"price_alert_recipient_name"`
	InquiryRecipientName    string `mapstructure:"inquiry_recipient_name"`
	CustomRecipientName     string `mapstructure:"custom_recipient_name"`
	// SanitizeCustomHTML strips unsafe markup from custom email bodies
	SanitizeCustomHTML bool `mapstructure:"sanitize_custom_html"`
	// Timeout bounds a single provider call
	Timeout time.Duration `mapstructure:"timeout"`

	Mailjet MailjetConfig `mapstructure:"mailjet"`
	SES     SESConfig     `mapstructure:"ses"`
	Resend  ResendConfig  `mapstructure:"resend"`
	Gmail   GmailConfig   `mapstructure:"gmail"`
}

// MailjetConfig holds Mailjet Send API credentials
type MailjetConfig struct {
	PublicKey  string `mapstructure:"public_key"`
	PrivateKey string `mapstructure:"private_key"`
	BaseURL    string `mapstructure:"base_url"`
}

// SESConfig holds AWS SES configuration. Empty keys fall back to the default
// AWS credential chain.
type SESConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// ResendConfig holds Resend API configuration
type ResendConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// GmailConfig holds Gmail API configuration
type GmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	// SecretKey is carried for deployments that share one env file; the
	// notification paths never read it.
	SecretKey    string             `mapstructure:"secret_key"`
	CORS         CORSConfig         `mapstructure:"cors"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// CORSConfig holds the cross-origin policy
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// RateLimitingConfig is advisory. It is reported at startup and left to the
// fronting proxy to enforce.
type RateLimitingConfig struct {
	Default string `mapstructure:"default"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// .env is optional, real environment variables always win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricenotify")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PRICENOTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	applyEnvironment(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// bindLegacyEnv keeps the variable names of existing deployments working.
// Prefixed variables take precedence because they are bound first.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"environment":                   {"PRICENOTIFY_ENVIRONMENT", "FLASK_ENV"},
		"email.mailjet.public_key":      {"PRICENOTIFY_EMAIL_MAILJET_PUBLIC_KEY", "MJ_APIKEY_PUBLIC"},
		"email.mailjet.private_key":     {"PRICENOTIFY_EMAIL_MAILJET_PRIVATE_KEY", "MJ_APIKEY_PRIVATE"},
		"email.sender_address":          {"PRICENOTIFY_EMAIL_SENDER_ADDRESS", "SENDER_EMAIL"},
		"email.sender_name":             {"PRICENOTIFY_EMAIL_SENDER_NAME", "SENDER_NAME"},
		"security.secret_key":           {"PRICENOTIFY_SECURITY_SECRET_KEY", "SECRET_KEY"},
		"security.cors.allowed_origins": {"PRICENOTIFY_SECURITY_CORS_ALLOWED_ORIGINS", "CORS_ORIGINS"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// applyEnvironment adjusts defaults per deployment profile. Explicitly
// configured values are left alone.
func applyEnvironment(v *viper.Viper) {
	env := strings.ToLower(v.GetString("environment"))
	switch env {
	case EnvProduction:
		v.SetDefault("security.rate_limiting.default", "50 per minute")
	case EnvTesting:
		v.SetDefault("security.rate_limiting.default", "1000 per minute")
	default:
		env = EnvDevelopment
		v.SetDefault("log.level", "debug")
	}
	v.Set("environment", env)

	// CORS_ORIGINS arrives as one comma separated string
	origins := v.GetStringSlice("security.cors.allowed_origins")
	if strings.Contains(strings.Join(origins, " "), ",") {
		v.Set("security.cors.allowed_origins", splitList(strings.Join(origins, ",")))
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 16*1024*1024)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.provider", "mailjet")
	v.SetDefault("email.sender_address", "")
	v.SetDefault("email.sender_name", "Price Tracker")
	v.SetDefault("email.custom_sender_name", "Birthday Buddy")
	v.SetDefault("email.price_alert_recipient_name", "Valued Customer")
	v.SetDefault("email.inquiry_recipient_name", "Project Team")
	v.SetDefault("email.custom_recipient_name", "Recipient")
	v.SetDefault("email.sanitize_custom_html", false)
	v.SetDefault("email.timeout", "30s")
	v.SetDefault("email.mailjet.base_url", "https://api.mailjet.com")
	v.SetDefault("email.ses.region", "us-east-1")

	// Security defaults
	v.SetDefault("security.secret_key", "")
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("security.cors.allowed_headers", []string{"Content-Type", "Authorization", "Access-Control-Allow-Origin"})
	v.SetDefault("security.cors.max_age", 300)
	v.SetDefault("security.rate_limiting.default", "100 per minute")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
