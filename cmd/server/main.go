package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pricenotify/pricenotify/internal/config"
	"github.com/pricenotify/pricenotify/internal/email"
	"github.com/pricenotify/pricenotify/internal/handler"
	"github.com/pricenotify/pricenotify/internal/logger"
	"github.com/pricenotify/pricenotify/internal/middleware"
	"github.com/pricenotify/pricenotify/internal/router"
	"github.com/pricenotify/pricenotify/internal/service"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().
		Str("version", version).
		Str("environment", cfg.Environment).
		Msg("starting pricenotify server")

	// Initialize email sender
	sender, err := email.NewSender(context.Background(), cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.Email.Provider).Msg("failed to initialize email sender")
	}
	log.Info().
		Str("provider", sender.Name()).
		Str("sender", logger.RedactEmail(cfg.Email.SenderAddress)).
		Dur("timeout", cfg.Email.Timeout).
		Msg("email sender initialized")

	// Initialize notification service
	builder := email.NewBuilder(email.IdentityFromConfig(cfg.Email))
	notifySvc := service.NewNotificationService(builder, sender, cfg.Email.Timeout, log)

	// Rate limits are enforced by the fronting proxy
	log.Info().
		Str("default_limit", cfg.Security.RateLimiting.Default).
		Msg("rate limiting is advisory")

	// Initialize handlers and middleware
	h := handler.New(log, notifySvc)
	mw := middleware.New(log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
