package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harvey_bookings/internal/booking"
	"harvey_bookings/internal/email"
	apphttp "harvey_bookings/internal/http"
	"harvey_bookings/internal/http/router"
	"harvey_bookings/internal/messaging"
	"harvey_bookings/platform/config"
	"harvey_bookings/platform/logger"
	"harvey_bookings/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "provider", cfg.NotifyProvider)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	gateway := newGateway(cfg, log)
	if !gateway.Configured() {
		// Startup proceeds anyway; every dispatch reports a configuration
		// error until credentials are provided.
		log.Warn("messaging provider credentials missing", "provider", gateway.Provider())
	}

	var mail email.Sender
	if cfg.OwnerChannel == config.OwnerChannelEmail {
		mail = email.NewSMTPSender(cfg)
		log.Info("owner alerts routed over email", "owner_email", cfg.OwnerEmail)
	}

	val := validator.New()

	// ========================================================================
	// Domain Modules
	// ========================================================================

	bookingModule := booking.NewModule(gateway, mail, cfg, val, log)

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Modules: []apphttp.Module{bookingModule},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// newGateway selects the messaging gateway variant once at startup.
func newGateway(cfg *config.Config, log *logger.Logger) messaging.Gateway {
	switch cfg.NotifyProvider {
	case config.ProviderTwilio:
		return messaging.NewTwilioClient(cfg, log)
	default:
		return messaging.NewCloudClient(cfg, log)
	}
}
