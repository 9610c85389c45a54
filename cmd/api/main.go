package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/app"
	"github.com/shinyyama/billing-api/internal/config"
	"github.com/shinyyama/billing-api/internal/db"
	"github.com/shinyyama/billing-api/internal/logger"
	"github.com/shinyyama/billing-api/internal/server"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	opts := app.Options{
		AnalyticsUseMock: cfg.AnalyticsUseMock,
		StripeSecretKey:  cfg.StripeSecretKey,
		Logger:           log,
	}
	if cfg.HasDatabase() {
		opts.Connect = func() (*gorm.DB, error) { return db.Connect(cfg) }
	} else {
		log.Warn().Msg("no database configured; user lookups will fail")
	}
	a := app.New(opts)
	srv := server.New(a, server.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		GitSHA:         cfg.GitSHA,
		BuildTime:      cfg.BuildTime,
		Logger:         log,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Bool("analytics_mock", cfg.AnalyticsUseMock).Msg("starting server")
		errCh <- srv.Start(addr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect after the listener is up so cold starts are not blocked on the database.
	go func() { _ = a.KeepConnecting(ctx) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}
}
