// Package api exposes each endpoint as a standalone net/http function for
// serverless platforms. Every function shares one lazily built App.
package api

import (
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/app"
	"github.com/shinyyama/billing-api/internal/config"
	"github.com/shinyyama/billing-api/internal/db"
	"github.com/shinyyama/billing-api/internal/logger"
	"github.com/shinyyama/billing-api/internal/middleware"
	"gorm.io/gorm"
)

type functions struct {
	app *app.App
	log zerolog.Logger

	users     http.Handler
	analytics http.Handler
	portal    http.Handler
}

var (
	once  sync.Once
	fns   *functions
	build = bootstrap
)

// Users serves GET /users?email=.
func Users(w http.ResponseWriter, r *http.Request) {
	load().users.ServeHTTP(w, r)
}

// AnalyticsSummary serves GET /analytics/summary.
func AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	load().analytics.ServeHTTP(w, r)
}

// PortalSession serves POST /billing/portal-session.
func PortalSession(w http.ResponseWriter, r *http.Request) {
	load().portal.ServeHTTP(w, r)
}

// load builds the functions on first use and retries the database on every
// call until a connection is attached, so a warm instance recovers once the
// database is reachable again.
func load() *functions {
	once.Do(func() { fns = build() })
	if err := fns.app.EnsureDB(); err != nil {
		fns.log.Error().Err(err).Msg("database unavailable")
	}
	return fns
}

func newFunctions(a *app.App, log zerolog.Logger) *functions {
	return &functions{
		app:       a,
		log:       log,
		users:     middleware.WrapHTTP(log, a.Endpoints.Users),
		analytics: middleware.WrapHTTP(log, a.Endpoints.AnalyticsSummary),
		portal:    middleware.WrapHTTP(log, a.Endpoints.PortalSession),
	}
}

func bootstrap() *functions {
	cfg, err := config.Load()
	if err != nil {
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Error().Err(err).Msg("config load failed; serving without database or billing")
		return newFunctions(app.New(app.Options{Logger: log}), log)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	opts := app.Options{
		AnalyticsUseMock: cfg.AnalyticsUseMock,
		StripeSecretKey:  cfg.StripeSecretKey,
		Logger:           log,
	}
	if cfg.HasDatabase() {
		opts.Connect = func() (*gorm.DB, error) { return db.Connect(cfg) }
	}
	return newFunctions(app.New(opts), log)
}
