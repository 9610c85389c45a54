// Package app wires repositories, services and handlers into the endpoints
// served by both the router and the standalone functions.
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/billing"
	"github.com/shinyyama/billing-api/internal/handler"
	"github.com/shinyyama/billing-api/internal/repository"
	"github.com/shinyyama/billing-api/internal/service"
	"gorm.io/gorm"
)

type Options struct {
	// DB may be nil and attached later with App.SetDB or through Connect.
	DB               *gorm.DB
	Connect          Connector
	AnalyticsUseMock bool
	StripeSecretKey  string
	Logger           zerolog.Logger

	// Overrides, mostly for tests. Nil means the gorm or Stripe implementation.
	Users    repository.UserRepository
	Payments repository.PaymentRepository
	Portal   billing.PortalSessionCreator
}

type dbSetter interface {
	SetDB(db *gorm.DB)
}

type App struct {
	Endpoints handler.Endpoints
	setters   []dbSetter

	log       zerolog.Logger
	connect   Connector
	connectMu sync.Mutex
	attached  atomic.Bool
	delay     func(attempt int) time.Duration
}

func New(opts Options) *App {
	a := &App{log: opts.Logger, connect: opts.Connect, delay: nextConnectDelay}
	a.attached.Store(opts.DB != nil)

	users := opts.Users
	if users == nil {
		r := repository.NewUserRepository(opts.DB)
		a.setters = append(a.setters, r)
		users = r
	}

	var analytics service.AnalyticsService
	if opts.AnalyticsUseMock {
		analytics = service.NewMockAnalyticsService()
	} else {
		payments := opts.Payments
		if payments == nil {
			r := repository.NewPaymentRepository(opts.DB)
			a.setters = append(a.setters, r)
			payments = r
		}
		analytics = service.NewAnalyticsService(payments)
	}

	portal := opts.Portal
	if portal == nil {
		portal = billing.NewStripePortal(opts.StripeSecretKey)
	}

	a.Endpoints = handler.NewEndpoints(
		handler.NewUserHandler(service.NewUserService(users), opts.Logger),
		handler.NewAnalyticsHandler(analytics, opts.Logger),
		handler.NewPortalHandler(portal, opts.Logger),
	)
	return a
}

// SetDB attaches a connection to every gorm-backed repository.
func (a *App) SetDB(db *gorm.DB) {
	for _, s := range a.setters {
		s.SetDB(db)
	}
	a.attached.Store(db != nil)
}
