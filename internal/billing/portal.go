// Package billing talks to the payment provider's customer portal.
package billing

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrNotConfigured is returned when no provider secret key was supplied.
var ErrNotConfigured = errors.New("billing provider is not configured")

type PortalSessionCreator interface {
	// CreatePortalSession returns the hosted portal URL for the customer.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

type StripePortal struct {
	api *client.API
}

// NewStripePortal returns a creator backed by Stripe. An empty key yields a creator
// that always fails with ErrNotConfigured.
func NewStripePortal(secretKey string) *StripePortal {
	if secretKey == "" {
		return &StripePortal{}
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripePortal{api: api}
}

func (p *StripePortal) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if p.api == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	sess, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// Message extracts the provider's human readable message from err.
func Message(err error) string {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	return err.Error()
}
