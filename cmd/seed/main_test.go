package main

import (
	"testing"

	"github.com/shinyyama/billing-api/internal/service"
)

func TestBuildSeed(t *testing.T) {
	users, payments := buildSeed()
	if len(users) != 5 {
		t.Fatalf("users=%d want 5", len(users))
	}

	emails := map[string]bool{}
	for _, u := range users {
		if u.StripeCustomerID == nil || *u.StripeCustomerID == "" {
			t.Fatalf("user %s has no customer id", u.Email)
		}
		emails[u.Email] = true
	}
	for _, p := range payments {
		if !emails[p.Email] {
			t.Fatalf("payment for unknown user %s", p.Email)
		}
	}

	sum := service.Summarize(payments)
	if sum.TotalRevenue != "194.99" || sum.PayingUsers != 4 || sum.Transactions != 7 {
		t.Fatalf("unexpected seed summary %+v", sum)
	}
}
