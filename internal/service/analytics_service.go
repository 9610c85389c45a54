package service

import (
	"context"
	"fmt"

	"github.com/shinyyama/billing-api/internal/model"
	"github.com/shinyyama/billing-api/internal/repository"
	"github.com/shopspring/decimal"
)

type AnalyticsService interface {
	Summary(ctx context.Context) (*model.AnalyticsSummary, error)
}

type analyticsService struct {
	repo repository.PaymentRepository
}

func NewAnalyticsService(repo repository.PaymentRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	sum := Summarize(payments)
	return &sum, nil
}

// Summarize totals the payments. Revenue is reported in major units with two decimals.
func Summarize(payments []model.Payment) model.AnalyticsSummary {
	var cents int64
	payers := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		cents += p.Amount
		payers[p.Email] = struct{}{}
	}
	return model.AnalyticsSummary{
		TotalRevenue: FormatCents(cents),
		PayingUsers:  len(payers),
		Transactions: len(payments),
	}
}

// FormatCents renders minor units as a major-unit string, e.g. 3500 -> "35.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// mockSummary is served when ANALYTICS_USE_MOCK is set.
var mockSummary = model.AnalyticsSummary{
	TotalRevenue: "12450.00",
	PayingUsers:  87,
	Transactions: 132,
}

type mockAnalyticsService struct{}

// NewMockAnalyticsService returns a fixed summary and never reads payments.
func NewMockAnalyticsService() AnalyticsService {
	return mockAnalyticsService{}
}

func (mockAnalyticsService) Summary(context.Context) (*model.AnalyticsSummary, error) {
	sum := mockSummary
	return &sum, nil
}
