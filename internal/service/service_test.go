package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinyyama/billing-api/internal/model"
	"github.com/shinyyama/billing-api/internal/repository"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{99, "0.99"},
		{3500, "35.00"},
		{123456789, "1234567.89"},
		{-250, "-2.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCents(tt.cents))
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		payments []model.Payment
		want     model.AnalyticsSummary
	}{
		{
			name: "no payments",
			want: model.AnalyticsSummary{TotalRevenue: "0.00"},
		},
		{
			name: "repeat payer counted once",
			payments: []model.Payment{
				{Amount: 1000, Email: "a@x"},
				{Amount: 2000, Email: "a@x"},
				{Amount: 500, Email: "b@x"},
			},
			want: model.AnalyticsSummary{TotalRevenue: "35.00", PayingUsers: 2, Transactions: 3},
		},
		{
			name: "odd cents",
			payments: []model.Payment{
				{Amount: 1, Email: "a@x"},
				{Amount: 1, Email: "b@x"},
				{Amount: 1, Email: "c@x"},
			},
			want: model.AnalyticsSummary{TotalRevenue: "0.03", PayingUsers: 3, Transactions: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.payments))
		})
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	repo := repository.NewMemoryPaymentRepository(
		model.Payment{Amount: 1000, Email: "a@x"},
		model.Payment{Amount: 2000, Email: "a@x"},
		model.Payment{Amount: 500, Email: "b@x"},
	)
	svc := NewAnalyticsService(repo)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.AnalyticsSummary{TotalRevenue: "35.00", PayingUsers: 2, Transactions: 3}, sum)

	// recomputed on every call
	repo.Add(model.Payment{Amount: 100, Email: "c@x"})
	sum, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "36.00", sum.TotalRevenue)
	assert.Equal(t, 2, repo.Calls())
}

func TestAnalyticsService_RepoError(t *testing.T) {
	repo := repository.NewMemoryPaymentRepository()
	dbDown := errors.New("db down")
	repo.SetErr(dbDown)

	_, err := NewAnalyticsService(repo).Summary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbDown)
}

func TestMockAnalyticsService(t *testing.T) {
	svc := NewMockAnalyticsService()

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12450.00", first.TotalRevenue)

	first.PayingUsers = 0
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 87, second.PayingUsers)
}

func TestUserService_FindByEmail(t *testing.T) {
	repo := repository.NewMemoryUserRepository(model.User{ID: 1, Email: "a@x", Name: "Ada"})
	svc := NewUserService(repo)

	u, err := svc.FindByEmail(context.Background(), "a@x")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	_, err = svc.FindByEmail(context.Background(), "b@x")
	assert.ErrorIs(t, err, ErrNotFound)

	repo.SetErr(errors.New("connection refused"))
	_, err = svc.FindByEmail(context.Background(), "a@x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
