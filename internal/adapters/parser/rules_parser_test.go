package parser

import (
	"sync"
	"testing"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NetflixReceipt(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Your Netflix subscription receipt",
		From:    "info@netflix.com",
		Body:    "You were charged $15.49 monthly",
	})

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodPattern, res.Method)
	assert.Equal(t, &domain.ParsedSubscription{
		MerchantName: "Netflix",
		Amount:       "15.49",
		Currency:     "USD",
		BillingCycle: domain.CycleMonthly,
		Status:       domain.StatusActive,
		Confidence:   domain.ConfidenceHigh,
		Category:     domain.CategoryEntertainment,
	}, res.Data)
}

func TestParse_SenderHeuristicStaysOnPatternPath(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Payment received",
		From:    "Billing <billing@unknownvendor.io>",
		Body:    "Your payment of $9.99 was processed",
	})

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodPattern, res.Method)
	assert.Equal(t, "Billing", res.Data.MerchantName)
	assert.Equal(t, "9.99", res.Data.Amount)
	assert.Equal(t, domain.ConfidenceHigh, res.Data.Confidence)
	assert.Equal(t, domain.CategoryOther, res.Data.Category)
}

func TestParse_FallsBackWhenAmountHasNoCents(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Thanks",
		From:    "Acme <a@acme.io>",
		Body:    "Charged $10 today, billed yearly",
	})

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodAI, res.Method)
	assert.Equal(t, "Acme", res.Data.MerchantName)
	assert.Equal(t, "10.00", res.Data.Amount)
	assert.Equal(t, domain.ConfidenceLow, res.Data.Confidence)
	assert.Equal(t, domain.CycleMonthly, res.Data.BillingCycle)
	assert.Equal(t, "USD", res.Data.Currency)
}

func TestParse_RegistryMerchantLostOnFallback(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Your Netflix bill",
		From:    "info@netflix.com",
		Body:    "You were charged $15 monthly",
	})

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodAI, res.Method)
	assert.Equal(t, "info", res.Data.MerchantName)
	assert.Equal(t, "15.00", res.Data.Amount)
}

func TestParse_Failed(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Hello",
		From:    "<noreply@x.com>",
		Body:    "Just saying hi",
	})

	assert.False(t, res.Success)
	assert.Equal(t, domain.MethodFailed, res.Method)
	assert.Nil(t, res.Data)
	assert.NotEmpty(t, res.Error)
}

func TestParse_TrialWithPlan(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Your Spotify Premium free trial",
		From:    "Spotify <no-reply@spotify.com>",
		Body:    "Your 30-day free trial starts today. After that, $11.99/month.",
	})

	require.True(t, res.Success)
	assert.Equal(t, "Spotify", res.Data.MerchantName)
	assert.Equal(t, "Premium", res.Data.PlanName)
	assert.Equal(t, domain.StatusTrial, res.Data.Status)
	assert.Equal(t, "2026-11-16", res.Data.TrialEndDate)
	assert.Equal(t, "11.99", res.Data.Amount)
}

func TestParse_AmountFromSnippet(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "GitHub receipt",
		From:    "GitHub <billing@github.com>",
		Snippet: "We charged $4.00 to your card for GitHub Pro",
	})

	require.True(t, res.Success)
	assert.Equal(t, domain.MethodPattern, res.Method)
	assert.Equal(t, "GitHub", res.Data.MerchantName)
	assert.Equal(t, "4.00", res.Data.Amount)
	assert.Equal(t, domain.CategoryDevelopment, res.Data.Category)
}

func TestParse_SignatureWithoutCategoryIsInferred(t *testing.T) {
	res := newTestParser().Parse(domain.Email{
		Subject: "Your receipt from Apple.",
		From:    "no_reply@email.apple.com",
		Body:    "Subtotal $9.99\nTax $0.80\nTotal $10.79",
	})

	require.True(t, res.Success)
	assert.Equal(t, "Apple", res.Data.MerchantName)
	assert.Equal(t, "10.79", res.Data.Amount)
	assert.Equal(t, domain.CategoryOther, res.Data.Category)
}

func TestParse_ConcurrentCallsAgree(t *testing.T) {
	p := newTestParser()
	email := domain.Email{
		Subject: "Your Netflix subscription receipt",
		From:    "info@netflix.com",
		Body:    "You were charged $15.49 monthly",
	}
	want := p.Parse(email)

	var wg sync.WaitGroup
	results := make([]domain.ParseResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Parse(email)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestParse_PlanDescriptionKeepsSenderMerchant(t *testing.T) {
	p := newTestParser()
	res := p.Parse(domain.Email{
		Subject: "Your Netflix subscription receipt",
		From:    "info@netflix.com",
		Body:    "You were charged $15.49 monthly. See plan description in your account.",
	})
	require.True(t, res.Success)
	assert.Equal(t, "Netflix", res.Data.MerchantName)
	assert.Equal(t, domain.CategoryEntertainment, res.Data.Category)
}
