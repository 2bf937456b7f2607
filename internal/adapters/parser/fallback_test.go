package parser

import (
	"testing"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackExtract(t *testing.T) {
	tests := []struct {
		name       string
		sender     string
		body       string
		wantName   string
		wantAmount string
	}{
		{"whole dollars", "Acme <a@acme.io>", "Charged $10 today", "Acme", "10.00"},
		{"one decimal", "Acme <a@acme.io>", "Charged $10.5 today", "Acme", "10.50"},
		{"thousands", "Big Vendor <x@big.io>", "Due: €1,200", "Big Vendor", "1200.00"},
		{"bare address", "billing@vendor.io", "Pay £3", "billing", "3.00"},
	}
	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := p.FallbackExtract(tt.sender, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, fs.MerchantName)
			assert.Equal(t, tt.wantAmount, fs.Amount)
			assert.Equal(t, "USD", fs.Currency)
			assert.Equal(t, domain.CycleMonthly, fs.BillingCycle)
			assert.Equal(t, domain.StatusActive, fs.Status)
			assert.Empty(t, fs.TrialEndDate)
		})
	}
}

func TestFallbackExtract_SkipsCycleAndTrialDetection(t *testing.T) {
	fs, err := newTestParser().FallbackExtract("Acme <a@acme.io>", "Your 14-day free trial, then $99 per year")
	require.NoError(t, err)
	assert.Equal(t, domain.CycleMonthly, fs.BillingCycle)
	assert.Equal(t, domain.StatusActive, fs.Status)
}

func TestFallbackExtract_Failures(t *testing.T) {
	p := newTestParser()

	_, err := p.FallbackExtract("Acme <a@acme.io>", "no money mentioned")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = p.FallbackExtract("<noreply@x.com>", "Charged $10")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	_, err = p.FallbackExtract("", "Charged $10")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
