package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const defaultCurrency = "USD"

var symbolCurrencies = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// normalizeAmount strips thousands separators and renders two fractional digits.
func normalizeAmount(raw string) (string, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return "", fmt.Errorf("%w: invalid amount %q", ErrExtractionFailed, raw)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: negative amount %q", ErrExtractionFailed, raw)
	}
	return d.StringFixed(2), nil
}

// currencyCode prefers a recognised ISO code, then the symbol, then USD.
func currencyCode(symbol, code string) string {
	if code != "" {
		if u, err := currency.ParseISO(code); err == nil {
			return u.String()
		}
	}
	if c, ok := symbolCurrencies[symbol]; ok {
		return c
	}
	return defaultCurrency
}
