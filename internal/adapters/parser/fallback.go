package parser

import (
	"fmt"
	"regexp"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

var looseAmountRe = regexp.MustCompile(`[$€£¥]\s?(\d[\d,]*(?:\.\d{1,2})?)`)

// FallbackExtract is the best-effort path used when the pattern path gives up.
// It never detects cycle, trial or currency.
func (p *RulesParser) FallbackExtract(sender, body string) (FieldSet, error) {
	m := looseAmountRe.FindStringSubmatch(body)
	if m == nil {
		return FieldSet{}, fmt.Errorf("%w: no amount in body", ErrExtractionFailed)
	}
	amount, err := normalizeAmount(m[1])
	if err != nil {
		return FieldSet{}, err
	}

	name := senderName(sender)
	if name == "" {
		return FieldSet{}, fmt.Errorf("%w: no merchant in sender %q", ErrExtractionFailed, sender)
	}

	return FieldSet{
		MerchantName: name,
		Amount:       amount,
		Currency:     defaultCurrency,
		BillingCycle: domain.CycleMonthly,
		Status:       domain.StatusActive,
	}, nil
}
