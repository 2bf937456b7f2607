package parser

import (
	"strings"
	"time"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

// RulesParser turns a decoded email into a ParseResult using the merchant
// registry and fixed text patterns. It holds no mutable state.
type RulesParser struct {
	registry []MerchantSignature
	now      func() time.Time
}

type Option func(*RulesParser)

// WithRegistry replaces the merchant registry; order is significant.
func WithRegistry(registry []MerchantSignature) Option {
	return func(p *RulesParser) { p.registry = registry }
}

// WithClock sets the clock used for relative trial end dates.
func WithClock(now func() time.Time) Option {
	return func(p *RulesParser) { p.now = now }
}

func NewRulesParser(opts ...Option) *RulesParser {
	p := &RulesParser{registry: DefaultRegistry, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tries the pattern path first and the fallback path second. It never
// returns an error; failures are reported in the result.
func (p *RulesParser) Parse(email domain.Email) domain.ParseResult {
	content := joinContent(email)

	if merchant, err := p.ResolveMerchant(email.From, content); err == nil {
		if fs, err := p.ExtractFields(email.Subject, content, merchant.Signature); err == nil {
			fs.MerchantName = merchant.Name
			category := merchant.Category
			if category == "" {
				category = InferCategory(merchant.Name)
			}
			return domain.Succeeded(toSubscription(fs, domain.ConfidenceHigh, category), domain.MethodPattern)
		}
	}

	fs, err := p.FallbackExtract(email.From, email.Body)
	if err != nil {
		return domain.Failed(err.Error(), domain.MethodFailed)
	}
	return domain.Succeeded(toSubscription(fs, domain.ConfidenceLow, InferCategory(fs.MerchantName)), domain.MethodAI)
}

func joinContent(e domain.Email) string {
	return strings.Join([]string{e.Subject, e.Body, e.Snippet}, "\n")
}

func toSubscription(fs FieldSet, confidence domain.Confidence, category string) *domain.ParsedSubscription {
	return &domain.ParsedSubscription{
		MerchantName: fs.MerchantName,
		PlanName:     fs.PlanName,
		Amount:       fs.Amount,
		Currency:     fs.Currency,
		BillingCycle: fs.BillingCycle,
		Status:       fs.Status,
		TrialEndDate: fs.TrialEndDate,
		Confidence:   confidence,
		Category:     category,
	}
}
