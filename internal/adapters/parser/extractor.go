package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrExtractionFailed = errors.New("extraction failed")

// FieldSet is what an extraction strategy pulls out of an email.
type FieldSet struct {
	MerchantName string
	PlanName     string
	Amount       string
	Currency     string
	BillingCycle domain.BillingCycle
	Status       domain.Status
	TrialEndDate string
}

var (
	// symbol, integer part, cents, ISO code
	amountRe = regexp.MustCompile(`([$€£¥])?\s?(\d{1,3}(?:,\d{3})+|\d+)\.(\d{2})\b(?:\s?([A-Z]{3})\b)?`)

	cycleRes = []struct {
		cycle domain.BillingCycle
		re    *regexp.Regexp
	}{
		{domain.CycleAnnual, regexp.MustCompile(`annual|yearly|per year|every year|/\s?(?:year|yr)\b`)},
		{domain.CycleQuarterly, regexp.MustCompile(`quarterly|per quarter|every (?:3|three) months|/\s?quarter\b`)},
		{domain.CycleWeekly, regexp.MustCompile(`weekly|per week|every week|/\s?(?:week|wk)\b`)},
	}

	trialStartRe = regexp.MustCompile(`free trial|trial (?:period|has started|started|begins|starts)|(?:start|started|starting|begin|began) (?:your|a|the) (?:\d+[- ]day )?(?:free )?trial`)
	trialEndRe   = regexp.MustCompile(`(?i)trial (?:ends|will end|expires|ending) on ([a-z]+\.? \d{1,2}(?:st|nd|rd|th)?,? \d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})`)
	trialDaysRe  = regexp.MustCompile(`(?i)(\d{1,3})[- ]day (?:free )?trial`)

	planRe = regexp.MustCompile(`(?i)\b(pro|premium|plus|basic|starter|enterprise|team)\b`)

	ordinalRe = regexp.MustCompile(`(\d)(?:st|nd|rd|th)\b`)

	dateLayouts = []string{
		"January 2 2006",
		"Jan 2 2006",
		"2006-01-02",
		"1/2/2006",
	}
)

// ExtractFields pulls amount, currency, cycle, trial and plan out of the
// email. Subject is only used for the plan name.
func (p *RulesParser) ExtractFields(subject, content string, sig *MerchantSignature) (FieldSet, error) {
	amount, currency, err := extractAmount(content, sig)
	if err != nil {
		return FieldSet{}, err
	}

	lc := strings.ToLower(content)
	fs := FieldSet{
		Amount:       amount,
		Currency:     currency,
		BillingCycle: detectCycle(lc, sig),
		Status:       domain.StatusActive,
		PlanName:     detectPlan(subject),
	}

	if trialStartRe.MatchString(lc) {
		fs.Status = domain.StatusTrial
		fs.TrialEndDate = p.trialEnd(content)
	}
	return fs, nil
}

func extractAmount(content string, sig *MerchantSignature) (amount, currency string, err error) {
	if sig != nil && sig.AmountPattern != nil {
		m := sig.AmountPattern.FindStringSubmatch(content)
		if len(m) < 2 {
			return "", "", fmt.Errorf("%w: no amount for %s", ErrExtractionFailed, sig.CanonicalName)
		}
		code := ""
		if i := sig.AmountPattern.SubexpIndex("currency"); i > 0 && i < len(m) {
			code = m[i]
		}
		amount, err = normalizeAmount(m[1])
		if err != nil {
			return "", "", err
		}
		return amount, currencyCode("", code), nil
	}

	m := amountRe.FindStringSubmatch(content)
	if m == nil {
		return "", "", fmt.Errorf("%w: no amount in content", ErrExtractionFailed)
	}
	amount, err = normalizeAmount(m[2] + "." + m[3])
	if err != nil {
		return "", "", err
	}
	return amount, currencyCode(m[1], m[4]), nil
}

func detectCycle(lc string, sig *MerchantSignature) domain.BillingCycle {
	if sig != nil {
		// fixed order so overlapping hints resolve the same way every time
		for _, c := range []domain.BillingCycle{domain.CycleMonthly, domain.CycleAnnual, domain.CycleQuarterly, domain.CycleWeekly} {
			for _, kw := range sig.CycleKeywords[c] {
				if strings.Contains(lc, strings.ToLower(kw)) {
					return c
				}
			}
		}
	}
	for _, r := range cycleRes {
		if r.re.MatchString(lc) {
			return r.cycle
		}
	}
	// "monthly" is never matched explicitly; it is the default
	return domain.CycleMonthly
}

func detectPlan(subject string) string {
	m := planRe.FindStringSubmatch(subject)
	if m == nil {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(m[1]))
}

func (p *RulesParser) trialEnd(content string) string {
	if m := trialEndRe.FindStringSubmatch(content); m != nil {
		if d, ok := parseDate(m[1]); ok {
			return d.Format(time.DateOnly)
		}
	}
	if m := trialDaysRe.FindStringSubmatch(content); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			now := p.now()
			return time.Date(now.Year(), now.Month(), now.Day()+days, 0, 0, 0, 0, now.Location()).Format(time.DateOnly)
		}
	}
	return ""
}

func parseDate(s string) (time.Time, bool) {
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = strings.NewReplacer(",", "", ".", "").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 0 {
		// month names are matched case-sensitively by time.Parse
		s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
