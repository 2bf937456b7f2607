package llm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

const maxBodyRunes = 4000

const systemPrompt = `You extract recurring-payment details from emails. Return only minified JSON in one line. No comments. No markdown.`

var (
	quoteMarkRe = regexp.MustCompile(`(?m)^\s*>+\s?`)
	ruleRe      = regexp.MustCompile(`[-_=*]{3,}`)
	boxRe       = regexp.MustCompile(`[│─┼┌┐└┘╔╗╚╝═|]+`)
	blankRe     = regexp.MustCompile(`\n{2,}`)
	spaceRe     = regexp.MustCompile(`[ \t]{2,}`)
	numSpaceRe  = regexp.MustCompile(`(\d),\s+(\d{3})`)
)

func buildPrompt(e domain.Email) string {
	return fmt.Sprintf(
		`CRITICAL RULES:
- is_subscription is true only for a recurring charge, renewal, receipt or trial of a paid plan.
- merchant_name is the company's display name, never an email address.
- amount is the recurring charge as a plain decimal number without currency symbols. Never a subtotal or tax line.
- currency MUST be a 3-letter ISO 4217 code. Use "USD" when unknown.
- billing_cycle MUST be exactly one of: monthly, annual, quarterly, weekly. Use "monthly" when unknown.
- status MUST be "trial" only for a free trial, otherwise "active".
- trial_end_date MUST be YYYY-MM-DD or "".
- category MUST be exactly one of: %v. Never invent new categories.

OUTPUT JSON SCHEMA:
{"is_subscription":bool,"merchant_name":string,"plan_name":string,"amount":number,"currency":string,"billing_cycle":string,"status":string,"trial_end_date":string,"category":string}

FROM: %s
SUBJECT: %s
SNIPPET: %s
BODY:
%s`,
		domain.Categories,
		e.From,
		e.Subject,
		CleanEmailText(e.Snippet),
		truncate(CleanEmailText(e.Body), maxBodyRunes),
	)
}

// CleanEmailText strips quoting, ASCII rules and table borders from a plain
// text body and collapses whitespace.
func CleanEmailText(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = quoteMarkRe.ReplaceAllString(s, "")
	s = ruleRe.ReplaceAllString(s, " ")
	s = boxRe.ReplaceAllString(s, " ")
	s = numSpaceRe.ReplaceAllString(s, "$1,$2")
	s = spaceRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = blankRe.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
