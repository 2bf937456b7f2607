package ports

import "github.com/cp25sy5-modjot/subscription-parser/internal/domain"

type ParserPort interface {
	// Parse a decoded email into a subscription; never fails, the result carries the outcome.
	Parse(email domain.Email) domain.ParseResult
	// InferCategory maps a merchant name to the closed category set ("other" when unknown).
	InferCategory(merchantName string) string
}
