package ports

import (
	"context"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

// AIExtractorPort is the optional escalation used after rule parsing fails.
type AIExtractorPort interface {
	ExtractSubscription(ctx context.Context, email domain.Email) (*domain.ParsedSubscription, error)
}
