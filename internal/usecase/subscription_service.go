package usecase

import (
	"context"
	"strings"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/cp25sy5-modjot/subscription-parser/internal/logger"
	"github.com/cp25sy5-modjot/subscription-parser/internal/ports"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const MaxBatchSize = 500

type SubscriptionService struct {
	parser ports.ParserPort
	ai     ports.AIExtractorPort // nil disables escalation
	log    zerolog.Logger

	batchLimit int
	aiSem      chan struct{} // limit LLM concurrency
}

type Option func(*SubscriptionService)

func WithAIExtractor(ai ports.AIExtractorPort, maxConcurrent int) Option {
	return func(s *SubscriptionService) {
		s.ai = ai
		if maxConcurrent > 0 {
			s.aiSem = make(chan struct{}, maxConcurrent)
		}
	}
}

func WithBatchConcurrency(n int) Option {
	return func(s *SubscriptionService) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

func NewSubscriptionService(parser ports.ParserPort, log zerolog.Logger, opts ...Option) *SubscriptionService {
	s := &SubscriptionService{
		parser:     parser,
		log:        log,
		batchLimit: 8,
		aiSem:      make(chan struct{}, 3),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SubscriptionService) ParseEmail(ctx context.Context, email domain.Email) (domain.ParseResult, error) {
	if email.IsEmpty() {
		return domain.ParseResult{}, status.Error(codes.InvalidArgument, "email is empty")
	}
	return s.parse(ctx, email), nil
}

// ParseBatch parses emails concurrently; results keep input order and a
// failed email never affects the others.
func (s *SubscriptionService) ParseBatch(ctx context.Context, emails []domain.Email) ([]domain.ParseResult, error) {
	if len(emails) == 0 {
		return nil, status.Error(codes.InvalidArgument, "emails is empty")
	}
	if len(emails) > MaxBatchSize {
		return nil, status.Errorf(codes.InvalidArgument, "batch of %d exceeds limit %d", len(emails), MaxBatchSize)
	}

	results := make([]domain.ParseResult, len(emails))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, email := range emails {
		g.Go(func() error {
			if email.IsEmpty() {
				results[i] = domain.Failed("email is empty", domain.MethodFailed)
				return nil
			}
			results[i] = s.parse(gctx, email)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	return results, nil
}

func (s *SubscriptionService) InferCategory(_ context.Context, merchantName string) string {
	return s.parser.InferCategory(strings.TrimSpace(merchantName))
}

func (s *SubscriptionService) parse(ctx context.Context, email domain.Email) domain.ParseResult {
	log := s.loggerFor(ctx)

	res := s.parser.Parse(email)
	if !res.Success && s.ai != nil {
		res = s.escalate(ctx, log, email, res)
	}

	ev := log.Info()
	if !res.Success {
		ev = log.Warn().Str("error", res.Error)
	}
	ev = ev.Str("method", string(res.Method)).Bool("success", res.Success)
	if res.Data != nil {
		ev = ev.Str("merchant", res.Data.MerchantName).
			Str("amount", res.Data.Amount).
			Str("confidence", string(res.Data.Confidence))
	}
	ev.Msg("email parsed")
	return res
}

// escalate asks the LLM after the rule parser failed. Any LLM error keeps the
// original failed result.
func (s *SubscriptionService) escalate(ctx context.Context, log zerolog.Logger, email domain.Email, failed domain.ParseResult) domain.ParseResult {
	select {
	case s.aiSem <- struct{}{}:
	case <-ctx.Done():
		return failed
	}
	defer func() { <-s.aiSem }()

	sub, err := s.ai.ExtractSubscription(ctx, email)
	if err != nil {
		log.Warn().Err(err).Msg("llm escalation failed")
		return failed
	}
	if sub.Category == "" {
		sub.Category = s.parser.InferCategory(sub.MerchantName)
	}
	return domain.Succeeded(sub, domain.MethodAI)
}

func (s *SubscriptionService) loggerFor(ctx context.Context) zerolog.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.log
}
