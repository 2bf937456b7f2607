package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrEmptyResponse   = errors.New("llm returned empty response")
	ErrNotSubscription = errors.New("llm says email is not a subscription")
	ErrInvalidResponse = errors.New("llm returned invalid subscription")
)

type Options struct {
	BaseURL string // empty for api.openai.com, http://host:11434/v1 for Ollama
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Adapter struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

func NewAdapter(opts Options, log zerolog.Logger) *Adapter {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}

	return &Adapter{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		log:    log.With().Str("component", "llm").Str("model", opts.Model).Logger(),
	}
}

func (a *Adapter) ExtractSubscription(ctx context.Context, email domain.Email) (*domain.ParsedSubscription, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(email)},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		a.log.Error().Err(err).Msg("chat completion failed")
		return nil, fmt.Errorf("llm request: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	raw := resp.Choices[0].Message.Content
	a.log.Debug().Str("full_response", raw).Msg("llm response")

	var out aiSubscription
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		a.log.Error().Err(err).Str("raw_text", raw).Msg("failed to unmarshal subscription JSON from llm")
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return toSubscription(out)
}

// toSubscription validates model output; enums it cannot trust fall back to
// the same defaults the rule parser uses.
func toSubscription(s aiSubscription) (*domain.ParsedSubscription, error) {
	if !s.IsSubscription {
		return nil, ErrNotSubscription
	}
	name := strings.TrimSpace(s.MerchantName)
	if name == "" {
		return nil, fmt.Errorf("%w: empty merchant", ErrInvalidResponse)
	}
	amt, err := decimal.NewFromString(strings.ReplaceAll(s.Amount.String(), ",", ""))
	if err != nil || amt.IsNegative() {
		return nil, fmt.Errorf("%w: bad amount %q", ErrInvalidResponse, s.Amount.String())
	}

	sub := &domain.ParsedSubscription{
		MerchantName: name,
		PlanName:     strings.TrimSpace(s.PlanName),
		Amount:       amt.StringFixed(2),
		Currency:     "USD",
		BillingCycle: domain.BillingCycle(strings.ToLower(s.BillingCycle)),
		Status:       domain.Status(strings.ToLower(s.Status)),
		Confidence:   domain.ConfidenceLow,
	}
	if u, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(s.Currency))); err == nil {
		sub.Currency = u.String()
	}
	if !sub.BillingCycle.Valid() {
		sub.BillingCycle = domain.CycleMonthly
	}
	if !sub.Status.Valid() {
		sub.Status = domain.StatusActive
	}
	if sub.Status == domain.StatusTrial {
		if d, err := time.Parse(time.DateOnly, strings.TrimSpace(s.TrialEndDate)); err == nil {
			sub.TrialEndDate = d.Format(time.DateOnly)
		}
	}
	if domain.IsCategory(s.Category) {
		sub.Category = s.Category
	}
	return sub, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
