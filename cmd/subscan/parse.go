package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/llm"
	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/parser"
	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/cp25sy5-modjot/subscription-parser/internal/usecase"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type parseOutput struct {
	Source string             `json:"source"`
	Result domain.ParseResult `json:"result"`
}

func parseCmd(a *app) *cobra.Command {
	var (
		concurrency int
		useAI       bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse emails from files or stdin",
		Long: `Parse emails and print one JSON result per email.

Each input is a JSON object {"subject","from","body","snippet"}, a JSON array of
such objects, or a message with Subject:/From: headers, a blank line and the body.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if concurrency <= 0 {
				concurrency = a.cfg.Parser.BatchConcurrency
			}
			opts := []usecase.Option{usecase.WithBatchConcurrency(concurrency)}
			if useAI {
				llmCfg := *a.cfg
				llmCfg.LLM.Enabled = true
				if err := llmCfg.Validate(); err != nil {
					return fmt.Errorf("--ai: %w", err)
				}
				ai := llm.NewAdapter(llm.Options{
					BaseURL: llmCfg.LLM.BaseURL,
					APIKey:  llmCfg.LLM.APIKey,
					Model:   llmCfg.LLM.Model,
					Timeout: llmCfg.LLM.Timeout,
				}, a.log)
				opts = append(opts, usecase.WithAIExtractor(ai, llmCfg.LLM.MaxConcurrency))
			}

			log := a.log.With().Str("run_id", uuid.NewString()).Logger()
			svc := usecase.NewSubscriptionService(parser.NewRulesParser(), log, opts...)

			emails := make([]domain.Email, len(sources))
			for i, s := range sources {
				emails[i] = s.Email
			}
			results := make([]domain.ParseResult, 0, len(emails))
			for start := 0; start < len(emails); start += usecase.MaxBatchSize {
				end := min(start+usecase.MaxBatchSize, len(emails))
				chunk, err := svc.ParseBatch(cmd.Context(), emails[start:end])
				if err != nil {
					return err
				}
				results = append(results, chunk...)
			}

			out := make([]parseOutput, len(results))
			for i, r := range results {
				out[i] = parseOutput{Source: sources[i].Source, Result: r}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel parses (default from parser.batch_concurrency)")
	cmd.Flags().BoolVar(&useAI, "ai", false, "escalate failed parses to the configured LLM")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
