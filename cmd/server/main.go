package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/grpc"
	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/llm"
	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/parser"
	"github.com/cp25sy5-modjot/subscription-parser/internal/config"
	"github.com/cp25sy5-modjot/subscription-parser/internal/logger"
	"github.com/cp25sy5-modjot/subscription-parser/internal/pkg/grpcserver"
	"github.com/cp25sy5-modjot/subscription-parser/internal/usecase"
)

func main() {
	cfg, err := config.Load(os.Getenv("SUBSCAN_CONFIG"))
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Adapters (infrastructure)
	parserAdapter := parser.NewRulesParser()
	opts := []usecase.Option{usecase.WithBatchConcurrency(cfg.Parser.BatchConcurrency)}
	if cfg.LLM.Enabled {
		llmAdapter := llm.NewAdapter(llm.Options{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, log)
		opts = append(opts, usecase.WithAIExtractor(llmAdapter, cfg.LLM.MaxConcurrency))
	}

	// Application service (use cases)
	svc := usecase.NewSubscriptionService(parserAdapter, log, opts...)

	// gRPC server (interface adapter)
	s := grpcserver.New(cfg.GRPC.Addr, log)
	grpc.RegisterSubscriptionParserServer(s.Server, grpc.NewHandler(svc))
	s.SetServing(grpc.ServiceName, true)

	// Start
	go func() {
		log.Info().Str("addr", cfg.GRPC.Addr).Bool("llm", cfg.LLM.Enabled).Msg("subscription parser gRPC listening")
		if err := s.Start(); err != nil {
			log.Fatal().Err(err).Msg("gRPC serve error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	log.Info().Msg("Shutting down...")
	s.Stop()
}
