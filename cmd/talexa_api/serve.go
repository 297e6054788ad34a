package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/analysis"
	"github.com/talexa/talexa/internal/config"
	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/matching"
	"github.com/talexa/talexa/internal/observability"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/server"
	"github.com/talexa/talexa/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes job postings, application submission, and candidate ranking endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	storageCfg, err := config.NewStorageConfig()
	if err != nil {
		database.Close()
		return err
	}
	files, err := storage.NewResumeStore(ctx, storage.Config{
		Endpoint:  storageCfg.Endpoint,
		Region:    storageCfg.Region,
		AccessKey: storageCfg.AccessKey,
		SecretKey: storageCfg.SecretKey,
		Bucket:    storageCfg.Bucket,
	})
	if err != nil {
		database.Close()
		return err
	}

	client, err := analysis.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create model client: %w", err)
	}

	analyzer := analysis.NewAnalyzer(client, analysis.Config{
		Timeout: cfg.AnalysisTimeout,
	}, logger)
	scorer := matching.NewScorer(matching.DefaultConfig())
	orchestrator := pipeline.NewOrchestrator(nil, analyzer, scorer, logger)

	srv, err := server.New(cfg, server.Deps{
		Jobs:         database,
		Applications: database,
		Recruiters:   database,
		Files:        files,
		Processor:    orchestrator,
		Logger:       logger,
		Shutdown: func() {
			_ = client.Close()
			database.Close()
		},
	})
	if err != nil {
		_ = client.Close()
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting talexa api",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.GeminiModel),
	)
	return srv.Start()
}
