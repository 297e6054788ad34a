package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talexa/talexa/internal/analysis"
	"github.com/talexa/talexa/internal/extraction"
	"github.com/talexa/talexa/internal/matching"
	"github.com/talexa/talexa/internal/observability"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/types"
)

var (
	analyzeResume       string
	analyzeRequirements string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume file against job requirements",
	Long: `Run the extraction, analysis, and scoring pipeline on a local resume
file and print the match result as JSON. Requirements are read from a JSON
file with job_title, skills, minimum_experience, and education_level fields.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResume, "resume", "", "Path to the resume file (required)")
	analyzeCmd.Flags().StringVar(&analyzeRequirements, "requirements", "", "Path to the job requirements JSON file (required)")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("requirements")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	data, err := os.ReadFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	reqsData, err := os.ReadFile(analyzeRequirements)
	if err != nil {
		return fmt.Errorf("failed to read requirements: %w", err)
	}
	var reqs types.JobRequirements
	if err := json.Unmarshal(reqsData, &reqs); err != nil {
		return fmt.Errorf("failed to parse requirements: %w", err)
	}

	logger := observability.NewLogger(envOr("LOG_LEVEL", "warn"), "console")
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	model := envOr("GEMINI_MODEL", "gemini-2.5-flash")
	client, err := analysis.NewGeminiClient(ctx, apiKey, model)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	analyzer := analysis.NewAnalyzer(client, analysis.DefaultConfig(), logger)
	scorer := matching.NewScorer(matching.DefaultConfig())
	orchestrator := pipeline.NewOrchestrator(nil, analyzer, scorer, logger)

	format := extraction.FormatFromFilename(analyzeResume)
	result, _, err := orchestrator.Process(ctx, data, format, reqs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
