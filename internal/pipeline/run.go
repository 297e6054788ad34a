// Package pipeline orchestrates resume processing: text extraction, model
// analysis, and match scoring, in that order.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/analysis"
	"github.com/talexa/talexa/internal/extraction"
	"github.com/talexa/talexa/internal/types"
)

// Analyzer extracts a structured profile from resume text. Implementations
// must not fail outward; a degraded result carries the fallback profile.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText string, reqs types.JobRequirements) *analysis.Result
}

// Scorer computes the deterministic match between a profile and the job
// requirements.
type Scorer interface {
	Score(profile types.ExtractedProfile, reqs types.JobRequirements) types.MatchResult
}

// ExtractFunc converts raw resume bytes into plain text.
type ExtractFunc func(data []byte, format extraction.Format) (string, error)

// Orchestrator runs the analysis pipeline for one resume at a time. It is
// safe for concurrent use.
type Orchestrator struct {
	extract  ExtractFunc
	analyzer Analyzer
	scorer   Scorer
	logger   *zap.Logger
}

// NewOrchestrator wires the pipeline stages together. A nil extract falls
// back to the standard extractor; a nil logger disables logging.
func NewOrchestrator(extract ExtractFunc, analyzer Analyzer, scorer Scorer, logger *zap.Logger) *Orchestrator {
	if extract == nil {
		extract = extraction.Extract
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		extract:  extract,
		analyzer: analyzer,
		scorer:   scorer,
		logger:   logger,
	}
}

// Process runs the full pipeline on raw resume bytes: extract text, analyze
// it, score the match. Extraction failures (unsupported format, corrupt or
// empty document) are returned to the caller before any outbound call is
// made. Analyzer failures never surface as errors; they yield a degraded
// result. A cancelled context aborts between stages so no partial result is
// handed back for persistence.
func (o *Orchestrator) Process(ctx context.Context, data []byte, format extraction.Format, reqs types.JobRequirements) (*types.AnalysisResult, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	resumeText, err := o.extract(data, format)
	if err != nil {
		o.logger.Warn("resume extraction failed",
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return nil, "", err
	}

	result, err := o.AnalyzeText(ctx, resumeText, reqs)
	if err != nil {
		return nil, "", err
	}
	return result, resumeText, nil
}

// AnalyzeText runs the analysis and scoring stages on already-extracted
// resume text. Used directly when re-analyzing stored applications.
func (o *Orchestrator) AnalyzeText(ctx context.Context, resumeText string, reqs types.JobRequirements) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analyzed := o.analyzer.Analyze(ctx, resumeText, reqs)

	// The analyzer swallows cancellation into a degraded result; a caller
	// that cancelled must not persist it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	match := o.scorer.Score(analyzed.Profile, reqs)

	if analyzed.Degraded {
		o.logger.Info("analysis degraded, scored fallback profile",
			zap.String("job_title", reqs.JobTitle),
			zap.String("reason", analyzed.DegradedReason),
			zap.Float64("score", match.Score),
		)
	}

	return &types.AnalysisResult{
		Profile:        analyzed.Profile,
		Match:          match,
		Degraded:       analyzed.Degraded,
		DegradedReason: analyzed.DegradedReason,
	}, nil
}
