package analysis

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxLogLength = 200
)

// Config holds the analyzer's immutable configuration, constructed explicitly
// and passed in rather than read from ambient state. The model choice lives
// on the client.
type Config struct {
	Timeout      time.Duration
	MaxLogLength int
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      defaultTimeout,
		MaxLogLength: defaultMaxLogLength,
	}
}

// Result is the outcome of analyzing a resume. The matched/missing skill
// lists are model-reported and informational only; the scorer recomputes them
// authoritatively.
type Result struct {
	Profile       types.ExtractedProfile
	MatchedSkills []string
	MissingSkills []string

	// Degraded indicates the outbound call failed or returned unusable
	// content and the fallback profile was substituted.
	Degraded       bool
	DegradedReason string
}

// Analyzer produces an ExtractedProfile for resume text against job
// requirements via a single bounded outbound model call.
type Analyzer struct {
	client    Client
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// NewAnalyzer creates an analyzer from a client and configuration.
func NewAnalyzer(client Client, cfg Config, logger *zap.Logger) *Analyzer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		client:    client,
		timeout:   cfg.Timeout,
		maxLogLen: cfg.MaxLogLength,
		logger:    logger,
	}
}

// Analyze sends the resume text and requirements to the model and returns a
// structured result. It never fails outward: any outbound-call error, timeout,
// or unparsable response yields the deterministic fallback profile so
// downstream stages always receive a well-formed value.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string, reqs types.JobRequirements) *Result {
	prompt := BuildAnalysisPrompt(resumeText, reqs)

	a.logger.Debug("resume analysis request",
		zap.String("job_title", reqs.JobTitle),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", truncateForLog(prompt, a.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.GenerateJSON(callCtx, prompt)
	if err != nil {
		a.logger.Warn("resume analysis degraded: model call failed",
			zap.String("job_title", reqs.JobTitle),
			zap.Error(err),
		)
		return a.fallback(reqs, "model call failed: "+err.Error())
	}

	a.logger.Debug("resume analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateForLog(raw, a.maxLogLen)),
	)

	parsed, err := parseResponse(raw)
	if err != nil {
		a.logger.Warn("resume analysis degraded: unparsable response",
			zap.String("job_title", reqs.JobTitle),
			zap.Error(err),
		)
		return a.fallback(reqs, "unparsable response: "+err.Error())
	}

	years := parsed.ExperienceYears
	return &Result{
		Profile: types.ExtractedProfile{
			Skills:          parsed.Skills,
			ExperienceYears: &years,
			EducationLevel:  parsed.EducationLevel,
			Summary:         parsed.Summary,
			KeyAchievements: parsed.KeyAchievements,
		},
		MatchedSkills: parsed.MatchedSkills,
		MissingSkills: parsed.MissingSkills,
	}
}

// fallback returns the deterministic degraded result: empty skills, zero
// experience, unknown education, empty summary.
func (a *Analyzer) fallback(reqs types.JobRequirements, reason string) *Result {
	zero := 0
	missing := make([]string, len(reqs.Skills))
	copy(missing, reqs.Skills)

	return &Result{
		Profile: types.ExtractedProfile{
			Skills:          []string{},
			ExperienceYears: &zero,
			EducationLevel:  "Unknown",
		},
		MatchedSkills:  []string{},
		MissingSkills:  missing,
		Degraded:       true,
		DegradedReason: reason,
	}
}

// truncateForLog shortens text for log previews.
func truncateForLog(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}
