// Package matching computes deterministic candidate-to-job match scores.
//
// Scoring is a pure function of an extracted profile and job requirements:
// no I/O, no randomness, identical inputs always yield an identical result.
package matching

import (
	"github.com/talexa/talexa/internal/types"
)

// Weights holds the per-category weights of the overall score.
type Weights struct {
	Skills     float64
	Experience float64
	Education  float64
}

// Thresholds holds the lower bounds of the match-category bands, inclusive.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// Match-category labels.
const (
	CategoryExcellent = "Excellent Match"
	CategoryGood      = "Good Match"
	CategoryFair      = "Fair Match"
	CategoryPoor      = "Poor Match"
)

// Config holds the scorer's immutable scoring policy.
type Config struct {
	Weights    Weights
	Thresholds Thresholds
	Education  EducationScale
}

// DefaultConfig returns the default scoring policy: skills 50%, experience
// 30%, education 20%, with the standard category bands and education scale.
func DefaultConfig() Config {
	return Config{
		Weights:    Weights{Skills: 0.5, Experience: 0.3, Education: 0.2},
		Thresholds: Thresholds{Excellent: 0.8, Good: 0.6, Fair: 0.4},
		Education:  DefaultEducationScale(),
	}
}

// Scorer computes MatchResults under a fixed scoring policy.
type Scorer struct {
	weights    Weights
	thresholds Thresholds
	education  EducationScale
}

// NewScorer creates a scorer with the given policy.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{
		weights:    cfg.Weights,
		thresholds: cfg.Thresholds,
		education:  cfg.Education,
	}
}

// Score combines the extracted profile with the job requirements into a
// single MatchResult. The overall score is the weighted sum of the three
// sub-scores, clamped to [0,1].
func (s *Scorer) Score(profile types.ExtractedProfile, reqs types.JobRequirements) types.MatchResult {
	matched, missing, skillsScore := scoreSkills(profile.Skills, reqs.Skills)
	experienceScore := scoreExperience(profile.Years(), reqs.MinimumExperience)
	educationScore := s.education.Score(profile.EducationLevel, reqs.EducationLevel)

	overall := clamp01(s.weights.Skills*skillsScore +
		s.weights.Experience*experienceScore +
		s.weights.Education*educationScore)

	return types.MatchResult{
		Score:           overall,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		SkillsScore:     skillsScore,
		ExperienceScore: experienceScore,
		EducationScore:  educationScore,
		Category:        s.Category(overall),
	}
}

// Category returns the label for a score. Band lower bounds are inclusive.
func (s *Scorer) Category(score float64) string {
	switch {
	case score >= s.thresholds.Excellent:
		return CategoryExcellent
	case score >= s.thresholds.Good:
		return CategoryGood
	case score >= s.thresholds.Fair:
		return CategoryFair
	default:
		return CategoryPoor
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
