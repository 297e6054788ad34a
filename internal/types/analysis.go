package types

// ExtractedProfile is the structured candidate profile pulled out of a
// resume by the analyzer.
type ExtractedProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	EducationLevel  string   `json:"education_level"`
	Summary         string   `json:"summary"`
	KeyAchievements []string `json:"key_achievements,omitempty"`
}

// Years returns the candidate's years of experience, treating an absent
// value as zero.
func (p ExtractedProfile) Years() int {
	if p.ExperienceYears == nil {
		return 0
	}
	return *p.ExperienceYears
}

// MatchResult is the deterministic scoring outcome for one candidate
// against one job.
type MatchResult struct {
	Score           float64  `json:"score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	SkillsScore     float64  `json:"skills_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	Category        string   `json:"category"`
}

// AnalysisResult bundles the extracted profile with its match score.
// Degraded marks results built from the fallback profile after an analyzer
// failure; the match is still computed so the application remains rankable.
type AnalysisResult struct {
	Profile        ExtractedProfile `json:"profile"`
	Match          MatchResult      `json:"match"`
	Degraded       bool             `json:"degraded"`
	DegradedReason string           `json:"degraded_reason,omitempty"`
}
