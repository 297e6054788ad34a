package analysis

import (
	"strings"

	"github.com/talexa/talexa/internal/prompts"
	"github.com/talexa/talexa/internal/types"
)

// BuildAnalysisPrompt constructs the structured prompt embedding the job's
// requirements and the resume text.
func BuildAnalysisPrompt(resumeText string, reqs types.JobRequirements) string {
	template := prompts.MustGet("analysis.json", "resume-analysis")

	return prompts.Format(template, map[string]string{
		"ResumeText":        resumeText,
		"JobTitle":          orNA(reqs.JobTitle),
		"RequiredSkills":    orNA(strings.Join(reqs.Skills, ", ")),
		"MinimumExperience": orNA(reqs.MinimumExperience),
		"Description":       orNA(reqs.Description),
	})
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
