// Package types holds the domain model shared across the service: jobs,
// applications, and the analysis structures produced by the resume pipeline.
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Job is a posted position that applications are matched against.
type Job struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"job_title"`
	Description       string    `json:"description"`
	MinimumExperience string    `json:"minimum_experience"`
	EducationLevel    string    `json:"education_level"`
	Vacancies         int       `json:"number_of_vacancies"`
	Skills            []string  `json:"skills"`
	Status            JobStatus `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Requirements projects the job onto the subset the analysis pipeline needs.
// The skills slice is copied so pipeline stages cannot mutate the job.
func (j *Job) Requirements() JobRequirements {
	skills := make([]string, len(j.Skills))
	copy(skills, j.Skills)
	return JobRequirements{
		JobTitle:          j.Title,
		Description:       j.Description,
		Skills:            skills,
		MinimumExperience: j.MinimumExperience,
		EducationLevel:    j.EducationLevel,
	}
}

// JobRequirements is the job-side input to resume analysis and scoring.
type JobRequirements struct {
	JobTitle          string   `json:"job_title"`
	Description       string   `json:"description"`
	Skills            []string `json:"skills"`
	MinimumExperience string   `json:"minimum_experience"`
	EducationLevel    string   `json:"education_level"`
}

// Application is a candidate's submission for a job, including the outcome
// of the analysis pipeline once it has run.
type Application struct {
	ID              uuid.UUID       `json:"id"`
	JobID           uuid.UUID       `json:"job_id"`
	ApplicantName   string          `json:"applicant_name"`
	ApplicantEmail  string          `json:"applicant_email"`
	ResumeURL       string          `json:"resume_url"`
	ResumeText      string          `json:"-"`
	SkillsExtracted []string        `json:"skills_extracted"`
	ExperienceYears *int            `json:"experience_years,omitempty"`
	EducationLevel  *string         `json:"education_level,omitempty"`
	MatchScore      *float64        `json:"match_score,omitempty"`
	AnalysisResult  *AnalysisResult `json:"analysis_result,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
