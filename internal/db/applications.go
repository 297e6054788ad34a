package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talexa/talexa/internal/types"
)

const applicationColumns = `id, job_id, applicant_name, applicant_email, resume_url,
	resume_text, skills_extracted, experience_years, education_level,
	match_score, analysis_result, created_at, updated_at`

// ApplicationCreateInput holds a fully analyzed application ready to persist.
type ApplicationCreateInput struct {
	JobID          uuid.UUID
	ApplicantName  string
	ApplicantEmail string
	ResumeURL      string
	ResumeText     string
	Analysis       *types.AnalysisResult
}

// CreateApplication inserts an application with its analysis outcome
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*types.Application, error) {
	skillsJSON, err := json.Marshal(input.Analysis.Profile.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	analysisJSON, err := json.Marshal(input.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, applicant_name, applicant_email, resume_url,
		                           resume_text, skills_extracted, experience_years,
		                           education_level, match_score, analysis_result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		input.JobID, input.ApplicantName, input.ApplicantEmail, input.ResumeURL,
		input.ResumeText, skillsJSON, input.Analysis.Profile.Years(),
		input.Analysis.Profile.EducationLevel, input.Analysis.Match.Score, analysisJSON,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return db.GetApplication(ctx, id)
}

// GetApplication retrieves an application by ID. Returns nil without error
// when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ApplicationExists reports whether the applicant already applied to the job
func (db *DB) ApplicationExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_email = $2)`,
		jobID, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// ApplicationFilters narrows ListApplications results.
type ApplicationFilters struct {
	JobID    *uuid.UUID
	MinScore *float64
	Limit    int
}

// ListApplications retrieves applications ordered by match score, best first.
// Unanalyzed applications sort last.
func (db *DB) ListApplications(ctx context.Context, filters ApplicationFilters) ([]types.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications`
	args := []any{}
	where := ""
	if filters.JobID != nil {
		args = append(args, *filters.JobID)
		where = fmt.Sprintf(" WHERE job_id = $%d", len(args))
	}
	if filters.MinScore != nil {
		args = append(args, *filters.MinScore)
		if where == "" {
			where = fmt.Sprintf(" WHERE match_score >= $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND match_score >= $%d", len(args))
		}
	}
	query += where + ` ORDER BY match_score DESC NULLS LAST, created_at ASC`
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []types.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// TopCandidates returns the n best-scoring applications for a job
func (db *DB) TopCandidates(ctx context.Context, jobID uuid.UUID, n int) ([]types.Application, error) {
	return db.ListApplications(ctx, ApplicationFilters{JobID: &jobID, Limit: n})
}

// ListByJob returns every application for a job
func (db *DB) ListByJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error) {
	return db.ListApplications(ctx, ApplicationFilters{JobID: &jobID})
}

// UpdateApplicationAnalysis replaces the analysis outcome of a stored
// application, typically after re-analysis against changed requirements
func (db *DB) UpdateApplicationAnalysis(ctx context.Context, id uuid.UUID, analysis *types.AnalysisResult) error {
	skillsJSON, err := json.Marshal(analysis.Profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET skills_extracted = $1, experience_years = $2, education_level = $3,
		     match_score = $4, analysis_result = $5, updated_at = NOW()
		 WHERE id = $6`,
		skillsJSON, analysis.Profile.Years(), analysis.Profile.EducationLevel,
		analysis.Match.Score, analysisJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// DeleteApplication removes an application
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

func scanApplication(row pgx.Row) (*types.Application, error) {
	var a types.Application
	var skillsJSON, analysisJSON []byte

	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantName, &a.ApplicantEmail, &a.ResumeURL,
		&a.ResumeText, &skillsJSON, &a.ExperienceYears, &a.EducationLevel,
		&a.MatchScore, &analysisJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &a.SkillsExtracted)
	}
	if a.SkillsExtracted == nil {
		a.SkillsExtracted = []string{}
	}
	if analysisJSON != nil {
		_ = json.Unmarshal(analysisJSON, &a.AnalysisResult)
	}
	return &a, nil
}
