package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talexa/talexa/internal/types"
)

// JobCreateInput holds the fields of a new job posting.
type JobCreateInput struct {
	Title             string
	Description       string
	MinimumExperience string
	EducationLevel    string
	Vacancies         int
	Skills            []string
}

// CreateJob inserts a new job posting and returns it
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*types.Job, error) {
	skillsJSON, err := json.Marshal(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (job_title, description, minimum_experience, education_level,
		                   number_of_vacancies, skills, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'active')
		 RETURNING id`,
		input.Title, input.Description, input.MinimumExperience, input.EducationLevel,
		input.Vacancies, skillsJSON,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return db.GetJob(ctx, id)
}

// GetJob retrieves a job by ID. Returns nil without error when not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var j types.Job
	var skillsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, description, minimum_experience, education_level,
		        number_of_vacancies, skills, status, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Description, &j.MinimumExperience, &j.EducationLevel,
		&j.Vacancies, &skillsJSON, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &j.Skills)
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	return &j, nil
}

// ListJobs retrieves job postings, optionally filtered by status, newest first
func (db *DB) ListJobs(ctx context.Context, status types.JobStatus) ([]types.Job, error) {
	query := `SELECT id, job_title, description, minimum_experience, education_level,
	                 number_of_vacancies, skills, status, created_at, updated_at
	          FROM jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.Job{}
	for rows.Next() {
		var j types.Job
		var skillsJSON []byte
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.MinimumExperience,
			&j.EducationLevel, &j.Vacancies, &skillsJSON, &j.Status,
			&j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if skillsJSON != nil {
			_ = json.Unmarshal(skillsJSON, &j.Skills)
		}
		if j.Skills == nil {
			j.Skills = []string{}
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// JobUpdateInput holds the updatable fields of a job posting.
type JobUpdateInput struct {
	Title             string
	Description       string
	MinimumExperience string
	EducationLevel    string
	Vacancies         int
	Skills            []string
	Status            types.JobStatus
}

// UpdateJob replaces a job's fields and returns the updated row
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobUpdateInput) (*types.Job, error) {
	skillsJSON, err := json.Marshal(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET job_title = $1, description = $2, minimum_experience = $3,
		     education_level = $4, number_of_vacancies = $5, skills = $6,
		     status = $7, updated_at = NOW()
		 WHERE id = $8`,
		input.Title, input.Description, input.MinimumExperience, input.EducationLevel,
		input.Vacancies, skillsJSON, input.Status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetJob(ctx, id)
}

// UpdateJobStatus changes only the lifecycle status of a job
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// DeleteJob removes a job posting and its applications
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job applications: %w", err)
	}
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}
