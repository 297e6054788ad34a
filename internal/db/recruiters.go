package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talexa/talexa/internal/types"
)

// Recruiter is the stored recruiter account, including the password hash.
type Recruiter struct {
	types.Recruiter
	PasswordHash string `json:"-"`
}

// CreateRecruiter inserts a recruiter account and returns its ID
func (db *DB) CreateRecruiter(ctx context.Context, name, email, company, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO recruiters (name, email, company, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, company, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create recruiter: %w", err)
	}
	return id, nil
}

// GetRecruiter retrieves a recruiter by ID. Returns nil without error when
// not found.
func (db *DB) GetRecruiter(ctx context.Context, id uuid.UUID) (*Recruiter, error) {
	var r Recruiter
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, company, password_hash, created_at, updated_at
		 FROM recruiters WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Name, &r.Email, &r.Company, &r.PasswordHash, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recruiter: %w", err)
	}
	return &r, nil
}

// GetRecruiterByEmail retrieves a recruiter by email. Returns nil without
// error when not found.
func (db *DB) GetRecruiterByEmail(ctx context.Context, email string) (*Recruiter, error) {
	var r Recruiter
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, company, password_hash, created_at, updated_at
		 FROM recruiters WHERE email = $1`,
		email,
	).Scan(&r.ID, &r.Name, &r.Email, &r.Company, &r.PasswordHash, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recruiter by email: %w", err)
	}
	return &r, nil
}

// CheckEmailExists reports whether a recruiter account uses the email
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM recruiters WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a recruiter's password hash
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE recruiters SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recruiter not found: %s", id)
	}
	return nil
}
