package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/talexa/talexa/internal/config"
	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/types"
)

// RecruiterStore is the persistence surface the recruiter service needs.
type RecruiterStore interface {
	CreateRecruiter(ctx context.Context, name, email, company, passwordHash string) (uuid.UUID, error)
	GetRecruiter(ctx context.Context, id uuid.UUID) (*db.Recruiter, error)
	GetRecruiterByEmail(ctx context.Context, email string) (*db.Recruiter, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// RecruiterService provides business logic for recruiter account operations.
type RecruiterService struct {
	store          RecruiterStore
	passwordConfig *config.PasswordConfig
}

// NewRecruiterService creates a RecruiterService with the given dependencies.
func NewRecruiterService(store RecruiterStore, passwordConfig *config.PasswordConfig) *RecruiterService {
	return &RecruiterService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// toAPIRecruiter strips the password hash for API responses.
func toAPIRecruiter(r *db.Recruiter) *types.Recruiter {
	if r == nil {
		return nil
	}
	account := r.Recruiter
	return &account
}

// Register creates a new recruiter account.
func (s *RecruiterService) Register(ctx context.Context, req *types.RegisterRequest) (*types.Recruiter, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.store.CreateRecruiter(ctx, req.Name, req.Email, req.Company, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create recruiter: %w", err)
	}

	created, err := s.store.GetRecruiter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created recruiter: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("created recruiter not found: %s", id)
	}
	return toAPIRecruiter(created), nil
}

// Login authenticates a recruiter. A missing account and a wrong password
// produce the same generic error.
func (s *RecruiterService) Login(ctx context.Context, req *types.LoginRequest) (*types.Recruiter, error) {
	account, err := s.store.GetRecruiterByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get recruiter by email: %w", err)
	}
	if account == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toAPIRecruiter(account), nil
}

// UpdatePassword changes a recruiter's password after verifying the current
// one.
func (s *RecruiterService) UpdatePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	account, err := s.store.GetRecruiter(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get recruiter: %w", err)
	}
	if account == nil {
		return &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(currentPassword, account.PasswordHash) {
		return &ErrInvalidCredentials{}
	}

	passwordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, id, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
