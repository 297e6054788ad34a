package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/talexa/talexa/internal/extraction"
)

// ErrEmailAlreadyExists indicates the email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrJobNotFound indicates the job posting was not found
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrJobClosed indicates the job no longer accepts applications
type ErrJobClosed struct {
	JobID uuid.UUID
}

func (e *ErrJobClosed) Error() string {
	return fmt.Sprintf("job is closed: %s", e.JobID)
}

// ErrApplicationNotFound indicates the application was not found
type ErrApplicationNotFound struct {
	ApplicationID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ApplicationID)
}

// ErrDuplicateApplication indicates the applicant already applied to the job
type ErrDuplicateApplication struct {
	Email string
}

func (e *ErrDuplicateApplication) Error() string {
	return fmt.Sprintf("an application from %s already exists for this job", e.Email)
}

// ErrFileTooLarge indicates the uploaded resume exceeds the size limit
type ErrFileTooLarge struct {
	MaxBytes int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("resume exceeds the maximum size of %d bytes", e.MaxBytes)
}

// ErrFileTypeNotAllowed indicates the uploaded file type is not accepted
type ErrFileTypeNotAllowed struct {
	Extension string
}

func (e *ErrFileTypeNotAllowed) Error() string {
	return fmt.Sprintf("file type not allowed: %s", e.Extension)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Extraction failures map to 400: the uploaded document, not the server,
// is at fault.
func HTTPStatus(err error) int {
	var unsupported *extraction.ErrUnsupportedFormat
	var empty *extraction.ErrEmptyDocument
	var failed *extraction.ErrExtractionFailed
	switch {
	case errors.As(err, &unsupported), errors.As(err, &empty), errors.As(err, &failed):
		return http.StatusBadRequest
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrDuplicateApplication:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrJobNotFound, *ErrApplicationNotFound:
		return http.StatusNotFound
	case *ErrJobClosed:
		return http.StatusConflict
	case *ErrValidation, *ErrFileTooLarge, *ErrFileTypeNotAllowed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
