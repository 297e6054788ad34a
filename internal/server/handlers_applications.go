package server

import (
	"io"
	"net/http"
	"net/mail"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/extraction"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/storage"
	"github.com/talexa/talexa/internal/types"
)

// handleSubmitApplication accepts a multipart form with applicant_name,
// applicant_email, and a resume file, runs the analysis pipeline, and
// persists the scored application. Extraction failures reject the
// submission; analyzer failures do not.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.logger.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}
	if job.Status != types.JobStatusActive {
		jobErr := &ErrJobClosed{JobID: jobID}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxResumeBytes+64*1024)
	if err := r.ParseMultipartForm(s.cfg.MaxResumeBytes); err != nil {
		sizeErr := &ErrFileTooLarge{MaxBytes: s.cfg.MaxResumeBytes}
		s.errorResponse(w, HTTPStatus(sizeErr), sizeErr.Error())
		return
	}

	name := strings.TrimSpace(r.FormValue("applicant_name"))
	email := strings.TrimSpace(r.FormValue("applicant_email"))
	if name == "" {
		vErr := &ErrValidation{Field: "applicant_name", Message: "is required"}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		vErr := &ErrValidation{Field: "applicant_email", Message: "must be a valid email address"}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}

	exists, err := s.applications.ApplicationExists(r.Context(), jobID, email)
	if err != nil {
		s.logger.Error("failed to check duplicate application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to check application")
		return
	}
	if exists {
		dupErr := &ErrDuplicateApplication{Email: email}
		s.errorResponse(w, HTTPStatus(dupErr), dupErr.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		vErr := &ErrValidation{Field: "resume", Message: "file is required"}
		s.errorResponse(w, HTTPStatus(vErr), vErr.Error())
		return
	}
	defer file.Close()

	if err := s.validateResumeFile(header.Filename, header.Size); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxResumeBytes+1))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to read resume")
		return
	}
	if int64(len(data)) > s.cfg.MaxResumeBytes {
		sizeErr := &ErrFileTooLarge{MaxBytes: s.cfg.MaxResumeBytes}
		s.errorResponse(w, HTTPStatus(sizeErr), sizeErr.Error())
		return
	}

	format := extraction.FormatFromFilename(header.Filename)
	result, resumeText, err := s.processor.Process(r.Context(), data, format, job.Requirements())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	key := storage.ResumeKey(jobID, email, header.Filename)
	resumeURL, err := s.files.Upload(r.Context(), key, data, header.Header.Get("Content-Type"))
	if err != nil {
		s.logger.Error("failed to store resume", zap.String("key", key), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to store resume")
		return
	}

	app, err := s.applications.CreateApplication(r.Context(), &db.ApplicationCreateInput{
		JobID:          jobID,
		ApplicantName:  name,
		ApplicantEmail: email,
		ResumeURL:      resumeURL,
		ResumeText:     resumeText,
		Analysis:       result,
	})
	if err != nil {
		s.logger.Error("failed to create application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create application")
		return
	}

	s.logger.Info("application submitted",
		zap.String("job_id", jobID.String()),
		zap.String("application_id", app.ID.String()),
		zap.Float64("score", result.Match.Score),
		zap.Bool("degraded", result.Degraded),
	)
	s.jsonResponse(w, http.StatusCreated, app)
}

// validateResumeFile checks the upload against the configured allow-list and
// size limit.
func (s *Server) validateResumeFile(filename string, size int64) error {
	if size > s.cfg.MaxResumeBytes {
		return &ErrFileTooLarge{MaxBytes: s.cfg.MaxResumeBytes}
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	for _, allowed := range s.cfg.AllowedResumeTypes {
		if ext == allowed {
			return nil
		}
	}
	return &ErrFileTypeNotAllowed{Extension: ext}
}

// handleListApplications lists applications with optional ?job_id= and
// ?min_score= filters, best matches first
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	filters := db.ApplicationFilters{}

	if raw := r.URL.Query().Get("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job_id")
			return
		}
		filters.JobID = &jobID
	}
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil || minScore < 0 || minScore > 1 {
			s.errorResponse(w, http.StatusBadRequest, "min_score must be between 0 and 1")
			return
		}
		filters.MinScore = &minScore
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filters.Limit = limit
	}

	apps, err := s.applications.ListApplications(r.Context(), filters)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

// handleGetApplication retrieves a single application
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.applications.GetApplication(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if app == nil {
		appErr := &ErrApplicationNotFound{ApplicationID: id}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleDownloadResume streams the stored resume file back to the recruiter
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.applications.GetApplication(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if app == nil {
		appErr := &ErrApplicationNotFound{ApplicationID: id}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	data, err := s.files.Download(r.Context(), app.ResumeURL)
	if err != nil {
		s.logger.Error("failed to download resume", zap.String("key", app.ResumeURL), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to download resume")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(app.ResumeURL)+`"`)
	_, _ = w.Write(data)
}

// handleDeleteApplication removes an application and its stored resume
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.applications.GetApplication(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if app == nil {
		appErr := &ErrApplicationNotFound{ApplicationID: id}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	if err := s.applications.DeleteApplication(r.Context(), id); err != nil {
		s.logger.Error("failed to delete application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete application")
		return
	}

	// Best effort: the application row is already gone.
	if err := s.files.Delete(r.Context(), app.ResumeURL); err != nil {
		s.logger.Warn("failed to delete stored resume", zap.String("key", app.ResumeURL), zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleReanalyzeApplication re-runs analysis for a single application
// against its job's current requirements.
func (s *Server) handleReanalyzeApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.applications.GetApplication(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get application")
		return
	}
	if app == nil {
		appErr := &ErrApplicationNotFound{ApplicationID: id}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	job, err := s.jobs.GetJob(r.Context(), app.JobID)
	if err != nil {
		s.logger.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: app.JobID}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	inputs := []pipeline.ReanalyzeInput{{ApplicationID: app.ID, ResumeText: app.ResumeText}}
	outputs, err := s.processor.Reanalyze(r.Context(), inputs, job.Requirements(), 1)
	if err != nil {
		s.logger.Error("re-analysis failed", zap.String("application_id", id.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "re-analysis failed")
		return
	}
	if len(outputs) != 1 || outputs[0].Result == nil {
		s.errorResponse(w, http.StatusInternalServerError, "re-analysis produced no result")
		return
	}

	if err := s.applications.UpdateApplicationAnalysis(r.Context(), id, outputs[0].Result); err != nil {
		s.logger.Error("failed to persist re-analysis", zap.String("application_id", id.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to persist re-analysis")
		return
	}

	refreshed, err := s.applications.GetApplication(r.Context(), id)
	if err != nil || refreshed == nil {
		s.logger.Error("failed to reload application", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to reload application")
		return
	}
	s.jsonResponse(w, http.StatusOK, refreshed)
}
