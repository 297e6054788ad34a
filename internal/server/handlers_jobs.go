package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/types"
)

// jobRequest is the request body for creating and updating job postings.
type jobRequest struct {
	Title             string   `json:"job_title"`
	Description       string   `json:"description"`
	MinimumExperience string   `json:"minimum_experience"`
	EducationLevel    string   `json:"education_level"`
	Vacancies         int      `json:"number_of_vacancies"`
	Skills            []string `json:"skills"`
	Status            string   `json:"status,omitempty"`
}

func (req *jobRequest) validate() error {
	if req.Title == "" {
		return &ErrValidation{Field: "job_title", Message: "is required"}
	}
	if req.Vacancies < 1 {
		return &ErrValidation{Field: "number_of_vacancies", Message: "must be at least 1"}
	}
	if req.Status != "" && req.Status != string(types.JobStatusActive) && req.Status != string(types.JobStatusClosed) {
		return &ErrValidation{Field: "status", Message: "must be active or closed"}
	}
	return nil
}

// handleCreateJob creates a job posting
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), &db.JobCreateInput{
		Title:             req.Title,
		Description:       req.Description,
		MinimumExperience: req.MinimumExperience,
		EducationLevel:    req.EducationLevel,
		Vacancies:         req.Vacancies,
		Skills:            req.Skills,
	})
	if err != nil {
		s.logger.Error("failed to create job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists job postings, filtered by ?status=
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := types.JobStatus(r.URL.Query().Get("status"))
	if status != "" && status != types.JobStatusActive && status != types.JobStatusClosed {
		s.errorResponse(w, http.StatusBadRequest, "status must be active or closed")
		return
	}

	jobs, err := s.jobs.ListJobs(r.Context(), status)
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleGetJob retrieves a single job posting
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob replaces a job posting's fields
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	status := types.JobStatus(req.Status)
	if status == "" {
		status = types.JobStatusActive
	}

	job, err := s.jobs.UpdateJob(r.Context(), id, &db.JobUpdateInput{
		Title:             req.Title,
		Description:       req.Description,
		MinimumExperience: req.MinimumExperience,
		EducationLevel:    req.EducationLevel,
		Vacancies:         req.Vacancies,
		Skills:            req.Skills,
		Status:            status,
	})
	if err != nil {
		s.logger.Error("failed to update job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to update job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCloseJob marks a job posting closed
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.jobs.UpdateJobStatus(r.Context(), id, types.JobStatusClosed); err != nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": string(types.JobStatusClosed)})
}

// handleDeleteJob removes a job posting, its applications, and their stored
// resumes
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	apps, err := s.applications.ListByJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	if err := s.jobs.DeleteJob(r.Context(), id); err != nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	// Best effort: the rows are already gone.
	for _, app := range apps {
		if err := s.files.Delete(r.Context(), app.ResumeURL); err != nil {
			s.logger.Warn("failed to delete stored resume", zap.String("key", app.ResumeURL), zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListJobApplications lists every application for one job
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	apps, err := s.applications.ListByJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

// handleTopCandidates returns the best-scoring applications for a job.
// ?n= controls the count; the default is the job's vacancy count.
func (s *Server) handleTopCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	n := job.Vacancies
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	apps, err := s.applications.TopCandidates(r.Context(), id, n)
	if err != nil {
		s.logger.Error("failed to get top candidates", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get top candidates")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": apps, "count": len(apps)})
}

// handleReanalyzeJob re-runs analysis for every application of a job against
// its current requirements
func (s *Server) handleReanalyzeJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	if job == nil {
		jobErr := &ErrJobNotFound{JobID: id}
		s.errorResponse(w, HTTPStatus(jobErr), jobErr.Error())
		return
	}

	apps, err := s.applications.ListByJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list applications")
		return
	}

	inputs := make([]pipeline.ReanalyzeInput, 0, len(apps))
	for _, app := range apps {
		inputs = append(inputs, pipeline.ReanalyzeInput{
			ApplicationID: app.ID,
			ResumeText:    app.ResumeText,
		})
	}

	outputs, err := s.processor.Reanalyze(r.Context(), inputs, job.Requirements(), s.cfg.ReanalyzeConcurrency)
	if err != nil {
		s.logger.Error("re-analysis failed", zap.String("job_id", id.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "re-analysis failed")
		return
	}

	updated := 0
	for _, out := range outputs {
		if err := s.applications.UpdateApplicationAnalysis(r.Context(), out.ApplicationID, out.Result); err != nil {
			s.logger.Error("failed to persist re-analysis",
				zap.String("application_id", out.ApplicationID.String()),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":       id,
		"reanalyzed":   updated,
		"applications": len(apps),
	})
}

// pathUUID parses a UUID path segment, writing a 400 on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
