// Package server provides the HTTP REST API for the recruitment service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talexa/talexa/internal/config"
	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/extraction"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/server/middleware"
	"github.com/talexa/talexa/internal/server/ratelimit"
	"github.com/talexa/talexa/internal/types"
)

// JobStore is the persistence surface the job handlers need.
type JobStore interface {
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*types.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	ListJobs(ctx context.Context, status types.JobStatus) ([]types.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, input *db.JobUpdateInput) (*types.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
}

// ApplicationStore is the persistence surface the application handlers need.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, input *db.ApplicationCreateInput) (*types.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	ApplicationExists(ctx context.Context, jobID uuid.UUID, email string) (bool, error)
	ListApplications(ctx context.Context, filters db.ApplicationFilters) ([]types.Application, error)
	TopCandidates(ctx context.Context, jobID uuid.UUID, n int) ([]types.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error)
	UpdateApplicationAnalysis(ctx context.Context, id uuid.UUID, analysis *types.AnalysisResult) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error
}

// FileStore persists uploaded resume files.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Processor runs the resume analysis pipeline.
type Processor interface {
	Process(ctx context.Context, data []byte, format extraction.Format, reqs types.JobRequirements) (*types.AnalysisResult, string, error)
	Reanalyze(ctx context.Context, inputs []pipeline.ReanalyzeInput, reqs types.JobRequirements, concurrency int) ([]pipeline.ReanalyzeOutput, error)
}

// Server is the HTTP API server.
type Server struct {
	httpServer   *http.Server
	jobs         JobStore
	applications ApplicationStore
	files        FileStore
	processor    Processor
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	authHandler  *AuthHandler
	logger       *zap.Logger
	cfg          *config.ServerConfig
	shutdown     func()
}

// Deps bundles the server's collaborators.
type Deps struct {
	Jobs         JobStore
	Applications ApplicationStore
	Recruiters   RecruiterStore
	Files        FileStore
	Processor    Processor
	Logger       *zap.Logger

	// Shutdown is called after the HTTP server stops, for closing pools
	// and clients owned by the caller.
	Shutdown func()
}

// New creates a server instance.
func New(cfg *config.ServerConfig, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		jobs:         deps.Jobs,
		applications: deps.Applications,
		files:        deps.Files,
		processor:    deps.Processor,
		logger:       logger,
		cfg:          cfg,
		shutdown:     deps.Shutdown,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	recruiters := NewRecruiterService(deps.Recruiters, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(recruiters, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // analysis calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Candidate-facing endpoints (job browsing,
// application submission) are public; recruiter endpoints require a token.
func (s *Server) routes() *http.ServeMux {
	auth := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Public job browsing and application submission
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("POST /jobs/{id}/applications", s.handleSubmitApplication)

	// Recruiter endpoints
	mux.Handle("PUT /auth/password", auth(http.HandlerFunc(s.authHandler.UpdatePassword)))
	mux.Handle("POST /jobs", auth(http.HandlerFunc(s.handleCreateJob)))
	mux.Handle("PUT /jobs/{id}", auth(http.HandlerFunc(s.handleUpdateJob)))
	mux.Handle("DELETE /jobs/{id}", auth(http.HandlerFunc(s.handleDeleteJob)))
	mux.Handle("POST /jobs/{id}/close", auth(http.HandlerFunc(s.handleCloseJob)))
	mux.Handle("POST /jobs/{id}/reanalyze", auth(http.HandlerFunc(s.handleReanalyzeJob)))
	mux.Handle("GET /jobs/{id}/applications", auth(http.HandlerFunc(s.handleListJobApplications)))
	mux.Handle("GET /jobs/{id}/top-candidates", auth(http.HandlerFunc(s.handleTopCandidates)))

	mux.Handle("GET /applications", auth(http.HandlerFunc(s.handleListApplications)))
	mux.Handle("GET /applications/{id}", auth(http.HandlerFunc(s.handleGetApplication)))
	mux.Handle("GET /applications/{id}/resume", auth(http.HandlerFunc(s.handleDownloadResume)))
	mux.Handle("POST /applications/{id}/reanalyze", auth(http.HandlerFunc(s.handleReanalyzeApplication)))
	mux.Handle("DELETE /applications/{id}", auth(http.HandlerFunc(s.handleDeleteApplication)))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.shutdown != nil {
		s.shutdown()
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request. This uses
// the IP from RemoteAddr; X-Forwarded-For is deliberately not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	retryAfter := time.Until(info.ResetTime)
	if retryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": info.ResetTime.Unix(),
	})
}
