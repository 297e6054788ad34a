package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talexa/talexa/internal/config"
	"github.com/talexa/talexa/internal/db"
	"github.com/talexa/talexa/internal/extraction"
	"github.com/talexa/talexa/internal/pipeline"
	"github.com/talexa/talexa/internal/types"
)

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

type fakeJobStore struct {
	jobs map[uuid.UUID]*types.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[uuid.UUID]*types.Job)}
}

func (f *fakeJobStore) CreateJob(_ context.Context, input *db.JobCreateInput) (*types.Job, error) {
	job := &types.Job{
		ID:                uuid.New(),
		Title:             input.Title,
		Description:       input.Description,
		MinimumExperience: input.MinimumExperience,
		EducationLevel:    input.EducationLevel,
		Vacancies:         input.Vacancies,
		Skills:            input.Skills,
		Status:            types.JobStatusActive,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobStore) GetJob(_ context.Context, id uuid.UUID) (*types.Job, error) {
	return f.jobs[id], nil
}

func (f *fakeJobStore) ListJobs(_ context.Context, status types.JobStatus) ([]types.Job, error) {
	out := []types.Job{}
	for _, j := range f.jobs {
		if status == "" || j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) UpdateJob(_ context.Context, id uuid.UUID, input *db.JobUpdateInput) (*types.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	job.Title = input.Title
	job.Description = input.Description
	job.MinimumExperience = input.MinimumExperience
	job.EducationLevel = input.EducationLevel
	job.Vacancies = input.Vacancies
	job.Skills = input.Skills
	job.Status = input.Status
	return job, nil
}

func (f *fakeJobStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status types.JobStatus) error {
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job not found: %s", id)
	}
	job.Status = status
	return nil
}

func (f *fakeJobStore) DeleteJob(_ context.Context, id uuid.UUID) error {
	if _, ok := f.jobs[id]; !ok {
		return fmt.Errorf("job not found: %s", id)
	}
	delete(f.jobs, id)
	return nil
}

type fakeAppStore struct {
	apps map[uuid.UUID]*types.Application
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{apps: make(map[uuid.UUID]*types.Application)}
}

func (f *fakeAppStore) CreateApplication(_ context.Context, input *db.ApplicationCreateInput) (*types.Application, error) {
	score := input.Analysis.Match.Score
	app := &types.Application{
		ID:              uuid.New(),
		JobID:           input.JobID,
		ApplicantName:   input.ApplicantName,
		ApplicantEmail:  input.ApplicantEmail,
		ResumeURL:       input.ResumeURL,
		ResumeText:      input.ResumeText,
		SkillsExtracted: input.Analysis.Profile.Skills,
		MatchScore:      &score,
		AnalysisResult:  input.Analysis,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeAppStore) GetApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	return f.apps[id], nil
}

func (f *fakeAppStore) ApplicationExists(_ context.Context, jobID uuid.UUID, email string) (bool, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.ApplicantEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppStore) ListApplications(_ context.Context, filters db.ApplicationFilters) ([]types.Application, error) {
	out := []types.Application{}
	for _, a := range f.apps {
		if filters.JobID != nil && a.JobID != *filters.JobID {
			continue
		}
		if filters.MinScore != nil && (a.MatchScore == nil || *a.MatchScore < *filters.MinScore) {
			continue
		}
		out = append(out, *a)
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (f *fakeAppStore) TopCandidates(ctx context.Context, jobID uuid.UUID, n int) ([]types.Application, error) {
	return f.ListApplications(ctx, db.ApplicationFilters{JobID: &jobID, Limit: n})
}

func (f *fakeAppStore) ListByJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error) {
	return f.ListApplications(ctx, db.ApplicationFilters{JobID: &jobID})
}

func (f *fakeAppStore) UpdateApplicationAnalysis(_ context.Context, id uuid.UUID, analysis *types.AnalysisResult) error {
	app, ok := f.apps[id]
	if !ok {
		return fmt.Errorf("application not found: %s", id)
	}
	score := analysis.Match.Score
	app.MatchScore = &score
	app.AnalysisResult = analysis
	return nil
}

func (f *fakeAppStore) DeleteApplication(_ context.Context, id uuid.UUID) error {
	if _, ok := f.apps[id]; !ok {
		return fmt.Errorf("application not found: %s", id)
	}
	delete(f.apps, id)
	return nil
}

type fakeRecruiterStore struct {
	byEmail map[string]*db.Recruiter
}

func newFakeRecruiterStore() *fakeRecruiterStore {
	return &fakeRecruiterStore{byEmail: make(map[string]*db.Recruiter)}
}

func (f *fakeRecruiterStore) CreateRecruiter(_ context.Context, name, email, company, passwordHash string) (uuid.UUID, error) {
	r := &db.Recruiter{PasswordHash: passwordHash}
	r.ID = uuid.New()
	r.Name = name
	r.Email = email
	r.Company = company
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	f.byEmail[email] = r
	return r.ID, nil
}

func (f *fakeRecruiterStore) GetRecruiter(_ context.Context, id uuid.UUID) (*db.Recruiter, error) {
	for _, r := range f.byEmail {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecruiterStore) GetRecruiterByEmail(_ context.Context, email string) (*db.Recruiter, error) {
	return f.byEmail[email], nil
}

func (f *fakeRecruiterStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRecruiterStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	for _, r := range f.byEmail {
		if r.ID == id {
			r.PasswordHash = passwordHash
			return nil
		}
	}
	return fmt.Errorf("recruiter not found: %s", id)
}

type fakeFileStore struct {
	objects map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: make(map[string][]byte)}
}

func (f *fakeFileStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.objects[key] = data
	return key, nil
}

func (f *fakeFileStore) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return data, nil
}

func (f *fakeFileStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type fakeProcessor struct {
	result *types.AnalysisResult
	calls  int
}

func (f *fakeProcessor) Process(_ context.Context, _ []byte, format extraction.Format, reqs types.JobRequirements) (*types.AnalysisResult, string, error) {
	f.calls++
	if format == extraction.FormatDOC || format == extraction.FormatUnknown {
		return nil, "", &extraction.ErrUnsupportedFormat{Format: format}
	}
	return f.result, "extracted resume text", nil
}

func (f *fakeProcessor) Reanalyze(_ context.Context, inputs []pipeline.ReanalyzeInput, _ types.JobRequirements, _ int) ([]pipeline.ReanalyzeOutput, error) {
	outputs := make([]pipeline.ReanalyzeOutput, len(inputs))
	for i, in := range inputs {
		outputs[i] = pipeline.ReanalyzeOutput{ApplicationID: in.ApplicationID, Result: f.result}
	}
	return outputs, nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type testEnv struct {
	server *Server
	jobs   *fakeJobStore
	apps   *fakeAppStore
	files  *fakeFileStore
	proc   *fakeProcessor
	token  string
}

func analysisFixture(score float64) *types.AnalysisResult {
	years := 5
	return &types.AnalysisResult{
		Profile: types.ExtractedProfile{
			Skills:          []string{"Go", "SQL"},
			ExperienceYears: &years,
			EducationLevel:  "Bachelor",
		},
		Match: types.MatchResult{
			Score:         score,
			MatchedSkills: []string{"Go", "SQL"},
			MissingSkills: []string{},
			Category:      "Excellent Match",
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("BCRYPT_COST", "10")

	jobs := newFakeJobStore()
	apps := newFakeAppStore()
	files := newFakeFileStore()
	proc := &fakeProcessor{result: analysisFixture(0.85)}

	cfg := &config.ServerConfig{
		Port:                 "0",
		AnalysisTimeout:      5 * time.Second,
		MaxResumeBytes:       1024 * 1024,
		AllowedResumeTypes:   []string{"pdf", "docx", "txt", "html", "doc"},
		ReanalyzeConcurrency: 2,
	}

	s, err := New(cfg, Deps{
		Jobs:         jobs,
		Applications: apps,
		Recruiters:   newFakeRecruiterStore(),
		Files:        files,
		Processor:    proc,
	})
	require.NoError(t, err)

	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	return &testEnv{server: s, jobs: jobs, apps: apps, files: files, proc: proc, token: token}
}

func (e *testEnv) do(t *testing.T, method, target, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target, token string, payload any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	return e.do(t, method, target, token, &buf, "application/json")
}

func (e *testEnv) createJob(t *testing.T) *types.Job {
	rec := e.doJSON(t, "POST", "/jobs", e.token, map[string]any{
		"job_title":           "Backend Engineer",
		"description":         "Build services",
		"minimum_experience":  "3+ years",
		"education_level":     "Bachelor",
		"number_of_vacancies": 2,
		"skills":              []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var job types.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	return &job
}

func multipartResume(t *testing.T, name, email, filename string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("applicant_name", name))
	require.NoError(t, mw.WriteField("applicant_email", email))
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, "GET", "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestJobCRUD(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	rec := e.do(t, "GET", "/jobs/"+job.ID.String(), "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.doJSON(t, "PUT", "/jobs/"+job.ID.String(), e.token, map[string]any{
		"job_title":           "Senior Backend Engineer",
		"number_of_vacancies": 1,
		"skills":              []string{"Go", "SQL", "Kubernetes"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated types.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Len(t, updated.Skills, 3)

	rec = e.do(t, "DELETE", "/jobs/"+job.ID.String(), e.token, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, "GET", "/jobs/"+job.ID.String(), "", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobCreateRequiresAuth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.doJSON(t, "POST", "/jobs", "", map[string]any{
		"job_title":           "X",
		"number_of_vacancies": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJobCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	rec := e.doJSON(t, "POST", "/jobs", e.token, map[string]any{
		"job_title":           "",
		"number_of_vacancies": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.doJSON(t, "POST", "/jobs", e.token, map[string]any{
		"job_title":           "X",
		"number_of_vacancies": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitApplication(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("%PDF-1.4 fake"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var app types.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, job.ID, app.JobID)
	require.NotNil(t, app.MatchScore)
	assert.InDelta(t, 0.85, *app.MatchScore, 1e-9)
	assert.Equal(t, 1, e.proc.calls)
	assert.Len(t, e.files.objects, 1)
}

func TestSubmitApplicationLegacyDocRejected(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.doc", []byte("legacy"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.files.objects, "rejected submissions must not be stored")
	assert.Empty(t, e.apps.apps)
}

func TestSubmitApplicationClosedJob(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/close", e.token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec = e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	body, ct = multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec = e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitApplicationInvalidEmail(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "not-an-email", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitApplicationUnknownJob(t *testing.T) {
	e := newTestEnv(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+uuid.NewString()+"/applications", "", body, ct)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopCandidatesDefaultsToVacancies(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t) // 2 vacancies

	for i := 0; i < 4; i++ {
		email := fmt.Sprintf("cand%d@example.com", i)
		body, ct := multipartResume(t, "Candidate", email, "resume.pdf", []byte("x"))
		rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := e.do(t, "GET", "/jobs/"+job.ID.String()+"/top-candidates", e.token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestReanalyzeJob(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	e.proc.result = analysisFixture(0.42)

	rec = e.do(t, "POST", "/jobs/"+job.ID.String()+"/reanalyze", e.token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Reanalyzed int `json:"reanalyzed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Reanalyzed)

	for _, app := range e.apps.apps {
		require.NotNil(t, app.MatchScore)
		assert.InDelta(t, 0.42, *app.MatchScore, 1e-9)
	}
}

func TestReanalyzeApplication(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	var appID uuid.UUID
	for id := range e.apps.apps {
		appID = id
	}

	e.proc.result = analysisFixture(0.37)

	rec = e.do(t, "POST", "/applications/"+appID.String()+"/reanalyze", e.token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	app := e.apps.apps[appID]
	require.NotNil(t, app.MatchScore)
	assert.InDelta(t, 0.37, *app.MatchScore, 1e-9)
}

func TestReanalyzeApplicationNotFound(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, "POST", "/applications/"+uuid.NewString()+"/reanalyze", e.token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListApplicationsFilters(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, "GET", "/applications?job_id="+job.ID.String()+"&min_score=0.5", e.token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	rec = e.do(t, "GET", "/applications?min_score=0.99", e.token, nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)

	rec = e.do(t, "GET", "/applications?min_score=2", e.token, nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteApplicationRemovesStoredResume(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	var app types.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))

	rec = e.do(t, "DELETE", "/applications/"+app.ID.String(), e.token, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, e.apps.apps)
	assert.Empty(t, e.files.objects)
}

func TestDeleteJobRemovesStoredResumes(t *testing.T) {
	e := newTestEnv(t)
	job := e.createJob(t)

	body, ct := multipartResume(t, "Jane Doe", "jane@example.com", "resume.pdf", []byte("x"))
	rec := e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)

	body, ct = multipartResume(t, "John Roe", "john@example.com", "resume.pdf", []byte("y"))
	rec = e.do(t, "POST", "/jobs/"+job.ID.String()+"/applications", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, e.files.objects, 2)

	rec = e.do(t, "DELETE", "/jobs/"+job.ID.String(), e.token, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, e.files.objects)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Rita Recruiter",
		"email":    "rita@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "rita@example.com", login.Recruiter.Email)

	rec = e.doJSON(t, "POST", "/auth/login", "", map[string]string{
		"email":    "rita@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.doJSON(t, "POST", "/auth/login", "", map[string]string{
		"email":    "rita@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Duplicate registration
	rec = e.doJSON(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Rita Again",
		"email":    "rita@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthUpdatePassword(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Rita Recruiter",
		"email":    "rita@example.com",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// Wrong current password
	rec = e.doJSON(t, "PUT", "/auth/password", login.Token, map[string]string{
		"current_password": "wrongpassword",
		"new_password":     "evenmoresecret2",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// New password too short
	rec = e.doJSON(t, "PUT", "/auth/password", login.Token, map[string]string{
		"current_password": "supersecret1",
		"new_password":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.doJSON(t, "PUT", "/auth/password", login.Token, map[string]string{
		"current_password": "supersecret1",
		"new_password":     "evenmoresecret2",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// Old password no longer works; the new one does.
	rec = e.doJSON(t, "POST", "/auth/login", "", map[string]string{
		"email":    "rita@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.doJSON(t, "POST", "/auth/login", "", map[string]string{
		"email":    "rita@example.com",
		"password": "evenmoresecret2",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthUpdatePasswordRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, "PUT", "/auth/password", "", map[string]string{
		"current_password": "supersecret1",
		"new_password":     "evenmoresecret2",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRegisterValidation(t *testing.T) {
	e := newTestEnv(t)

	rec := e.doJSON(t, "POST", "/auth/register", "", map[string]string{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
