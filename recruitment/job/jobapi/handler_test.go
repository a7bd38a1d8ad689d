package jobapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx/errxfiber"
	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/Abraxas-365/jobboard/pkg/iam/auth"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobinfra"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobsrv"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobinfra"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jobOne   = "3f6b1c2d-0a1e-4b5c-9d8e-7f6a5b4c3d21"
	jobTwo   = "8a2d4e6f-1b3c-4d5e-8f7a-6b5c4d3e2f10"
	jobThree = "c4e5f6a7-2b3c-4d1e-9f8a-7b6c5d4e3f02"

	companyOne   = "11111111-2222-4333-8444-555555555555"
	companyTwo   = "22222222-3333-4444-8555-666666666666"
	companyThree = "99999999-8888-4777-8666-555555555555"

	seekerID = "5d4c3b2a-1f0e-4d9c-8b7a-6f5e4d3c2b1a"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type testServer struct {
	app    *fiber.App
	tokens *auth.TokenService
	apps   *applicationinfra.MemoryApplicationRepository
}

func listing(id, title, company string, posted time.Time, views, applications int64) job.Listing {
	return job.Listing{
		ID:               kernel.JobID(id),
		Title:            kernel.JobTitle(title),
		Status:           job.JobStatusPublished,
		JobType:          job.JobTypeFullTime,
		ExperienceLevel:  job.ExperienceMid,
		PostedDate:       posted,
		ViewCount:        views,
		ApplicationCount: applications,
		Company:          job.Employer{ID: kernel.CompanyID(company), Name: "Company " + kernel.CompanyName(company)},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	described := listing(jobTwo, "Backend Developer", companyTwo, now.Add(-time.Hour), 80, 40)
	described.Description = "Work with every engineer on the team"

	store := jobinfra.NewMemoryJobStore(
		listing(jobOne, "Software Engineer", companyOne, now.Add(-48*time.Hour), 100, 10),
		described,
		listing(jobThree, "Accountant", companyThree, now.Add(-2*time.Hour), 5, 1),
	)
	apps := applicationinfra.NewMemoryApplicationRepository()
	saved := savedjobinfra.NewMemorySavedJobRepository()
	engine := jobsrv.NewSearchEngine(store, jobsrv.NewAnnotator(apps, saved), nil, kernel.FixedClock(now), time.Second)

	tokens := auth.NewJWTService("handler-test-secret-with-length", time.Hour, "jobboard-test")
	app := fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	RegisterRoutes(app, NewHandlers(engine), auth.NewMiddleware(tokens))

	return &testServer{app: app, tokens: tokens, apps: apps}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func itemIDs(body map[string]any) []string {
	var out []string
	for _, it := range body["items"].([]any) {
		out = append(out, it.(map[string]any)["id"].(string))
	}
	return out
}

func TestListJobs_Envelope(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs?limit=2&sortBy=title&sortOrder=asc", nil))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, []string{jobThree, jobTwo}, itemIDs(body))
	assert.Equal(t, map[string]any{
		"page":       float64(1),
		"limit":      float64(2),
		"total":      float64(3),
		"totalPages": float64(2),
	}, body["pagination"])

	filters := body["filters"].(map[string]any)
	assert.Equal(t, "title", filters["sortBy"])
	assert.Equal(t, "asc", filters["sortOrder"])
	assert.NotContains(t, filters, "identity")

	first := body["items"].([]any)[0].(map[string]any)
	assert.NotContains(t, first, "hasApplied")
	assert.NotContains(t, first, "isSaved")
}

func TestListJobs_ReportsAllViolations(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs?page=abc&limit=99&jobTypes=astronaut", nil))
	require.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, job.CodeInvalidFilter, body["code"])
	violations := body["details"].(map[string]any)["violations"].([]any)

	var fields []string
	for _, v := range violations {
		fields = append(fields, v.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"page", "limit", "jobTypes[0]"}, fields)
}

func TestSearchJobs_RelevanceBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/search",
		strings.NewReader(`{"keywords":"engineer","sortBy":"relevance","companyId":companyThree}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, body := s.do(t, req)
	require.Equal(t, http.StatusOK, status)

	// title match first, description-only match second; body company scope ignored
	assert.Equal(t, []string{jobOne, jobTwo}, itemIDs(body))
}

func TestSearchJobs_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/search", strings.NewReader(`{"page":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, body := s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, job.CodeInvalidFilter, body["code"])
}

func TestTrendingJobs_BareArray(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/trending?limit=2", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, jobOne, items[0]["id"])
	assert.Equal(t, jobTwo, items[1]["id"])
}

func TestTrendingJobs_BadLimit(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs/trending?limit=lots", nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs/trending?limit=80", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetJobByID_Annotated(t *testing.T) {
	s := newTestServer(t)
	s.apps.Apply(seekerID, jobTwo)

	token, err := s.tokens.GenerateAccessToken(seekerID, iam.RoleJobSeeker)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobTwo, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	status, body := s.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["hasApplied"])
	assert.Equal(t, false, body["isSaved"])

	// a broken token degrades to anonymous
	req = httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobTwo, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	status, body = s.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "hasApplied")
}

func TestGetJobByID_NotFound(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, job.CodeJobNotFound, body["code"])
}

func TestListCompanyJobs(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/companies/"+companyThree+"/jobs", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{jobThree}, itemIDs(body))
	assert.Equal(t, companyThree, body["filters"].(map[string]any)["companyId"])
}

func TestGetJobByID_MalformedID(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, job.CodeJobNotFound, body["code"])
}

func TestListCompanyJobs_MalformedID(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/companies/abc/jobs", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, job.CodeInvalidFilter, body["code"])
}

func TestListJobs_NonUUIDSubjectIsAnonymous(t *testing.T) {
	s := newTestServer(t)

	token, err := s.tokens.GenerateAccessToken("not-a-user-id", iam.RoleJobSeeker)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	status, body := s.do(t, req)
	require.Equal(t, http.StatusOK, status)

	first := body["items"].([]any)[0].(map[string]any)
	assert.NotContains(t, first, "hasApplied")
}

func TestListJobs_RepeatedListKeys(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs?jobTypes=contract&jobTypes=full_time", nil))
	require.Equal(t, http.StatusOK, status)

	filters := body["filters"].(map[string]any)
	assert.Equal(t, []any{"contract", "full_time"}, filters["jobTypes"])
	assert.Len(t, itemIDs(body), 3)

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs?page=1&page=2", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, job.CodeInvalidFilter, body["code"])
}

func TestSortOrderIsCaseInsensitive(t *testing.T) {
	s := newTestServer(t)

	status, query := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs?sortBy=title&sortOrder=DESC", nil))
	require.Equal(t, http.StatusOK, status)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/search",
		strings.NewReader(`{"sortBy":"TITLE","sortOrder":"DESC"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body := s.do(t, req)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, itemIDs(query), itemIDs(body))
	assert.Equal(t, "desc", body["filters"].(map[string]any)["sortOrder"])
}

func TestTrendingJobs_ZeroLimit(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/jobs/trending?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, job.CodeInvalidPagination, body["code"])
}
