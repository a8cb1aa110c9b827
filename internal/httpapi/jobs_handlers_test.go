package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/store"
)

var (
	createdAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	renderAt  = createdAt.Add(49 * time.Hour)
)

type testEnv struct {
	handler http.Handler
	db      *store.DB
	hub     *events.Hub
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Now = func() time.Time { return createdAt }

	hub := events.NewHub()
	h := NewHandler(Deps{
		Store:          db,
		Hub:            hub,
		Icons:          domain.NewIconTable(nil, ""),
		Log:            zaptest.NewLogger(t),
		Now:            func() time.Time { return renderAt },
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return testEnv{handler: h, db: db, hub: hub}
}

func (e testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func jobBody(title, company, location, jobType string, min, max int64) map[string]any {
	return map[string]any{
		"title":        title,
		"company_name": company,
		"location":     location,
		"job_type":     jobType,
		"salary_min":   min,
		"salary_max":   max,
		"description":  "Ship features.",
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func (e testEnv) create(t *testing.T, body map[string]any) domain.Job {
	t.Helper()
	w := e.do(t, http.MethodPost, "/jobs/", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	return decode[domain.Job](t, w)
}

func TestCreateJob(t *testing.T) {
	env := newTestEnv(t)
	icons := domain.NewIconTable(nil, "")

	body := jobBody("Node Js Developer", "Tesla", "Mumbai", "Full-time", 1000000, 1500000)
	body["company_logo"] = "ignored"
	job := env.create(t, body)

	if job.ID <= 0 {
		t.Fatalf("id = %d", job.ID)
	}
	if job.CompanyLogo != icons.Resolve("Tesla") {
		t.Fatalf("logo = %q", job.CompanyLogo)
	}
	if job.Experience != domain.DefaultExperience || job.WorkMode != domain.DefaultWorkMode {
		t.Fatalf("defaults not applied: %q %q", job.Experience, job.WorkMode)
	}
	if !job.IsPublished {
		t.Fatalf("expected published by default")
	}
	if job.TimePosted != "2d Ago" {
		t.Fatalf("time_posted = %q", job.TimePosted)
	}
	if !job.CreatedAt.Equal(createdAt) {
		t.Fatalf("created_at = %v", job.CreatedAt)
	}

	other := env.create(t, jobBody("Clerk", "Nobody Inc", "Pune", "Part-time", 1, 2))
	if other.CompanyLogo != domain.DefaultCompanyIcon {
		t.Fatalf("fallback logo = %q", other.CompanyLogo)
	}
}

func TestCreateJobDeadline(t *testing.T) {
	env := newTestEnv(t)
	body := jobBody("SRE", "Google", "Remote", "Full-time", 1, 2)
	body["application_deadline"] = "2024-12-31"
	job := env.create(t, body)

	if job.ApplicationDeadline == nil || job.ApplicationDeadline.String() != "2024-12-31" {
		t.Fatalf("deadline = %v", job.ApplicationDeadline)
	}
	if !strings.Contains(env.do(t, http.MethodGet, "/jobs/1", nil).Body.String(), `"application_deadline":"2024-12-31"`) {
		t.Fatalf("deadline not rendered as a date")
	}
}

func TestCreateJobRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	missing := jobBody("x", "y", "z", "w", 1, 2)
	delete(missing, "title")
	delete(missing, "salary_max")

	tests := []struct {
		name string
		body any
		want string
	}{
		{"missing fields", missing, "title, salary_max"},
		{"malformed", `{"title":`, "invalid JSON"},
		{"wrong type", `{"salary_min":"lots"}`, "invalid JSON"},
		{"trailing data", `{} {}`, "trailing data"},
		{"trailing brace", `{"title":"x"}}`, "trailing data"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/jobs/", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			e := decode[APIError](t, w)
			if e.Error.Code != "invalid_input" || !strings.Contains(e.Error.Message, tc.want) {
				t.Fatalf("error = %+v", e.Error)
			}
		})
	}

	n, err := env.db.CountJobs(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestGetJob(t *testing.T) {
	env := newTestEnv(t)
	body := jobBody("Draft", "Meta", "Delhi", "Full-time", 1, 2)
	body["is_published"] = false
	created := env.create(t, body)

	w := env.do(t, http.MethodGet, "/jobs/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[domain.Job](t, w)
	if got.ID != created.ID || got.IsPublished {
		t.Fatalf("got %+v", got)
	}

	for target, want := range map[string]int{
		"/jobs/999":                  http.StatusNotFound,
		"/jobs/0":                    http.StatusNotFound,
		"/jobs/-1":                   http.StatusNotFound,
		"/jobs/abc":                  http.StatusBadRequest,
		"/jobs/1.5":                  http.StatusBadRequest,
		"/jobs/99999999999999999999": http.StatusBadRequest,
	} {
		if w := env.do(t, http.MethodGet, target, nil); w.Code != want {
			t.Errorf("GET %s = %d, want %d", target, w.Code, want)
		}
	}
}

func TestUpdateJobKeepsLogoAndCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, jobBody("Node Js Developer", "Tesla", "Mumbai", "Full-time", 1, 2))

	env.db.Now = func() time.Time { return createdAt.Add(time.Hour) }
	upd := jobBody("Staff Engineer", "Google", "Remote", "Contract", 5, 9)
	upd["work_mode"] = "Remote"
	w := env.do(t, http.MethodPut, "/jobs/1", upd)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	got := decode[domain.Job](t, w)

	if got.Title != "Staff Engineer" || got.CompanyName != "Google" || got.WorkMode != "Remote" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if got.CompanyLogo != created.CompanyLogo {
		t.Fatalf("logo changed: %q -> %q", created.CompanyLogo, got.CompanyLogo)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, got.CreatedAt)
	}

	for _, target := range []string{"/jobs/42", "/jobs/0", "/jobs/-1"} {
		w := env.do(t, http.MethodPut, target, upd)
		if w.Code != http.StatusNotFound {
			t.Fatalf("PUT %s = %d", target, w.Code)
		}
		if e := decode[APIError](t, w); e.Error.Code != "not_found" {
			t.Fatalf("PUT %s code = %q", target, e.Error.Code)
		}
	}
}

func TestDeleteJob(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, jobBody("Temp", "Apple", "Chennai", "Full-time", 1, 2))

	w := env.do(t, http.MethodDelete, "/jobs/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := decode[map[string]string](t, w)["message"]; msg != "Job deleted successfully" {
		t.Fatalf("message = %q", msg)
	}
	if w := env.do(t, http.MethodGet, "/jobs/1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", w.Code)
	}
	for _, target := range []string{"/jobs/1", "/jobs/0", "/jobs/-1"} {
		if w := env.do(t, http.MethodDelete, target, nil); w.Code != http.StatusNotFound {
			t.Fatalf("DELETE %s = %d", target, w.Code)
		}
	}
	if w := env.do(t, http.MethodDelete, "/jobs/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("DELETE /jobs/abc = %d", w.Code)
	}
}

func TestListJobs(t *testing.T) {
	env := newTestEnv(t)
	tick := createdAt
	env.db.Now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	env.create(t, jobBody("Go Developer", "Google", "Bangalore", "Full-time", 800000, 1200000))
	env.create(t, jobBody("Intern", "Amazon", "Mumbai", "Internship", 2000, 5000))
	env.create(t, jobBody("golang lead", "Netflix", "Mumbai", "Full-time", 900000, 1500000))
	hidden := jobBody("Go Ghost", "Meta", "Mumbai", "Full-time", 1, 2)
	hidden["is_published"] = false
	env.create(t, hidden)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"golang lead", "Intern", "Go Developer"}},
		{"?search=GO", []string{"golang lead", "Go Developer"}},
		{"?location=Mumbai", []string{"golang lead", "Intern"}},
		{"?location=Preferred+Location&job_type=Job+type", []string{"golang lead", "Intern", "Go Developer"}},
		{"?job_type=Full-time&location=Mumbai", []string{"golang lead"}},
		{"?salary_min=10", []string{"golang lead", "Go Developer"}},
		{"?salary_max=100", []string{"Intern"}},
		{"?salary_min=0", []string{"golang lead", "Intern", "Go Developer"}},
		{"?search=nothing", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/jobs/"+tc.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			jobs := decode[[]domain.Job](t, w)
			got := make([]string, 0, len(jobs))
			for _, j := range jobs {
				got = append(got, j.Title)
			}
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}

	if w := env.do(t, http.MethodGet, "/jobs", nil); w.Code != http.StatusOK {
		t.Fatalf("list without slash = %d", w.Code)
	}
	for _, q := range []string{
		"?salary_min=ten",
		"?salary_min=9223372036854776",
		"?salary_max=-9223372036854776",
	} {
		w := env.do(t, http.MethodGet, "/jobs/"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s = %d", q, w.Code)
		}
		if e := decode[APIError](t, w); e.Error.Code != "invalid_input" {
			t.Fatalf("%s code = %q", q, e.Error.Code)
		}
	}
	if w := env.do(t, http.MethodGet, "/jobs/?salary_min=9223372036854775", nil); w.Code != http.StatusOK || len(decode[[]domain.Job](t, w)) != 0 {
		t.Fatalf("largest salary_min should match nothing: %d %s", w.Code, w.Body.String())
	}
}

func TestListEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/jobs/", nil)
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("body = %q", got)
	}
}

func TestLookups(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, jobBody("a", "Google", "Pune", "Full-time", 1, 2))
	env.create(t, jobBody("b", "Google", "Bangalore", "Contract", 1, 2))
	draft := jobBody("c", "Google", "Delhi", "Full-time", 1, 2)
	draft["is_published"] = false
	env.create(t, draft)

	w := env.do(t, http.MethodGet, "/locations/", nil)
	if got := decode[[]string](t, w); strings.Join(got, ",") != "Bangalore,Delhi,Pune" {
		t.Fatalf("locations = %v", got)
	}
	w = env.do(t, http.MethodGet, "/job-types", nil)
	if got := decode[[]string](t, w); strings.Join(got, ",") != "Contract,Full-time" {
		t.Fatalf("job types = %v", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPatch, "/jobs/1", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decode[APIError](t, w); e.Error.Code != "method_not_allowed" {
		t.Fatalf("code = %q", e.Error.Code)
	}
}

type brokenStore struct{ JobStore }

func (brokenStore) ListJobs(context.Context, store.JobFilter) ([]domain.Job, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreFailureIsInternal(t *testing.T) {
	h := NewHandler(Deps{Store: brokenStore{}, Log: zaptest.NewLogger(t)})
	req := httptest.NewRequest(http.MethodGet, "/jobs/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	e := decode[APIError](t, w)
	if e.Error.Code != "internal_error" || strings.Contains(e.Error.Message, "fire") {
		t.Fatalf("error leaked or wrong: %+v", e.Error)
	}
	if e.Error.RequestID != "req-1" {
		t.Fatalf("request_id = %q", e.Error.RequestID)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || !decode[map[string]bool](t, w)["ok"] {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
}
