package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	apperrors "github.com/jobradar/jobradar-api/internal/errors"
	mockauth "github.com/jobradar/jobradar-api/internal/mocks/auth"
	"github.com/jobradar/jobradar-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo satisfies core.UserRepository for auth-flow tests.
type fakeUserRepo struct{}

func (fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	return &model.User{ID: id, GitHubID: "8675309", Username: "mock-user"}, nil
}

func (fakeUserRepo) UpdateResume(_ context.Context, id, resumeText string) (*model.User, error) {
	return &model.User{ID: id, Username: "mock-user", ResumeText: &resumeText}, nil
}

func (fakeUserRepo) Upsert(_ context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	return &model.User{ID: "user-1", GitHubID: req.GitHubID, Username: req.Username, Email: req.Email}, nil
}

// fakeJobService satisfies JobServiceInterface with canned responses.
type fakeJobService struct {
	jobs    []model.Job
	created bool
	err     error
}

func (f *fakeJobService) List(context.Context) ([]model.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func (f *fakeJobService) Submit(_ context.Context, req *model.CreateJobRequest) (*model.Job, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &model.Job{ID: "job-1", Title: req.Title, Company: req.Company, ApplyLink: req.ApplyLink}, f.created, nil
}

// fakeApplicationService records the user scoping it was called with.
type fakeApplicationService struct {
	lastUserID string
	lastRef    core.ApplicationRef
	err        error
}

func (f *fakeApplicationService) Create(_ context.Context, userID string, req *model.CreateApplicationRequest) (*model.Application, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Application{ID: "app-1", UserID: userID, Company: req.Company, Role: req.Role, Status: req.Status}, nil
}

func (f *fakeApplicationService) ListByUser(_ context.Context, userID string) ([]model.Application, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return []model.Application{}, nil
}

func (f *fakeApplicationService) Update(_ context.Context, ref core.ApplicationRef, _ *model.UpdateApplicationRequest) (*model.Application, error) {
	f.lastRef = ref
	if f.err != nil {
		return nil, f.err
	}
	return &model.Application{ID: ref.ID, UserID: ref.UserID}, nil
}

func (f *fakeApplicationService) Delete(_ context.Context, ref core.ApplicationRef) error {
	f.lastRef = ref
	return f.err
}

type fakeUserService struct{ err error }

func (f *fakeUserService) Profile(_ context.Context, userID string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: userID, Username: "mock-user"}, nil
}

func (f *fakeUserService) UpdateResume(_ context.Context, userID string, req *model.UpdateResumeRequest) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: userID, Username: "mock-user", ResumeText: &req.ResumeText}, nil
}

type routerFixture struct {
	handler http.Handler
	apps    *fakeApplicationService
	jobs    *fakeJobService
}

func newTestRouter(t *testing.T) *routerFixture {
	t.Helper()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Provider:   mockauth.NewMockAuthProvider(),
		Sessions:   mockauth.NewMemorySessionStore(),
		Users:      fakeUserRepo{},
		SessionTTL: time.Hour,
	})

	apps := &fakeApplicationService{}
	jobs := &fakeJobService{jobs: []model.Job{}, created: true}
	handler := NewRouter(RouterServices{
		Jobs:         jobs,
		Applications: apps,
		Users:        &fakeUserService{},
		Auth:         authSvc,
		ClientURL:    "http://localhost:5173",
		CallbackURL:  "http://localhost:8080/auth/github/callback",
		Logger:       slog.New(slog.DiscardHandler),
	})

	return &routerFixture{handler: handler, apps: apps, jobs: jobs}
}

// login runs the OAuth flow against the router and returns the session cookie.
func (f *routerFixture) login(t *testing.T) *http.Cookie {
	t.Helper()

	// Start the flow to get state parked in a cookie.
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookieName {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "login must set the state cookie")

	// Complete the flow with the matching state.
	callback := httptest.NewRequest(http.MethodGet,
		"/auth/github/callback?code=test-code&state="+url.QueryEscape(stateCookie.Value), nil)
	callback.AddCookie(stateCookie)
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, callback)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/dashboard", rec.Result().Header.Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("callback must set the session cookie")
	return nil
}

func TestRouter_LoginFlow(t *testing.T) {
	fixture := newTestRouter(t)
	sessionCookie := fixture.login(t)

	// The session identifies the local account, not the provider account.
	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body currentUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	require.NotNil(t, body.User)
	assert.Equal(t, "user-1", body.User.ID)
	assert.Equal(t, "mock-user", body.User.Username)
}

func TestRouter_CallbackRejectsStateMismatch(t *testing.T) {
	fixture := newTestRouter(t)

	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/github", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	callback := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=test-code&state=forged", nil)
	for _, c := range rec.Result().Cookies() {
		callback.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, callback)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "state_mismatch")
}

func TestRouter_CurrentUserAnonymous(t *testing.T) {
	fixture := newTestRouter(t)

	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/user", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body currentUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Authenticated)
	assert.Nil(t, body.User)
}

func TestRouter_Logout(t *testing.T) {
	fixture := newTestRouter(t)
	sessionCookie := fixture.login(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The session is gone server-side, so the old cookie no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	req.AddCookie(sessionCookie)
	rec = httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	fixture := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/applications"},
		{http.MethodPost, "/api/applications"},
		{http.MethodPatch, "/api/applications/app-1"},
		{http.MethodDelete, "/api/applications/app-1"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPost, "/api/user/resume"},
	} {
		rec := httptest.NewRecorder()
		fixture.handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), "authentication_required")
	}
}

func TestRouter_ApplicationsScopedToSessionUser(t *testing.T) {
	fixture := newTestRouter(t)
	sessionCookie := fixture.login(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/applications/app-42", nil)
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, core.ApplicationRef{UserID: "user-1", ID: "app-42"}, fixture.apps.lastRef)
}

func TestRouter_PublicJobListing(t *testing.T) {
	fixture := newTestRouter(t)
	fixture.jobs.jobs = []model.Job{{ID: "job-1", Title: "Go Engineer", Company: "Acme", ApplyLink: "https://acme.example.com/jobs/1"}}

	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go Engineer")
}

func TestRouter_AnalysisRoutesSkippedWhenUnconfigured(t *testing.T) {
	fixture := newTestRouter(t)
	sessionCookie := fixture.login(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ats/analyze", strings.NewReader(`{}`))
	req.AddCookie(sessionCookie)
	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	fixture := newTestRouter(t)

	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	fixture := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_ServiceErrorMapping(t *testing.T) {
	fixture := newTestRouter(t)
	fixture.jobs.err = apperrors.NotFound("job not found")

	rec := httptest.NewRecorder()
	fixture.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
