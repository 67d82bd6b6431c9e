package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

const testJWTSecret = "super-secret-jwt-token-with-at-least-32-characters"

var testUserID = uuid.MustParse("6f1d2c0e-8a47-4b8f-9a3e-2f6c1d7b9e10")

func signTestToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := auth.Claims{
		Email: "owner@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUserID.String(),
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ID:        uuid.NewString(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

type fakeProvider struct {
	t         *testing.T
	signInErr error
	refreshes int
	signedOut int
}

func (f *fakeProvider) session() auth.Session {
	exp := time.Now().Add(time.Hour)
	return auth.Session{
		UserID:       testUserID,
		Email:        "owner@example.com",
		ExpiresAt:    exp,
		AccessToken:  signTestToken(f.t, exp),
		RefreshToken: "refresh-" + uuid.NewString(),
	}
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (auth.Session, error) {
	if f.signInErr != nil {
		return auth.Session{}, f.signInErr
	}
	return f.session(), nil
}

func (f *fakeProvider) Refresh(_ context.Context, refreshToken string) (auth.Session, error) {
	f.refreshes++
	if refreshToken != "good-refresh" {
		return auth.Session{}, errs.NewInvalidTokenError(errors.New("refresh token revoked"))
	}
	return f.session(), nil
}

func (f *fakeProvider) SignOut(context.Context, string) error {
	f.signedOut++
	return nil
}

type fakeUploader struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeUploader) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

type testEnv struct {
	t        *testing.T
	db       database.Database
	router   *chi.Mux
	provider *fakeProvider
	uploader *fakeUploader
	token    string
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, nil)
}

// newTestEnvWithConfig builds the router with extra config entries on top of the defaults.
func newTestEnvWithConfig(t *testing.T, extra map[string]string) *testEnv {
	t.Helper()

	gormDB, err := database.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, models.Migrate(gormDB))

	env := &testEnv{
		t:        t,
		db:       database.New(gormDB),
		provider: &fakeProvider{t: t},
		uploader: &fakeUploader{},
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	env.token = signTestToken(t, time.Now().Add(time.Hour))

	contact := services.NewContactService(
		env.db.ContactMessageRepo(),
		services.NewMemoryCooldown(services.ContactCooldown),
		nil,
	).WithClock(func() time.Time { return env.now })

	cfg := map[string]string{
		"LOG_FORMAT":    "json",
		"COOKIE_SECURE": "false",
		"SITE_URL":      "https://me.dev/",
	}
	for key, value := range extra {
		cfg[key] = value
	}
	env.router, err = newRouter(env.db,
		withConfig(cfg),
		withStartupTime(time.Now()),
		WithGate(auth.NewGate(env.provider, auth.NewVerifier(testJWTSecret))),
		WithContactService(contact),
		WithImageIntake(services.NewImageIntake(env.uploader, "projects")),
	)
	require.NoError(t, err)
	return env
}

// do sends a JSON request. Admin paths carry the bearer token.
func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(path, "/api/admin/") {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	return e.serve(req)
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestNewRouterNeedsGate(t *testing.T) {
	_, err := newRouter(database.Database{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[HealthResponse](t, rec).Status)
}

func TestAdminWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	t.Run("json caller gets 401 with redirect", func(t *testing.T) {
		rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody[UnauthenticatedResponse](t, rec)
		assert.Equal(t, "/admin/login", body.Redirect)
		assert.Equal(t, "admin session required: unauthorized", body.Error)
	})

	t.Run("browser gets 303 to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := env.serve(req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("garbage token is not a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := env.serve(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLoginSessionLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "owner@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	access := findCookie(rec, accessTokenCookie)
	require.NotNil(t, access)
	assert.True(t, access.HttpOnly)
	require.NotNil(t, findCookie(rec, refreshTokenCookie))
	assert.NotContains(t, rec.Body.String(), access.Value, "tokens stay out of the body")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(access)
	rec = env.serve(req)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[SessionResponse](t, rec)
	require.NotNil(t, got.Session)
	assert.Equal(t, testUserID, got.Session.UserID)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(access)
	rec = env.serve(req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, env.provider.signedOut)
	cleared := findCookie(rec, accessTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(access)
	assert.Equal(t, http.StatusUnauthorized, env.serve(req).Code, "signed out token is revoked")
}

func TestLoginFailure(t *testing.T) {
	env := newTestEnv(t)
	env.provider.signInErr = errs.NewInvalidCredentialsError(errors.New("Invalid login credentials"))

	rec := env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Details, "Invalid login credentials")
	assert.Nil(t, findCookie(rec, accessTokenCookie))
}

func TestExpiredAccessTokenIsRefreshedOnce(t *testing.T) {
	env := newTestEnv(t)
	expired := signTestToken(t, time.Now().Add(-time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: expired})
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "good-refresh"})
	rec := env.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.provider.refreshes)
	rewritten := findCookie(rec, accessTokenCookie)
	require.NotNil(t, rewritten)
	assert.NotEqual(t, expired, rewritten.Value)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: expired})
	req.AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "revoked"})
	rec = env.serve(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 2, env.provider.refreshes)
}

func TestUnknownFieldsRejected(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/admin/projects/new/draft", map[string]any{
		"title":  "Thing",
		"colour": "red",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "json", decodeBody[ErrorResponse](t, rec).Field)
}
