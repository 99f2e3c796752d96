package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/cache"
	"volunteerhub/internal/config"
	"volunteerhub/internal/db"
	"volunteerhub/internal/model"
	"volunteerhub/internal/service"
)

// outbox captures sign-in secrets instead of mailing them.
type outbox struct {
	mu      sync.Mutex
	secrets map[string]string
}

func (o *outbox) SendSignInLink(_ context.Context, email, secret string, _ time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.secrets[email] = secret
	return nil
}

func (o *outbox) secret(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.secrets[email]
}

type testServer struct {
	*Server
	outbox *outbox
}

func newTestServer(t *testing.T, rateLimit config.RateLimitConfig) *testServer {
	t.Helper()

	cfg := &config.Config{
		Database:  config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "api.db")},
		Auth:      config.AuthConfig{JWTSecret: "test-secret"},
		RateLimit: rateLimit,
	}
	gormDB, err := db.Open(cfg.Database, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	mr := miniredis.RunT(t)
	cacheClient := cache.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zerolog.Nop())

	box := &outbox{secrets: map[string]string{}}
	return &testServer{Server: New(cfg, zerolog.Nop(), gormDB, cacheClient, box), outbox: box}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = string(raw)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) signIn(t *testing.T, email string) service.SignInResult {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/email", "", map[string]string{"email": email})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	secret := s.outbox.secret(strings.ToLower(email))
	require.NotEmpty(t, secret)

	rec = s.do(t, http.MethodPost, "/api/auth/email/verify", "", map[string]string{"email": email, "token": secret})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[service.SignInResult](t, rec)
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Len(t, rec.Header().Get("X-Request-Id"), 26)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "volunteerhub_http_requests_total")
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})
	session := s.signIn(t, "Organiser@Example.org")
	require.NotNil(t, session.User)
	assert.Equal(t, "organiser@example.org", session.User.Email)
	assert.NotNil(t, session.User.EmailVerified)
	token := session.AccessToken

	// locations are open to anonymous callers by default
	rec := s.do(t, http.MethodPost, "/api/locations", "", map[string]interface{}{"name": "Riverside Park"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	location := decode[model.EventLocation](t, rec)

	input := map[string]interface{}{
		"name":            "Litter pick",
		"timestamp":       time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
		"duration":        120,
		"details":         "Bring gloves",
		"eventLocationId": location.ID,
		"userId":          session.User.ID,
	}

	rec = s.do(t, http.MethodPost, "/api/events", "", input)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/events", token, input)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	event := decode[model.Event](t, rec)
	assert.Equal(t, model.ApprovalStatusPending, event.ApprovalStatus)

	rec = s.do(t, http.MethodGet, "/api/events/pending", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Event](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/api/events/%s/approve", event.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.ApprovalStatusApproved, decode[model.Event](t, rec).ApprovalStatus)

	rec = s.do(t, http.MethodGet, "/api/events/organiser/"+session.User.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decode[[]model.Event](t, rec)
	require.Len(t, approved, 1)
	assert.Equal(t, event.ID, approved[0].ID)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/locations/%d", location.ID), token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "REFERENCED")

	rec = s.do(t, http.MethodDelete, "/api/events/"+event.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/events/"+event.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationRunsAfterGate(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})
	session := s.signIn(t, "gate@example.org")

	rec := s.do(t, http.MethodPost, "/api/events/not-a-uuid/cancel", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/events/not-a-uuid/cancel", session.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	rec = s.do(t, http.MethodPost, "/api/events", session.AccessToken, "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mistyped := map[string]interface{}{"duration": "three"}
	rec = s.do(t, http.MethodPost, "/api/events", "", mistyped)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")

	rec = s.do(t, http.MethodPatch, "/api/users/me", "", map[string]interface{}{"birthYear": "old"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/events", session.AccessToken, mistyped)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// public operations still report the malformed body
	rec = s.do(t, http.MethodPost, "/api/locations", "", map[string]interface{}{"name": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRegisteredEmailSignsIntoSameUser(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})

	rec := s.do(t, http.MethodPost, "/api/users", "", map[string]interface{}{"email": "Mixed@Example.org"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[model.User](t, rec)
	assert.Equal(t, "mixed@example.org", registered.Email)

	rec = s.do(t, http.MethodGet, "/api/users/exists?email=mixed@example.org", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[map[string]bool](t, rec)["exists"])

	rec = s.do(t, http.MethodPost, "/api/users", "", map[string]interface{}{"email": "mixed@example.org"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	session := s.signIn(t, "MIXED@example.org")
	require.NotNil(t, session.User)
	assert.Equal(t, registered.ID, session.User.ID)
}

func TestSessionRefreshAndLogout(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})
	session := s.signIn(t, "volunteer@example.org")

	rec := s.do(t, http.MethodGet, "/api/users/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.User.ID, decode[model.User](t, rec).ID)

	refresh := map[string]string{"refreshToken": session.RefreshToken}
	rec = s.do(t, http.MethodPost, "/api/auth/refresh", "", refresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[map[string]interface{}](t, rec)["accessToken"])

	rec = s.do(t, http.MethodPost, "/api/auth/logout", session.AccessToken, refresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/users/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/refresh", "", refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignInLinkIsSingleUse(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{})

	rec := s.do(t, http.MethodPost, "/api/auth/email", "", map[string]string{"email": "once@example.org"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	verify := map[string]string{"email": "once@example.org", "token": s.outbox.secret("once@example.org")}

	rec = s.do(t, http.MethodPost, "/api/auth/email/verify", "", verify)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/email/verify", "", verify)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, config.RateLimitConfig{RPS: 0.001, Burst: 1})

	rec := s.do(t, http.MethodGet, "/api/events/approved", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/events/approved", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
