package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wevolve-backend/internal/shared/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	return newTestAppWithMatchLimit(t, 100, 100)
}

func newTestAppWithMatchLimit(t *testing.T, rps float64, burst int) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(config.Config{
		Env:                 "test",
		ObjectStoreType:     "local",
		LocalStoreDir:       t.TempDir(),
		JWTExpirationHours:  1,
		BcryptCost:          4,
		MatchRateLimitRPS:   rps,
		MatchRateLimitBurst: burst,
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func register(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/v1/user/register", "", map[string]any{
		"fullname":            "Test User",
		"email":               email,
		"password":            "long-enough-pw",
		"skills":              "React",
		"experience_years":    2,
		"preferred_locations": "Bangalore",
		"expected_salary":     800000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

func call(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildInMemoryServesMatchFlow(t *testing.T) {
	app := newTestApp(t)
	assert.Nil(t, app.DB)

	w := call(app.Router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage":"memory"`)

	w = call(app.Router, http.MethodGet, "/api/v1/job/alljobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var postings []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &postings))
	assert.Len(t, postings, 6)

	w = call(app.Router, http.MethodPost, "/api/v1/user/match", "", map[string]any{"job_id": "101"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(app.Router, http.MethodPost, "/api/v1/user/register", "", map[string]any{
		"fullname":            "Ravi Kumar",
		"email":               "ravi@example.com",
		"password":            "long-enough-pw",
		"skills":              "React, JavaScript",
		"experience_years":    2,
		"preferred_locations": "Bangalore",
		"expected_salary":     800000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	w = call(app.Router, http.MethodPost, "/api/v1/user/match", session.AccessToken, map[string]any{"job_id": 101})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var result struct {
		MatchScore    int      `json:"match_score"`
		MissingSkills []string `json:"missing_skills"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 80, result.MatchScore)
	assert.Equal(t, []string{"css", "html"}, result.MissingSkills)

	w = call(app.Router, http.MethodPost, "/api/v1/user/match", session.AccessToken, map[string]any{"job_id": "999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(app.Router, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, w.Body.String(), "match_completed_total")
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	_, err := Build(config.Config{Env: "production", JWTSecret: "s"})
	assert.Error(t, err)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	app := newTestApp(t)
	w := call(app.Router, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestMatchBudgetIsPerUserBehindSharedIP(t *testing.T) {
	app := newTestAppWithMatchLimit(t, 0.001, 2)
	first := register(t, app.Router, "first@example.com")
	second := register(t, app.Router, "second@example.com")
	body := map[string]any{"job_id": "101"}

	for i := 0; i < 2; i++ {
		w := call(app.Router, http.MethodPost, "/api/v1/user/match", first, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := call(app.Router, http.MethodPost, "/api/v1/user/match", first, body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w = call(app.Router, http.MethodPost, "/api/v1/user/match", second, body)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
