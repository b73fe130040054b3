package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wevolve-backend/internal/shared/auth"
	"wevolve-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewTokens("test-secret", "test", time.Hour)
	require.NoError(t, err)

	h := NewHandler(newTestService(t), tokens, false)
	r := gin.New()
	group := r.Group("/api/v1/user")
	h.RegisterPublicRoutes(group)
	protected := group.Group("")
	protected.Use(middleware.Auth(tokens))
	h.RegisterRoutes(protected)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Success    bool            `json:"success"`
	Error      struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

var registerBody = map[string]any{
	"fullname":            "Asha Rao",
	"email":               "asha@example.com",
	"password":            "correct-horse",
	"skills":              "Python, React",
	"experience_years":    2,
	"degree":              "B.Tech",
	"field":               "CS",
	"cgpa":                "8",
	"preferred_locations": "Bangalore",
	"preferred_roles":     "Frontend",
	"expected_salary":     "900000",
}

func TestRegisterLoginAndMe(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)

	var session struct {
		User        map[string]any `json:"User"`
		AccessToken string         `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Asha Rao", session.User["fullname"])
	requirement := session.User["requirment"].(map[string]any)
	assert.Equal(t, []any{"python", "react"}, requirement["skills"])
	assert.NotContains(t, w.Body.String(), "correct-horse")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w = doJSON(r, http.MethodPost, "/api/v1/user/login", "", map[string]any{"email": "asha@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &session))

	w = doJSON(r, http.MethodGet, "/api/v1/user/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me View
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &me))
	assert.Equal(t, "asha@example.com", me.Email)
}

func TestRegisterErrors(t *testing.T) {
	r := newTestRouter(t)

	bad := map[string]any{"fullname": "A", "email": "not-an-email", "password": "correct-horse"}
	w := doJSON(r, http.MethodPost, "/api/v1/user/register", "", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["field"])

	noSalary := map[string]any{"fullname": "A", "email": "a@example.com", "password": "correct-horse", "experience_years": 1}
	w = doJSON(r, http.MethodPost, "/api/v1/user/register", "", noSalary)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "expected_salary", decode(t, w).Error.Details["field"])

	w = doJSON(r, http.MethodPost, "/api/v1/user/register", "", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/v1/user/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w).Error.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/v1/user/register", "", registerBody).Code)

	w := doJSON(r, http.MethodPost, "/api/v1/user/login", "", map[string]any{"email": "asha@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateRequiresAuthAndAppliesPatch(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/update", "", map[string]any{"skills": "go"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/user/register", "", registerBody)
	var session struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &session))

	w = doJSON(r, http.MethodPost, "/api/v1/user/update", session.AccessToken, map[string]any{"skills": "Go, SQL", "expected_salary": 1200000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view View
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &view))
	assert.Equal(t, []string{"go", "sql"}, view.Requirement.Skills)
	assert.Equal(t, 1200000.0, view.Requirement.ExpectedSalary)
	assert.Equal(t, 2.0, view.Requirement.ExperienceYears)

	w = doJSON(r, http.MethodPost, "/api/v1/user/logout", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
