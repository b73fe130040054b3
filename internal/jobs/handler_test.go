package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo())
	require.NoError(t, svc.Seed(context.Background()))
	h := NewHandler(svc)
	r := gin.New()
	group := r.Group("/api/v1/job")
	h.RegisterPublicRoutes(group)
	h.RegisterRoutes(group)
	return r
}

func TestListJobsWireShape(t *testing.T) {
	r := newJobsRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/job/alljobs", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)
	first := body.Data[0]
	assert.Equal(t, "101", first["job_id"])
	assert.Equal(t, []any{600000.0, 1000000.0}, first["salary_range"])
	assert.Equal(t, map[string]any{"min": 1.0, "max": 3.0}, first["experience_required"])
}

func TestGetJob(t *testing.T) {
	r := newJobsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/job/104", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"machine learning"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/job/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"not_found"`)
}

func TestCreateJob(t *testing.T) {
	r := newJobsRouter(t)
	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/job", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"job_id": "200", "title": "SRE", "location": "Remote", "experience_required": {"min": 1, "max": 4}, "salary_range": [1, 2], "required_skills": "Go, Linux"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"required_skills":["go","linux"]`)

	w = post(`{"job_id": "200", "experience_required": {"min": 1, "max": 4}, "salary_range": [1, 2]}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(`{"job_id": "201", "salary_range": [1, 2]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"experience_required"`)

	w = post(`{"job_id": "202", "experience_required": {"min": 1, "max": 4}, "salary_range": [3, 2]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"salary_range"`)
}
