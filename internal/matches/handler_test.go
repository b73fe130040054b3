package matches

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
	"wevolve-backend/match/model"
)

func TestMatchHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	tokens, err := auth.NewTokens("secret", "test", time.Hour)
	require.NoError(t, err)
	token, err := tokens.Sign(f.userID, "asha@example.com", "Asha")
	require.NoError(t, err)

	r := gin.New()
	group := r.Group("/api/v1/user")
	group.Use(middleware.Auth(tokens))
	NewHandler(f.svc).RegisterRoutes(group)

	post := func(body string, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/user/match", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"job_id": 101}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		StatusCode int               `json:"statusCode"`
		Success    bool              `json:"success"`
		Data       model.MatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 70, body.Data.MatchScore)
	assert.Equal(t, "Good match — minor gaps in experience.", body.Data.RecommendationReason)

	w = post(`{"job_id": "404"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"not_found"`)

	w = post(`{}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"job_id"`)

	w = post(`{"job_id": "101"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
