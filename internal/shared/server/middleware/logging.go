package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wevolve-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log can report them.
const (
	JobIDKey      = "jobId"
	MatchScoreKey = "matchScore"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID := UserIDFromContext(c); userID != "" {
			fields["user_id"] = userID
		}
		if jobID := c.GetString(JobIDKey); jobID != "" {
			fields["job_id"] = jobID
		}
		if score, ok := c.Get(MatchScoreKey); ok {
			fields["match_score"] = score
		}
		telemetry.Info("request.complete", fields)
	}
}
