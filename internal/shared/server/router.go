package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	googleauth "wevolve-backend/internal/auth"
	"wevolve-backend/internal/jobs"
	"wevolve-backend/internal/matches"
	"wevolve-backend/internal/services/health"
	"wevolve-backend/internal/shared/config"
	"wevolve-backend/internal/shared/metrics"
	"wevolve-backend/internal/shared/server/middleware"
	"wevolve-backend/internal/shared/server/respond"
	"wevolve-backend/internal/uploads"
	"wevolve-backend/internal/users"
)

const (
	userPrefix = "/api/v1/user"
	jobPrefix  = "/api/v1/job"
)

// RouterDeps holds the handlers mounted by NewRouter. Nil handlers are
// skipped.
type RouterDeps struct {
	Config        config.Config
	Tokens        middleware.TokenVerifier
	Health        *health.Service
	UserHandler   *users.Handler
	JobHandler    *jobs.Handler
	MatchHandler  *matches.Handler
	UploadHandler *uploads.Handler
	GoogleAuth    *googleauth.GoogleService
	Now           func() time.Time
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	limiter := middleware.NewRateLimiter(deps.Now)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(clientRateLimitConfig(limiter)),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		st := healthSvc.Check(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	r.GET("/metrics", metrics.Handler())

	authRequired := middleware.Auth(deps.Tokens)

	userGroup := r.Group(userPrefix)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(userGroup)
	}
	protectedUser := userGroup.Group("", authRequired, middleware.RateLimit(userRateLimitConfig(deps.Config, limiter)))
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(protectedUser)
	}
	if deps.MatchHandler != nil {
		deps.MatchHandler.RegisterRoutes(protectedUser)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.RegisterRoutes(protectedUser)
	}

	if deps.JobHandler != nil {
		jobGroup := r.Group(jobPrefix)
		deps.JobHandler.RegisterPublicRoutes(jobGroup)
		deps.JobHandler.RegisterRoutes(jobGroup.Group("", authRequired))
	}

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(r.Group("/api/v1"))
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

// clientRateLimitConfig runs before authentication, so its buckets are keyed
// by client IP.
func clientRateLimitConfig(limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.AuthRateLimitGroup: {Rate: 1, Burst: 10},
		},
		GroupFor: middleware.RouteGroups(map[string]string{
			http.MethodPost + " " + userPrefix + "/login":    middleware.AuthRateLimitGroup,
			http.MethodPost + " " + userPrefix + "/register": middleware.AuthRateLimitGroup,
		}),
		Limiter: limiter,
	}
}

// userRateLimitConfig is mounted after Auth so each user gets a budget of
// their own.
func userRateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if cfg.MatchRateLimitRPS > 0 && cfg.MatchRateLimitBurst > 0 {
		rules[middleware.MatchRateLimitGroup] = middleware.RateLimitRule{
			Rate:  cfg.MatchRateLimitRPS,
			Burst: cfg.MatchRateLimitBurst,
		}
	}
	return middleware.RateLimitConfig{
		Rules: rules,
		GroupFor: middleware.RouteGroups(map[string]string{
			http.MethodPost + " " + userPrefix + "/match": middleware.MatchRateLimitGroup,
		}),
		Limiter: limiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
