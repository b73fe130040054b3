package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wevolve-backend/internal/shared/auth"
	"wevolve-backend/internal/shared/server/respond"
)

// AccessTokenCookie carries the JWT for browser clients.
const AccessTokenCookie = "accessToken"

const userIDKey = "userId"

// TokenVerifier validates an access token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth requires a valid JWT from the Authorization header or the access
// token cookie and stores the identity in context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.UserID())
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		return token, token != ""
	}
	cookie, err := c.Cookie(AccessTokenCookie)
	if err != nil || strings.TrimSpace(cookie) == "" {
		return "", false
	}
	return strings.TrimSpace(cookie), true
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return contextString(c, userIDKey)
}

func contextString(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
