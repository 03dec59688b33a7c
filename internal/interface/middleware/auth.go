package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cityride/cityride-backend/pkg/response"
)

const CtxUserIDKey = "userID"

// TokenVerifier is the single capability the gate needs. Small so tests
// can fake it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth extracts the bearer token, verifies signature and expiry, and
// binds the user id to the request context. It never touches the store:
// handlers are responsible for confirming the id still resolves.
func Auth(jwt TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Message(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			response.Message(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		userID, err := jwt.Verify(token)
		if err != nil {
			response.Message(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the id bound by Auth.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
