package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// Authenticate verifies the Bearer token and stores the caller's identity on
// the request context.
func Authenticate(auth *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin allows only admin and super-admin callers past. It must run
// after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ctxRole)
		r, ok := role.(domain.Role)
		if !ok || !r.IsAdmin() {
			respondError(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) string {
	id, _ := c.Get(ctxUserID)
	s, _ := id.(string)
	return s
}
