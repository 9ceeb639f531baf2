package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"myduka.app/pos/internal/modules/auth"
)

const CtxKeyUserEmail = "user_email"

// RequireAuth verifies the bearer token on every protected endpoint and puts
// the subject email into the request context.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			abortUnauthorized(c, "invalid token format, must be a Bearer token")
			return
		}

		email, err := tokens.Verify(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(CtxKeyUserEmail, email)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (string, bool) {
	if v, ok := c.Get(CtxKeyUserEmail); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"request_id": GetRequestID(c),
	})
}
