package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"myduka.app/pos/internal/modules/auth"
)

func newAuthedRouter(logSink *bytes.Buffer, tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(logSink, nil))

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.GET("/private", RequireAuth(tokens), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": user})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Minute)

	t.Run("missing header is rejected", func(t *testing.T) {
		r := newAuthedRouter(&bytes.Buffer{}, tokens)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		r := newAuthedRouter(&bytes.Buffer{}, tokens)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Basic abc123")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid token reaches handler with subject", func(t *testing.T) {
		token, err := tokens.Issue("clerk@myduka.app")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		var logSink bytes.Buffer
		r := newAuthedRouter(&logSink, tokens)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body %q)", w.Code, http.StatusOK, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "clerk@myduka.app") {
			t.Errorf("handler did not see the token subject, body %q", w.Body.String())
		}
		// the access log carries the acting user
		if !strings.Contains(logSink.String(), "user=clerk@myduka.app") {
			t.Errorf("access log missing user attribute: %q", logSink.String())
		}
	})
}

func TestCurrentUserUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if user, ok := CurrentUser(c); ok {
		t.Fatalf("CurrentUser on bare context = %q, want unset", user)
	}
}
