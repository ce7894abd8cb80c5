package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"chat-hall/auth"
	"chat-hall/domain"
)

func newAuthRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", Authenticate(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": uint64(callerID(c))})
	})
	router.GET("/admin", Authenticate(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := newAuthRouter(tokens)

	t.Run("should reject a missing token", func(t *testing.T) {
		req := require.New(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/me", nil)

		router.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject a garbage token", func(t *testing.T) {
		req := require.New(t)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")

		router.ServeHTTP(w, r)
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should accept a valid bearer token", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(domain.UserID(42), []string{"user"})
		req.NoError(err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, r)
		req.Equal(http.StatusOK, w.Code)
		req.Contains(w.Body.String(), "42")
	})

	t.Run("should accept the token as a query parameter", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(domain.UserID(42), []string{"user"})
		req.NoError(err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/me?token="+token, nil)

		router.ServeHTTP(w, r)
		req.Equal(http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := newAuthRouter(tokens)

	t.Run("should refuse a plain user", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(domain.UserID(1), []string{"user"})
		req.NoError(err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, r)
		req.Equal(http.StatusForbidden, w.Code)
	})

	t.Run("should let an admin through", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(domain.UserID(1), []string{"user", "admin"})
		req.NoError(err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, r)
		req.Equal(http.StatusOK, w.Code)
	})
}
