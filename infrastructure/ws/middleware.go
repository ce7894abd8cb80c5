package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chat-hall/auth"
	"chat-hall/domain"
)

const (
	ctxUserID = "user_id"
	ctxClaims = "claims"
)

// Authenticate validates the Bearer token and injects the caller's
// identity into the gin context for downstream handlers.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// WebSocket clients from browsers cannot set headers on the
			// upgrade request, so the token may come as a query parameter.
			header = "Bearer " + c.Query("token")
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is missing"})
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		userID, err := claims.User()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed token subject"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ctxClaims).(*auth.CustomClaims)
		if !ok || !claims.HasRole("admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func callerID(c *gin.Context) domain.UserID {
	return c.MustGet(ctxUserID).(domain.UserID)
}
