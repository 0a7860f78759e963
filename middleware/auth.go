package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"surveillance-map/be/logging"
	"surveillance-map/be/models"
	"surveillance-map/be/services"
)

const (
	ContextUser     = "user"
	ContextUsername = "username"
	ContextRole     = "role"
)

// TokenVerifier validates a session token.
type TokenVerifier interface {
	Verify(token string) (*services.Claims, error)
}

// AuthMiddleware requires a valid Bearer token. A missing token is 401, a
// present but invalid or expired one is 403.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			logging.Debug().Err(err).Str("path", c.FullPath()).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUser, claims.User())
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got, _ := c.Get(ContextRole); got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "God account required"})
			return
		}
		c.Next()
	}
}

// CurrentUsername returns the authenticated identity set by AuthMiddleware.
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
