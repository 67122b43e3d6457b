package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/policy"
	"mining-ops-api-server/internal/store"
)

const principalKey = "principal"

// Authenticate validates the bearer token and resolves it to a Principal.
// The user record is re-read on every request so a deactivated account is
// locked out immediately, token or not.
func Authenticate(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Set(principalKey, auth.Principal{
			ID:       user.ID.Hex(),
			UserID:   user.UserID,
			UserName: user.UserName,
			Email:    user.Email,
			Role:     user.Role,
		})

		c.Next()
	}
}

// GetPrincipal returns the caller identity placed by Authenticate.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

// Require gates a route on the permission matrix. It must run after
// Authenticate; denial happens before any handler side effect.
func Require(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !policy.Allowed(principal.Role, op) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}
