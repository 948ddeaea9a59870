package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "userID"
	ContextUserRoleKey = "userRole"
	ContextUserNameKey = "userName"
)

// Middleware validates the Bearer token and stores the acting user in the
// gin context for downstream handlers.
func Middleware(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token no proporcionado"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Formato de token inválido"})
			return
		}

		claims, err := tm.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token inválido o expirado"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Set(ContextUserNameKey, claims.Name)
		c.Next()
	}
}

// RequireAdmin must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRoleKey)
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Se requieren privilegios de administrador"})
			return
		}
		c.Next()
	}
}

// ActingUserID returns the authenticated user id, zero when absent.
func ActingUserID(c *gin.Context) int {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}
