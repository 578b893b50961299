package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

// ContextRoleKey is the gin context key storing the active role claims.
const ContextRoleKey = "currentRole"

// Role resolves the active role for the request from a bearer token.
// Requests without a token act as read-only viewers rather than being
// rejected; an invalid or expired token is an error so a teacher never
// silently degrades to viewer mid-session.
func Role(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(ContextRoleKey, &models.RoleClaims{Role: models.RoleViewer})
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Set(ContextRoleKey, &models.RoleClaims{Role: models.RoleViewer})
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextRoleKey, claims)
		c.Next()
	}
}

// ActiveRole returns the role resolved for the current request.
func ActiveRole(c *gin.Context) models.Role {
	if v, exists := c.Get(ContextRoleKey); exists {
		if claims, ok := v.(*models.RoleClaims); ok {
			return claims.Role
		}
	}
	return models.RoleViewer
}
