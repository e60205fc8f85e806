package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community-backend/internal/domains/account"
	"community-backend/internal/shared/response"
	"community-backend/pkg/jwt"
)

const principalKey = "principal"

// Auth resolves the acting principal from a Bearer access token and stores
// it in the request context. Requests without a valid token never reach the
// service layer.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			c.Abort()
			return
		}

		c.Set(principalKey, account.Principal{
			AccountID: claims.AccountID,
			Roles:     claims.Roles,
		})

		c.Next()
	}
}

// AdminOnly rejects principals without the admin role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok || !p.HasRole(account.RoleAdmin) {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// PrincipalFromContext returns the principal resolved by Auth.
func PrincipalFromContext(c *gin.Context) (account.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return account.Principal{}, false
	}
	p, ok := v.(account.Principal)
	return p, ok
}
