package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/http-api/service"
	"reviewhub/internal/shared"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization
// header and stores the authenticated principal in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := bearerPrincipal(c, authService)
		if !ok {
			return
		}
		if principal == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing authorization header"})
			c.Abort()
			return
		}

		c.Set(principalKey, *principal)
		c.Set("userID", principal.UserID)
		c.Set("email", principal.Email)
		c.Set("role", principal.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the principal when a token is supplied but
// lets anonymous requests through. Read endpoints use it to tailor
// visibility and the voter's own choice without requiring a login.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := bearerPrincipal(c, authService)
		if !ok {
			return
		}
		if principal != nil {
			c.Set(principalKey, *principal)
			c.Set("userID", principal.UserID)
			c.Set("email", principal.Email)
			c.Set("role", principal.Role)
		}
		c.Next()
	}
}

// bearerPrincipal extracts and validates the bearer token. It returns
// (nil, true) when no header is present, and (nil, false) after it has
// already written a response for a malformed or invalid token.
func bearerPrincipal(c *gin.Context, authService service.AuthService) (*shared.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, true
	}

	// Expected format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	principal, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		c.Abort()
		return nil, false
	}
	return principal, true
}

// RequireRole checks if the authenticated principal has the specified role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "role not found in token"})
			c.Abort()
			return
		}

		userRole, ok := roleInterface.(string)
		if !ok || userRole != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin is a convenience function for requiring the admin role.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("ADMIN")
}

// PrincipalFromContext returns the authenticated principal set by
// AuthMiddleware. The second return is false on anonymous requests.
func PrincipalFromContext(c *gin.Context) (shared.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return shared.Principal{}, false
	}
	principal, ok := v.(shared.Principal)
	return principal, ok
}
