package middleware

import (
	"errors"
	"net/http"
	"strings"

	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// context keys set by Authenticate
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextClaims   = "claims"
)

// Access is the permission level a route requires.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessPrivileged
	// AccessCredentials is public and never reads the Authorization header,
	// so a stale access token cannot block login or refresh.
	AccessCredentials
)

func (a Access) String() string {
	switch a {
	case AccessAuthenticated:
		return "authenticated"
	case AccessPrivileged:
		return "privileged"
	case AccessCredentials:
		return "credentials"
	default:
		return "public"
	}
}

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// Authenticate identifies the caller from a bearer token when one is sent.
// Requests without an Authorization header pass through as anonymous; a
// malformed, invalid or expired token is answered with 401. Routes at
// AccessCredentials are mounted without it.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrExpiredToken) {
				msg = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// Gate enforces level for one route: anonymous callers get 401 on
// authenticated and privileged routes, non-admins get 403 on privileged ones.
func Gate(level Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		if level == AccessPublic || level == AccessCredentials {
			c.Next()
			return
		}

		if _, ok := GetUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}

		if level == AccessPrivileged && GetRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you do not have permission to perform this action"})
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user id, false for anonymous requests.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// ViewerID is GetUserID without the flag; "" means anonymous.
func ViewerID(c *gin.Context) string {
	id, _ := GetUserID(c)
	return id
}

func GetRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}
