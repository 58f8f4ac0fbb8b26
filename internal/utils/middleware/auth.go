package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID.
	UserIDKey = "user_id"
	// EmailKey is the context key for email.
	EmailKey = "email"
)

// TokenValidator validates access tokens.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// Auth returns a middleware that validates bearer access tokens.
// On success it sets user_id and email in the context.
// If optional is true, missing or invalid tokens do not abort the request.
func Auth(validator TokenValidator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			if !optional {
				abortUnauthorized(c, "UNAUTHORIZED", "Authorization header required")
				return
			}
			c.Next()
			return
		}

		claims, err := validator.ValidateAccessToken(token)
		if err != nil {
			if !optional {
				if errors.Is(err, auth.ErrExpiredToken) {
					abortUnauthorized(c, "TOKEN_EXPIRED", "Access token expired")
				} else {
					abortUnauthorized(c, "INVALID_TOKEN", "Invalid access token")
				}
				return
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID())
		c.Set(EmailKey, claims.Email().String())

		c.Next()
	}
}

// RequireAuth returns a middleware that requires a valid access token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, false)
}

// OptionalAuth returns a middleware that optionally validates access tokens.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, true)
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="teamhub"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
}

// GetUserID returns the authenticated user ID from context.
func GetUserID(c *gin.Context) (collaboration.UserID, bool) {
	if val, exists := c.Get(UserIDKey); exists {
		if userID, ok := val.(collaboration.UserID); ok {
			return userID, true
		}
	}
	return collaboration.UserID{}, false
}

// GetEmail returns the email from context.
// Returns empty string if not found.
func GetEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// IsAuthenticated returns true if the user is authenticated.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetUserID(c)
	return ok
}
