// Package middleware holds the gin middleware shared by every route: the
// access guard, request IDs and structured access logging.
package middleware

import (
	"log/slog"
	"net/http"

	"fundfusion/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by the access guard
const (
	EmailKey  = "email"
	ClaimsKey = "claims"
)

// ErrorResponse is the JSON body of guard rejections
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	unauthorizedMessage = "unauthorized access"
	forbiddenMessage    = "forbidden access"
)

// TokenAuthMiddleware validates the token cookie and injects the caller's
// identity. Missing and invalid tokens get the same response.
func TokenAuthMiddleware(sessionMgr session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Message: unauthorizedMessage,
			})
			return
		}

		claims, err := sessionMgr.Verify(token)
		if err != nil {
			slog.Warn("Invalid token",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"request_id", c.GetString(RequestIDKey),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Success: false,
				Message: unauthorizedMessage,
			})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// GetEmail returns the authenticated identity set by TokenAuthMiddleware
func GetEmail(c *gin.Context) (string, bool) {
	if _, exists := c.Get(ClaimsKey); !exists {
		return "", false
	}
	return c.GetString(EmailKey), true
}

// RequireOwner aborts with 403 unless owner matches the authenticated
// identity. Handlers must return without touching the store when it reports
// false.
func RequireOwner(c *gin.Context, owner string) bool {
	email, ok := GetEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Success: false,
			Message: unauthorizedMessage,
		})
		return false
	}

	if email != owner {
		slog.Warn("Ownership check failed",
			"email", email,
			"owner", owner,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(RequestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Success: false,
			Message: forbiddenMessage,
		})
		return false
	}
	return true
}

// Guarded reports whether the access guard ran for this request.
func Guarded(c *gin.Context) bool {
	_, exists := c.Get(ClaimsKey)
	return exists
}
