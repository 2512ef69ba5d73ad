package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusboard/campusboard-api/internal/service"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
	"github.com/campusboard/campusboard-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// Session protects routes by requiring a valid session cookie.
func Session(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateSession(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalSession attaches claims when a valid cookie is present but
// does not block.
func OptionalSession(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateSession(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
