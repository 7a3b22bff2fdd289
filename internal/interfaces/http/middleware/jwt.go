package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/listings/backend/internal/infrastructure/auth"
	"github.com/listings/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	AdminIDKey       = "admin_id"
	AdminUsernameKey = "admin_username"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// AdminAuth requires a valid Bearer session token and stores the admin
// identity in the request context.
func AdminAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" || !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Session token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid session token")
			return
		}

		adminID, err := claims.AdminUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid session token")
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Set(AdminUsernameKey, claims.Username)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetAdminID returns the authenticated admin's ID, or false when the
// request did not pass the auth middleware.
func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(AdminIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
