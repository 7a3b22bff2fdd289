package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/listings/backend/internal/interfaces/http/dto"
)

// BanChecker answers whether a source IP is currently banned. It must
// be cheap: it runs on every public request.
type BanChecker interface {
	IsBanned(ip string) bool
}

// IPBan rejects requests from banned source addresses
func IPBan(checker BanChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker.IsBanned(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Access denied"))
			return
		}
		c.Next()
	}
}
