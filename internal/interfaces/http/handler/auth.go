package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appsecurity "github.com/listings/backend/internal/application/security"
	"github.com/listings/backend/internal/interfaces/http/dto"
	"github.com/listings/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles admin session endpoints
type AuthHandler struct {
	BaseHandler
	auth *appsecurity.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *appsecurity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterPublicRoutes mounts the unauthenticated login endpoint
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts session endpoints on the admin group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
	rg.GET("/auth/me", h.Me)
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req appsecurity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Username and password are required")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout records the logout in the audit trail
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, ok := middleware.GetAdminID(c); ok {
		h.auth.Logout(c.Request.Context(), id, c.ClientIP())
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

// Me returns the authenticated admin's account
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.GetAdminID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Not authenticated")
		return
	}

	resp, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
