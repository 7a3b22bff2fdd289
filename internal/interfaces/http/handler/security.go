package handler

import (
	"github.com/gin-gonic/gin"

	appsecurity "github.com/listings/backend/internal/application/security"
)

// SecurityHandler handles audit trail and IP ban endpoints
type SecurityHandler struct {
	BaseHandler
	audits *appsecurity.AuditService
	bans   *appsecurity.IPBanService
}

// NewSecurityHandler creates a SecurityHandler
func NewSecurityHandler(audits *appsecurity.AuditService, bans *appsecurity.IPBanService) *SecurityHandler {
	return &SecurityHandler{audits: audits, bans: bans}
}

// RegisterRoutes mounts security endpoints on the admin group
func (h *SecurityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.ListAuditLogs)
	rg.GET("/ip-bans", h.ListBans)
	rg.POST("/ip-bans", h.CreateBan)
	rg.DELETE("/ip-bans/:ip", h.DeleteBan)
}

// ListAuditLogs returns audit entries newest first
func (h *SecurityHandler) ListAuditLogs(c *gin.Context) {
	var query appsecurity.AuditLogQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.audits.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListBans returns the current IP bans
func (h *SecurityHandler) ListBans(c *gin.Context) {
	var req struct {
		Page     int `form:"page,default=1" binding:"omitempty,min=1"`
		PageSize int `form:"page_size,default=50" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.bans.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// CreateBan bans an IP address
func (h *SecurityHandler) CreateBan(c *gin.Context) {
	var req appsecurity.CreateBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid ban payload: "+err.Error())
		return
	}

	resp, err := h.bans.Create(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// DeleteBan lifts the ban on an IP address
func (h *SecurityHandler) DeleteBan(c *gin.Context) {
	ip := c.Param("ip")
	if ip == "" {
		h.BadRequest(c, "Missing IP address")
		return
	}
	if err := h.bans.Delete(c.Request.Context(), ip, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
