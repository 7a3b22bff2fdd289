package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appanalytics "github.com/listings/backend/internal/application/analytics"
)

// VisitorIDHeader identifies anonymous visitors across requests
const VisitorIDHeader = "X-Visitor-ID"

// AnalyticsHandler handles page-view tracking and the admin dashboard
type AnalyticsHandler struct {
	BaseHandler
	analytics *appanalytics.Service
}

// NewAnalyticsHandler creates an AnalyticsHandler
func NewAnalyticsHandler(analytics *appanalytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RegisterRoutes mounts the dashboard on the admin group
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/dashboard", h.Dashboard)
}

// RegisterPublicRoutes mounts the tracking endpoint on the public group
func (h *AnalyticsHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/track", h.Track)
}

// Track records a page view. Ingestion is fire-and-forget: the client
// always gets a 204 and failures are only logged.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req appanalytics.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid track payload")
		return
	}

	h.analytics.Track(c.Request.Context(), req, c.GetHeader(VisitorIDHeader), c.ClientIP())
	h.NoContent(c)
}

// Dashboard returns view totals for the last N days (default 30)
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	resp, err := h.analytics.Dashboard(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
