package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applisting "github.com/listings/backend/internal/application/listing"
)

// ProjectHandler handles admin project management endpoints
type ProjectHandler struct {
	BaseHandler
	projects *applisting.ProjectService
}

// NewProjectHandler creates a ProjectHandler
func NewProjectHandler(projects *applisting.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// RegisterRoutes mounts project endpoints on the admin group
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects", h.Create)
	rg.GET("/projects", h.List)
	rg.GET("/projects/:id", h.Get)
	rg.PUT("/projects/:id", h.Update)
	rg.DELETE("/projects/:id", h.Delete)
	rg.POST("/projects/:id/restore", h.Restore)
	rg.POST("/projects/:id/publish", h.Publish)
	rg.POST("/projects/:id/hide", h.Hide)
	rg.POST("/projects/:id/banks/:bankId", h.LinkBank)
	rg.DELETE("/projects/:id/banks/:bankId", h.UnlinkBank)
}

// Create adds a new project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req applisting.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project payload: "+err.Error())
		return
	}

	resp, err := h.projects.Create(c.Request.Context(), req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns projects including hidden ones; include_deleted=true
// also returns soft-deleted rows.
func (h *ProjectHandler) List(c *gin.Context) {
	var query applisting.ProjectListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	query.IncludeHidden = true
	query.IncludeDeleted = c.Query("include_deleted") == "true"

	result, err := h.projects.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns one project regardless of visibility
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies a partial update
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	var req applisting.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project payload: "+err.Error())
		return
	}

	resp, err := h.projects.Update(c.Request.Context(), id, req, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a project
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore clears a project's soft delete
func (h *ProjectHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	if err := h.projects.Restore(c.Request.Context(), id, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Project restored"})
}

// Publish makes a project publicly visible
func (h *ProjectHandler) Publish(c *gin.Context) {
	h.setVisibility(c, true)
}

// Hide removes a project from public listings
func (h *ProjectHandler) Hide(c *gin.Context) {
	h.setVisibility(c, false)
}

func (h *ProjectHandler) setVisibility(c *gin.Context, visible bool) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}

	resp, err := h.projects.SetVisibility(c.Request.Context(), id, visible, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LinkBank attaches a partner bank to a project
func (h *ProjectHandler) LinkBank(c *gin.Context) {
	h.bankLink(c, h.projects.LinkBank)
}

// UnlinkBank detaches a partner bank from a project
func (h *ProjectHandler) UnlinkBank(c *gin.Context) {
	h.bankLink(c, h.projects.UnlinkBank)
}

func (h *ProjectHandler) bankLink(c *gin.Context, op func(ctx context.Context, projectID, bankID uuid.UUID, adminID *uuid.UUID, ip string) error) {
	projectID, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID")
		return
	}
	bankID, err := uuid.Parse(c.Param("bankId"))
	if err != nil {
		h.BadRequest(c, "Invalid bank ID")
		return
	}

	if err := op(c.Request.Context(), projectID, bankID, adminID(c), c.ClientIP()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
