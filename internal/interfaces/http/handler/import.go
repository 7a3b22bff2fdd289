package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/listings/backend/internal/application/importer"
	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/interfaces/http/dto"
)

// MaxImportFileSize is the default cap on uploaded CSV files
const MaxImportFileSize = 10 << 20

// ImportHandler handles CSV bulk import endpoints
type ImportHandler struct {
	BaseHandler
	imports     *importer.Service
	maxFileSize int64
}

// NewImportHandler creates an ImportHandler. A maxFileSize of zero or
// less falls back to MaxImportFileSize.
func NewImportHandler(imports *importer.Service, maxFileSize int64) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = MaxImportFileSize
	}
	return &ImportHandler{imports: imports, maxFileSize: maxFileSize}
}

// RegisterRoutes mounts import endpoints on the admin group
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/projects/import", h.uploadFor(bulk.EntityTypeProjects))
	rg.POST("/developers/import", h.uploadFor(bulk.EntityTypeDevelopers))
	rg.POST("/banks/import", h.uploadFor(bulk.EntityTypeBanks))

	rg.GET("/imports", h.List)
	rg.GET("/imports/:id", h.Get)
	rg.GET("/imports/:id/errors", h.Errors)
	rg.POST("/imports/:id/undo", h.Undo)
}

func (h *ImportHandler) uploadFor(entityType bulk.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			h.BadRequest(c, "No file uploaded")
			return
		}
		if header.Size > h.maxFileSize {
			h.BadRequest(c, h.sizeLimitMessage())
			return
		}
		if !isCSVUpload(header) {
			h.BadRequest(c, "Only CSV files are accepted")
			return
		}

		file, err := header.Open()
		if err != nil {
			h.InternalError(c, "Failed to read uploaded file")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
		if err != nil {
			h.InternalError(c, "Failed to read uploaded file")
			return
		}
		if int64(len(data)) > h.maxFileSize {
			h.BadRequest(c, h.sizeLimitMessage())
			return
		}

		job, err := h.imports.StartImport(c.Request.Context(), header.Filename, entityType, data, adminID(c), c.ClientIP())
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Accepted(c, dto.ImportAcceptedResponse{ImportJobID: job.ID})
	}
}

func (h *ImportHandler) sizeLimitMessage() string {
	return fmt.Sprintf("File exceeds the %dMB limit", h.maxFileSize>>20)
}

func isCSVUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	contentType := header.Header.Get("Content-Type")
	return contentType == "text/csv"
}

// List returns ledger entries, newest first
func (h *ImportHandler) List(c *gin.Context) {
	var query dto.ImportJobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.imports.ListJobs(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]dto.ImportJobResponse, 0, len(result.Items))
	for _, job := range result.Items {
		items = append(items, dto.ToImportJobResponse(job))
	}
	h.SuccessWithMeta(c, items, result.Total, result.Page, result.PageSize)
}

// Get returns one ledger entry
func (h *ImportHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid import job ID")
		return
	}

	job, err := h.imports.GetJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToImportJobResponse(job))
}

// Errors returns the rejected rows of one import
func (h *ImportHandler) Errors(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid import job ID")
		return
	}

	rows, err := h.imports.JobErrors(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToImportJobErrorResponses(rows))
}

// Undo reverses a completed import by soft-deleting its created records
func (h *ImportHandler) Undo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid import job ID")
		return
	}

	result, err := h.imports.UndoImport(c.Request.Context(), id, adminID(c), c.ClientIP())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.UndoImportResponse{
		Message:     "Import undone successfully",
		ImportJobID: result.Job.ID,
		UndoneCount: result.Undone,
		TotalCount:  result.Total,
	})
}
