package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/listings/backend/internal/domain/bulk"
)

// ImportAcceptedResponse is returned when an upload is queued
type ImportAcceptedResponse struct {
	ImportJobID uuid.UUID `json:"importJobId"`
}

// ImportJobResponse is one ledger entry in API responses
type ImportJobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Filename         string     `json:"filename"`
	EntityType       string     `json:"entity_type"`
	Status           string     `json:"status"`
	TotalRows        int        `json:"total_rows"`
	InsertedCount    int        `json:"inserted_count"`
	UpdatedCount     int        `json:"updated_count"`
	FailedCount      int        `json:"failed_count"`
	CreatedByAdminID *uuid.UUID `json:"created_by_admin_id,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	UndoneAt         *time.Time `json:"undone_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToImportJobResponse converts a ledger entry to its API shape
func ToImportJobResponse(job *bulk.ImportJob) ImportJobResponse {
	return ImportJobResponse{
		ID:               job.ID,
		Filename:         job.Filename,
		EntityType:       string(job.EntityType),
		Status:           string(job.Status),
		TotalRows:        job.TotalRows,
		InsertedCount:    job.InsertedCount,
		UpdatedCount:     job.UpdatedCount,
		FailedCount:      job.FailedCount,
		CreatedByAdminID: job.CreatedByAdminID,
		CompletedAt:      job.CompletedAt,
		UndoneAt:         job.UndoneAt,
		CreatedAt:        job.CreatedAt,
	}
}

// ImportJobErrorResponse is one rejected row in API responses
type ImportJobErrorResponse struct {
	ID           uuid.UUID `json:"id"`
	RowNumber    int       `json:"row_number"`
	ErrorMessage string    `json:"error_message"`
	RawRowJSON   string    `json:"raw_row_json,omitempty"`
}

// ToImportJobErrorResponses converts rejected rows to their API shape
func ToImportJobErrorResponses(rows []*bulk.ImportJobError) []ImportJobErrorResponse {
	out := make([]ImportJobErrorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ImportJobErrorResponse{
			ID:           r.ID,
			RowNumber:    r.RowNumber,
			ErrorMessage: r.ErrorMessage,
			RawRowJSON:   r.RawRowJSON,
		})
	}
	return out
}

// ImportJobListQuery filters the ledger listing
type ImportJobListQuery struct {
	Filename   string `form:"filename"`
	EntityType string `form:"entity_type" binding:"omitempty,oneof=projects developers banks"`
	Status     string `form:"status" binding:"omitempty,oneof=pending processing completed failed undone"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ToFilter converts the query to a repository filter
func (q ImportJobListQuery) ToFilter() bulk.ImportJobFilter {
	return bulk.ImportJobFilter{
		Filename:   q.Filename,
		EntityType: bulk.EntityType(q.EntityType),
		Status:     bulk.ImportStatus(q.Status),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// UndoImportResponse summarizes a completed undo
type UndoImportResponse struct {
	Message     string    `json:"message"`
	ImportJobID uuid.UUID `json:"importJobId"`
	UndoneCount int       `json:"undone_count"`
	TotalCount  int       `json:"total_count"`
}
