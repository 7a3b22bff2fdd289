package bulk

import (
	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// ImportJobError records one rejected CSV row. RowNumber is the
// physical line in the uploaded file, counting the header as line 1,
// so the first data row is 2. Rows are append-only and kept even after
// the parent job is undone.
type ImportJobError struct {
	shared.BaseEntity
	ImportJobID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RowNumber    int       `gorm:"not null"`
	ErrorMessage string    `gorm:"type:text;not null"`
	RawRowJSON   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ImportJobError) TableName() string {
	return "import_job_errors"
}

// NewImportJobError creates an error record for a rejected row
func NewImportJobError(jobID uuid.UUID, rowNumber int, message, rawRowJSON string) (*ImportJobError, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Import job is required")
	}
	if rowNumber < 2 {
		return nil, shared.NewDomainError("INVALID_ROW_NUMBER", "Row number must point at a data line")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Error message cannot be empty")
	}
	return &ImportJobError{
		BaseEntity:   shared.NewBaseEntity(),
		ImportJobID:  jobID,
		RowNumber:    rowNumber,
		ErrorMessage: message,
		RawRowJSON:   rawRowJSON,
	}, nil
}
