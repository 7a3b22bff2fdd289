package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/bulk"
)

// ImportJobModel is the persistence model for the import ledger.
// CreatedRecordIDs is stored as a JSON array column, the only durable
// link between a job and the records it produced.
type ImportJobModel struct {
	AggregateModel
	Filename         string     `gorm:"type:varchar(255);not null"`
	EntityType       string     `gorm:"type:varchar(20);not null;index"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	TotalRows        int        `gorm:"not null;default:0"`
	InsertedCount    int        `gorm:"not null;default:0"`
	UpdatedCount     int        `gorm:"not null;default:0"`
	FailedCount      int        `gorm:"not null;default:0"`
	CreatedRecordIDs string     `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedByAdminID *uuid.UUID `gorm:"type:uuid;index"`
	CompletedAt      *time.Time
	UndoneAt         *time.Time
}

// TableName returns the table name for GORM
func (ImportJobModel) TableName() string {
	return "import_jobs"
}

// ToDomain converts the persistence model to a domain ImportJob
func (m *ImportJobModel) ToDomain() *bulk.ImportJob {
	job := &bulk.ImportJob{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Filename:          m.Filename,
		EntityType:        bulk.EntityType(m.EntityType),
		Status:            bulk.ImportStatus(m.Status),
		TotalRows:         m.TotalRows,
		InsertedCount:     m.InsertedCount,
		UpdatedCount:      m.UpdatedCount,
		FailedCount:       m.FailedCount,
		CreatedByAdminID:  m.CreatedByAdminID,
		CompletedAt:       m.CompletedAt,
		UndoneAt:          m.UndoneAt,
	}

	ids := []uuid.UUID{}
	if m.CreatedRecordIDs != "" {
		_ = json.Unmarshal([]byte(m.CreatedRecordIDs), &ids)
	}
	job.CreatedRecordIDs = ids

	return job
}

// FromDomain populates the persistence model from a domain ImportJob
func (m *ImportJobModel) FromDomain(j *bulk.ImportJob) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Filename = j.Filename
	m.EntityType = string(j.EntityType)
	m.Status = string(j.Status)
	m.TotalRows = j.TotalRows
	m.InsertedCount = j.InsertedCount
	m.UpdatedCount = j.UpdatedCount
	m.FailedCount = j.FailedCount
	m.CreatedByAdminID = j.CreatedByAdminID
	m.CompletedAt = j.CompletedAt
	m.UndoneAt = j.UndoneAt

	if b, err := json.Marshal(j.CreatedRecordIDs); err == nil {
		m.CreatedRecordIDs = string(b)
	} else {
		m.CreatedRecordIDs = "[]"
	}
}

// ImportJobErrorModel is the persistence model for per-row import errors
type ImportJobErrorModel struct {
	BaseModel
	ImportJobID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RowNumber    int       `gorm:"not null"`
	ErrorMessage string    `gorm:"type:text;not null"`
	RawRowJSON   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ImportJobErrorModel) TableName() string {
	return "import_job_errors"
}

// ToDomain converts the persistence model to a domain ImportJobError
func (m *ImportJobErrorModel) ToDomain() *bulk.ImportJobError {
	return &bulk.ImportJobError{
		BaseEntity:   m.BaseModel.ToDomain(),
		ImportJobID:  m.ImportJobID,
		RowNumber:    m.RowNumber,
		ErrorMessage: m.ErrorMessage,
		RawRowJSON:   m.RawRowJSON,
	}
}

// FromDomain populates the persistence model from a domain ImportJobError
func (m *ImportJobErrorModel) FromDomain(e *bulk.ImportJobError) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ImportJobID = e.ImportJobID
	m.RowNumber = e.RowNumber
	m.ErrorMessage = e.ErrorMessage
	m.RawRowJSON = e.RawRowJSON
}
