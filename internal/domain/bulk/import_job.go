package bulk

import (
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// ImportStatus represents the lifecycle state of an import job
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
	ImportStatusUndone     ImportStatus = "undone"
)

// IsValid checks if the status is valid
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusPending, ImportStatusProcessing, ImportStatusCompleted, ImportStatusFailed, ImportStatusUndone:
		return true
	}
	return false
}

// IsTerminal reports whether no further row processing can happen in this status
func (s ImportStatus) IsTerminal() bool {
	switch s {
	case ImportStatusCompleted, ImportStatusFailed, ImportStatusUndone:
		return true
	}
	return false
}

// EntityType identifies which importer a job ran
type EntityType string

const (
	EntityTypeProjects   EntityType = "projects"
	EntityTypeDevelopers EntityType = "developers"
	EntityTypeBanks      EntityType = "banks"
)

// IsValid checks if the entity type is valid
func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeProjects, EntityTypeDevelopers, EntityTypeBanks:
		return true
	}
	return false
}

// ImportJob is the ledger record for one CSV import attempt. It tracks
// the run's counters, the ids of every record it created, and whether
// the import has been reversed.
type ImportJob struct {
	shared.BaseAggregateRoot
	Filename         string       `gorm:"type:varchar(255);not null"`
	EntityType       EntityType   `gorm:"type:varchar(20);not null;index"`
	Status           ImportStatus `gorm:"type:varchar(20);not null;index"`
	TotalRows        int          `gorm:"not null;default:0"`
	InsertedCount    int          `gorm:"not null;default:0"`
	UpdatedCount     int          `gorm:"not null;default:0"`
	FailedCount      int          `gorm:"not null;default:0"`
	CreatedRecordIDs []uuid.UUID  `gorm:"-"`
	CreatedByAdminID *uuid.UUID   `gorm:"type:uuid;index"`
	CompletedAt      *time.Time
	UndoneAt         *time.Time
}

// TableName returns the table name for GORM
func (ImportJob) TableName() string {
	return "import_jobs"
}

// NewImportJob creates a new pending import job
func NewImportJob(filename string, entityType EntityType, createdBy *uuid.UUID) (*ImportJob, error) {
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot be empty")
	}
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown import entity type: "+string(entityType))
	}

	return &ImportJob{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Filename:          filename,
		EntityType:        entityType,
		Status:            ImportStatusPending,
		CreatedByAdminID:  createdBy,
		CreatedRecordIDs:  []uuid.UUID{},
	}, nil
}

// Start moves the job into processing. Only a pending job can start.
func (j *ImportJob) Start() error {
	if j.Status != ImportStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Import job is not pending")
	}
	j.Status = ImportStatusProcessing
	j.Touch()
	j.IncrementVersion()
	return nil
}

// RecordInsert registers one successfully inserted record
func (j *ImportJob) RecordInsert(recordID uuid.UUID) {
	j.InsertedCount++
	j.CreatedRecordIDs = append(j.CreatedRecordIDs, recordID)
}

// RecordFailure registers one failed row
func (j *ImportJob) RecordFailure() {
	j.FailedCount++
}

// Complete finalizes a processing job. totalRows is the count of data
// rows parsed from the file; inserted + failed must account for all of them.
func (j *ImportJob) Complete(totalRows int) error {
	if j.Status != ImportStatusProcessing {
		return shared.NewDomainError("INVALID_STATE", "Import job is not processing")
	}
	if j.InsertedCount+j.FailedCount != totalRows {
		return shared.NewDomainError("COUNT_MISMATCH", "Inserted and failed counts do not cover all rows")
	}
	j.TotalRows = totalRows
	j.Status = ImportStatusCompleted
	now := time.Now()
	j.CompletedAt = &now
	j.Touch()
	j.IncrementVersion()
	return nil
}

// Fail finalizes a job after a structural error. Allowed from pending
// or processing; counters keep whatever progress was made.
func (j *ImportJob) Fail(totalRows int) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Import job is already finalized")
	}
	j.TotalRows = totalRows
	j.Status = ImportStatusFailed
	now := time.Now()
	j.CompletedAt = &now
	j.Touch()
	j.IncrementVersion()
	return nil
}

// ErrAlreadyUndone is returned when undo is attempted on an undone job
var ErrAlreadyUndone = shared.NewDomainError("ALREADY_UNDONE", "Import has already been undone")

// ErrNothingToUndo is returned when the job created no records
var ErrNothingToUndo = shared.NewDomainError("NOTHING_TO_UNDO", "No records to undo for this import")

// ErrNotUndoable is returned when the job is not in a completed state
var ErrNotUndoable = shared.NewDomainError("NOT_UNDOABLE", "Only completed imports can be undone")

// CanUndo checks the undo preconditions in order and returns the first
// violation. Undo is allowed only from completed, never from failed or
// while rows are still being written.
func (j *ImportJob) CanUndo() error {
	if j.Status == ImportStatusUndone {
		return ErrAlreadyUndone
	}
	if j.Status != ImportStatusCompleted {
		return ErrNotUndoable
	}
	if len(j.CreatedRecordIDs) == 0 {
		return ErrNothingToUndo
	}
	return nil
}

// MarkUndone transitions the job to undone and stamps UndoneAt.
// Partial soft-delete failures do not block this transition.
func (j *ImportJob) MarkUndone() error {
	if err := j.CanUndo(); err != nil {
		return err
	}
	j.Status = ImportStatusUndone
	now := time.Now()
	j.UndoneAt = &now
	j.Touch()
	j.IncrementVersion()
	return nil
}

// IsUndone reports whether the job has been reversed
func (j *ImportJob) IsUndone() bool {
	return j.Status == ImportStatusUndone
}
