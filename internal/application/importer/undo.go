package importer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
)

// ErrJobNotFound is returned when an undo targets an unknown job id.
var ErrJobNotFound = shared.NewDomainError("IMPORT_JOB_NOT_FOUND", "Import job not found")

// UndoResult reports how many of the job's created records were
// actually soft-deleted. Total can exceed Undone under partial failure.
type UndoResult struct {
	Job    *bulk.ImportJob
	Undone int
	Total  int
}

// UndoEngine reverses a completed import by soft-deleting every record
// the job created. It is best-effort per record: a delete that fails is
// logged and skipped, and the job is marked undone regardless.
type UndoEngine struct {
	projects   listing.ProjectRepository
	developers listing.DeveloperRepository
	banks      listing.BankRepository
	jobs       bulk.ImportJobRepository
	logger     *zap.Logger
}

// NewUndoEngine creates an UndoEngine.
func NewUndoEngine(
	projects listing.ProjectRepository,
	developers listing.DeveloperRepository,
	banks listing.BankRepository,
	jobs bulk.ImportJobRepository,
	logger *zap.Logger,
) *UndoEngine {
	return &UndoEngine{
		projects:   projects,
		developers: developers,
		banks:      banks,
		jobs:       jobs,
		logger:     logger,
	}
}

// Undo reverses the job with the given id. Preconditions are checked
// in order: the job must exist, must not already be undone, must be
// completed, and must have created at least one record.
func (u *UndoEngine) Undo(ctx context.Context, jobID uuid.UUID) (*UndoResult, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	if err := job.CanUndo(); err != nil {
		return nil, err
	}

	undone := 0
	for _, recordID := range job.CreatedRecordIDs {
		if err := u.softDelete(ctx, job.EntityType, recordID); err != nil {
			u.logger.Warn("Failed to soft-delete record during undo",
				zap.String("job_id", job.ID.String()),
				zap.String("record_id", recordID.String()),
				zap.Error(err),
			)
			continue
		}
		undone++
	}

	// marked undone even under partial failure, the operator reconciles
	if err := job.MarkUndone(); err != nil {
		return nil, err
	}
	if err := u.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	u.logger.Info("Import job undone",
		zap.String("job_id", job.ID.String()),
		zap.Int("undone", undone),
		zap.Int("total", len(job.CreatedRecordIDs)),
	)

	return &UndoResult{Job: job, Undone: undone, Total: len(job.CreatedRecordIDs)}, nil
}

func (u *UndoEngine) softDelete(ctx context.Context, entityType bulk.EntityType, id uuid.UUID) error {
	switch entityType {
	case bulk.EntityTypeDevelopers:
		return u.developers.SoftDelete(ctx, id)
	case bulk.EntityTypeBanks:
		return u.banks.SoftDelete(ctx, id)
	default:
		return u.projects.SoftDelete(ctx, id)
	}
}
