package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/domain/shared"
)

// TaskQueue accepts jobs for background execution.
type TaskQueue interface {
	Enqueue(job *bulk.ImportJob, data []byte) error
}

// Service is the application entry point for CSV imports: it records
// the ledger entry, hands the file to the background queue, and serves
// job listings, per-row errors, and undo.
type Service struct {
	jobs      bulk.ImportJobRepository
	jobErrors bulk.ImportJobErrorRepository
	queue     TaskQueue
	undo      *UndoEngine
	auditLogs audit.Repository
	logger    *zap.Logger
}

// NewService creates a Service.
func NewService(
	jobs bulk.ImportJobRepository,
	jobErrors bulk.ImportJobErrorRepository,
	queue TaskQueue,
	undo *UndoEngine,
	auditLogs audit.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		jobs:      jobs,
		jobErrors: jobErrors,
		queue:     queue,
		undo:      undo,
		auditLogs: auditLogs,
		logger:    logger,
	}
}

// StartImport records a new job and dispatches the file for background
// processing. It returns as soon as the job is queued; callers poll the
// job id for progress.
func (s *Service) StartImport(ctx context.Context, filename string, entityType bulk.EntityType, data []byte, adminID *uuid.UUID, ip string) (*bulk.ImportJob, error) {
	job, err := bulk.NewImportJob(filename, entityType, adminID)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(job, data); err != nil {
		// the ledger entry exists but nothing will run it
		if failErr := job.Fail(0); failErr == nil {
			if saveErr := s.jobs.Save(ctx, job); saveErr != nil {
				s.logger.Error("Failed to mark undispatched import job as failed",
					zap.String("job_id", job.ID.String()),
					zap.Error(saveErr),
				)
			}
		}
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionImport, job.ID,
		fmt.Sprintf("Imported %s from %s", entityType, filename), ip)

	return job, nil
}

// GetJob returns one ledger entry by id.
func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*bulk.ImportJob, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListJobs returns ledger entries matching the filter, newest first.
func (s *Service) ListJobs(ctx context.Context, filter bulk.ImportJobFilter) (*shared.Paginated[*bulk.ImportJob], error) {
	return s.jobs.FindAll(ctx, filter)
}

// JobErrors returns the per-row errors for a job, in file order.
func (s *Service) JobErrors(ctx context.Context, jobID uuid.UUID) ([]*bulk.ImportJobError, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.jobErrors.FindByJob(ctx, jobID)
}

// UndoImport reverses a completed import and records the action in the
// audit trail.
func (s *Service) UndoImport(ctx context.Context, jobID uuid.UUID, adminID *uuid.UUID, ip string) (*UndoResult, error) {
	result, err := s.undo.Undo(ctx, jobID)
	if err != nil {
		return nil, err
	}

	s.writeAudit(ctx, adminID, audit.ActionImportUndo, jobID,
		fmt.Sprintf("Undid import of %s, soft-deleted %d of %d records",
			result.Job.Filename, result.Undone, result.Total), ip)

	return result, nil
}

func (s *Service) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, jobID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "import_job", &jobID, details, ip)
	if err != nil {
		return
	}
	if err := s.auditLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log",
			zap.String("action", string(action)),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
	}
}
