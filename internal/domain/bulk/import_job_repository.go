package bulk

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// ImportJobFilter narrows ledger listings
type ImportJobFilter struct {
	Filename   string
	EntityType EntityType
	Status     ImportStatus
	Page       int
	PageSize   int
}

// ImportJobRepository defines the persistence interface for the import ledger
type ImportJobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ImportJob, error)
	FindAll(ctx context.Context, filter ImportJobFilter) (*shared.Paginated[*ImportJob], error)
	FindByStatus(ctx context.Context, status ImportStatus) ([]*ImportJob, error)
	Save(ctx context.Context, job *ImportJob) error
}

// ImportJobErrorRepository defines the persistence interface for per-row errors
type ImportJobErrorRepository interface {
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]*ImportJobError, error)
	Save(ctx context.Context, jobErr *ImportJobError) error
	SaveBatch(ctx context.Context, jobErrs []*ImportJobError) error
}
