package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// DeveloperRepository defines the interface for developer persistence
type DeveloperRepository interface {
	// FindByID finds a developer by its ID, including soft-deleted rows
	FindByID(ctx context.Context, id uuid.UUID) (*Developer, error)

	// FindByName finds a developer by exact name (case-insensitive), excluding soft-deleted rows
	FindByName(ctx context.Context, name string) (*Developer, error)

	// FindAll returns developers matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[Developer], error)

	// ListActive returns every non-deleted developer, for reference resolution
	ListActive(ctx context.Context) ([]Developer, error)

	// Save creates or updates a developer
	Save(ctx context.Context, developer *Developer) error

	// SoftDelete sets deleted_at on the developer row
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Restore clears deleted_at on the developer row
	Restore(ctx context.Context, id uuid.UUID) error
}
