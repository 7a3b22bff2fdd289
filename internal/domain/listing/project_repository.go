package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// ProjectFilter narrows public project queries
type ProjectFilter struct {
	CityID      *uuid.UUID
	DistrictID  *uuid.UUID
	DeveloperID *uuid.UUID
	BankID      *uuid.UUID
	PriceMin    *int64
	PriceMax    *int64
	Search      string
	// IncludeHidden and IncludeDeleted widen the result set for admin views
	IncludeHidden  bool
	IncludeDeleted bool
}

// MapBounds is a bounding box for map-based search
type MapBounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByID finds a project by its ID, including soft-deleted rows
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// FindByName finds a project by exact name, excluding soft-deleted rows
	FindByName(ctx context.Context, name string) (*Project, error)

	// FindAll returns projects matching the filter with pagination
	FindAll(ctx context.Context, filter ProjectFilter, page, pageSize int) (*shared.Paginated[Project], error)

	// FindInBounds returns visible projects with coordinates inside the bounding box
	FindInBounds(ctx context.Context, bounds MapBounds, limit int) ([]Project, error)

	// FindByIDs finds multiple projects by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error)

	// Save creates or updates a project
	Save(ctx context.Context, project *Project) error

	// SoftDelete sets deleted_at on the project row
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Restore clears deleted_at on the project row
	Restore(ctx context.Context, id uuid.UUID) error

	// LinkBank associates a bank with a project (idempotent)
	LinkBank(ctx context.Context, projectID, bankID uuid.UUID) error

	// UnlinkBank removes a bank association
	UnlinkBank(ctx context.Context, projectID, bankID uuid.UUID) error

	// FindBanks returns the banks associated with a project
	FindBanks(ctx context.Context, projectID uuid.UUID) ([]Bank, error)

	// Count counts projects matching the filter
	Count(ctx context.Context, filter ProjectFilter) (int64, error)
}
