package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// BankRepository defines the interface for bank persistence
type BankRepository interface {
	// FindByID finds a bank by its ID, including soft-deleted rows
	FindByID(ctx context.Context, id uuid.UUID) (*Bank, error)

	// FindByName finds a bank by exact name (case-insensitive), excluding soft-deleted rows
	FindByName(ctx context.Context, name string) (*Bank, error)

	// FindAll returns banks matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[Bank], error)

	// ListActive returns every non-deleted bank, for reference resolution
	ListActive(ctx context.Context) ([]Bank, error)

	// Save creates or updates a bank
	Save(ctx context.Context, bank *Bank) error

	// SoftDelete sets deleted_at on the bank row
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Restore clears deleted_at on the bank row
	Restore(ctx context.Context, id uuid.UUID) error
}
