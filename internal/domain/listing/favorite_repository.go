package listing

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository defines the persistence interface for visitor favorites
type FavoriteRepository interface {
	FindByVisitor(ctx context.Context, visitorID string) ([]*Favorite, error)
	Exists(ctx context.Context, visitorID string, projectID uuid.UUID) (bool, error)
	Save(ctx context.Context, favorite *Favorite) error
	Delete(ctx context.Context, visitorID string, projectID uuid.UUID) error
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}
