package listing

import (
	"context"

	"github.com/google/uuid"
)

// CityRepository defines the persistence interface for cities
type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	FindByName(ctx context.Context, name string) (*City, error)
	ListAll(ctx context.Context) ([]*City, error)
	Save(ctx context.Context, city *City) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DistrictRepository defines the persistence interface for districts
type DistrictRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*District, error)
	FindByCity(ctx context.Context, cityID uuid.UUID) ([]*District, error)
	ListAll(ctx context.Context) ([]*District, error)
	Save(ctx context.Context, district *District) error
	Delete(ctx context.Context, id uuid.UUID) error
}
