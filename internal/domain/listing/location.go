package listing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// City is a top-level location unit
type City struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (City) TableName() string {
	return "cities"
}

// NewCity creates a new city
func NewCity(name string) (*City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "City name cannot be empty")
	}
	return &City{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// District is a subdivision of a city
type District struct {
	shared.BaseAggregateRoot
	Name   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_district_city_name,priority:2"`
	CityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_district_city_name,priority:1;index"`
}

// TableName returns the table name for GORM
func (District) TableName() string {
	return "districts"
}

// NewDistrict creates a new district in a city
func NewDistrict(name string, cityID uuid.UUID) (*District, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "District name cannot be empty")
	}
	if cityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CITY", "District must belong to a city")
	}
	return &District{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		CityID:            cityID,
	}, nil
}

// BelongsTo reports whether the district is part of the given city
func (d *District) BelongsTo(cityID uuid.UUID) bool {
	return d.CityID == cityID
}
