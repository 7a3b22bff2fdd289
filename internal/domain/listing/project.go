package listing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// ProjectStatus represents the publication status of a project
type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "active"
	ProjectStatusHidden ProjectStatus = "hidden"
)

// IsValid checks if the status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusHidden:
		return true
	}
	return false
}

// DefaultCurrency is applied when a project carries no explicit currency
const DefaultCurrency = "USD"

// Project is a residential development listing.
// It is the aggregate root for project-related operations.
type Project struct {
	shared.AuditedAggregateRoot
	shared.SoftDeletable
	Name             string        `gorm:"type:varchar(200);not null;index"`
	DeveloperID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	CityID           uuid.UUID     `gorm:"type:uuid;not null;index"`
	DistrictID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	Address          string        `gorm:"type:text"`
	ShortDescription string        `gorm:"type:varchar(500)"`
	Description      string        `gorm:"type:text"`
	Latitude         *float64      `gorm:"type:double precision"`
	Longitude        *float64      `gorm:"type:double precision"`
	PriceFrom        *int64        `gorm:""`
	Currency         string        `gorm:"type:varchar(10);not null;default:'USD'"`
	CompletionDate   *time.Time    `gorm:"type:date"`
	CoverImageURL    string        `gorm:"type:varchar(500)"`
	Status           ProjectStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project with required references
func NewProject(name string, developerID, cityID, districtID uuid.UUID) (*Project, error) {
	if err := validateProjectName(name); err != nil {
		return nil, err
	}
	if developerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEVELOPER", "Developer is required")
	}
	if cityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CITY", "City is required")
	}
	if districtID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISTRICT", "District is required")
	}

	return &Project{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		DeveloperID:          developerID,
		CityID:               cityID,
		DistrictID:           districtID,
		Currency:             DefaultCurrency,
		Status:               ProjectStatusActive,
	}, nil
}

func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}
	return nil
}

// Update updates the project's basic information
func (p *Project) Update(name, address, shortDescription, description string) error {
	if err := validateProjectName(name); err != nil {
		return err
	}
	if len(shortDescription) > 500 {
		return shared.NewDomainError("INVALID_SHORT_DESCRIPTION", "Short description cannot exceed 500 characters")
	}
	p.Name = strings.TrimSpace(name)
	p.Address = address
	p.ShortDescription = shortDescription
	p.Description = description
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetCoordinates sets the project's map position, range-checked
func (p *Project) SetCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return shared.NewDomainError("INVALID_LATITUDE", fmt.Sprintf("Latitude out of range: %v", lat))
	}
	if lng < -180 || lng > 180 {
		return shared.NewDomainError("INVALID_LONGITUDE", fmt.Sprintf("Longitude out of range: %v", lng))
	}
	p.Latitude = &lat
	p.Longitude = &lng
	return nil
}

// ClearCoordinates removes the project's map position
func (p *Project) ClearCoordinates() {
	p.Latitude = nil
	p.Longitude = nil
}

// SetPrice sets the starting price and currency
func (p *Project) SetPrice(priceFrom *int64, currency string) error {
	if priceFrom != nil && *priceFrom < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) > 10 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency code cannot exceed 10 characters")
	}
	p.PriceFrom = priceFrom
	p.Currency = strings.ToUpper(currency)
	return nil
}

// SetCompletionDate sets the expected completion date
func (p *Project) SetCompletionDate(date *time.Time) {
	p.CompletionDate = date
}

// Hide withdraws the project from public listings without deleting it
func (p *Project) Hide() error {
	if p.Status == ProjectStatusHidden {
		return shared.NewDomainError("INVALID_STATE", "Project is already hidden")
	}
	p.Status = ProjectStatusHidden
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Publish makes the project visible in public listings
func (p *Project) Publish() error {
	if p.Status == ProjectStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Project is already active")
	}
	p.Status = ProjectStatusActive
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SoftDelete marks the project as deleted
func (p *Project) SoftDelete() error {
	if p.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Project is already deleted")
	}
	p.MarkDeleted()
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Undelete restores a soft-deleted project
func (p *Project) Undelete() error {
	if !p.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Project is not deleted")
	}
	p.Restore()
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsVisible returns true if the project appears in public listings
func (p *Project) IsVisible() bool {
	return !p.IsDeleted() && p.Status == ProjectStatusActive
}
