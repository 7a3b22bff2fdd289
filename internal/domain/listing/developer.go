package listing

import (
	"strings"

	"github.com/listings/backend/internal/domain/shared"
)

// Developer is a property development company
type Developer struct {
	shared.AuditedAggregateRoot
	shared.SoftDeletable
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Website     string `gorm:"type:varchar(500)"`
	Phone       string `gorm:"type:varchar(50)"`
	LogoURL     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Developer) TableName() string {
	return "developers"
}

// NewDeveloper creates a new developer
func NewDeveloper(name string) (*Developer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Developer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Developer name cannot exceed 200 characters")
	}

	return &Developer{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
	}, nil
}

// Update updates the developer's details
func (d *Developer) Update(name, description, website, phone, logoURL string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Developer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Developer name cannot exceed 200 characters")
	}
	d.Name = name
	d.Description = description
	d.Website = website
	d.Phone = phone
	d.LogoURL = logoURL
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SoftDelete marks the developer as deleted
func (d *Developer) SoftDelete() error {
	if d.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Developer is already deleted")
	}
	d.MarkDeleted()
	d.Touch()
	d.IncrementVersion()
	return nil
}

// Undelete restores a soft-deleted developer
func (d *Developer) Undelete() error {
	if !d.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Developer is not deleted")
	}
	d.Restore()
	d.Touch()
	d.IncrementVersion()
	return nil
}
