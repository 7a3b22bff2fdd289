package listing

import (
	"strings"

	"github.com/listings/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Bank is a mortgage lender that can be associated with projects
type Bank struct {
	shared.AuditedAggregateRoot
	shared.SoftDeletable
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex"`
	LogoURL string `gorm:"type:varchar(500)"`
	Website string `gorm:"type:varchar(500)"`
	// BaseRate is the bank's reference annual mortgage rate in percent
	BaseRate decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
}

// TableName returns the table name for GORM
func (Bank) TableName() string {
	return "banks"
}

// NewBank creates a new bank
func NewBank(name string) (*Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Bank name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Bank name cannot exceed 200 characters")
	}

	return &Bank{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 name,
		BaseRate:             decimal.Zero,
	}, nil
}

// Update updates the bank's details
func (b *Bank) Update(name, logoURL, website string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Bank name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Bank name cannot exceed 200 characters")
	}
	b.Name = name
	b.LogoURL = logoURL
	b.Website = website
	b.Touch()
	b.IncrementVersion()
	return nil
}

// SetBaseRate sets the bank's reference annual rate
func (b *Bank) SetBaseRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Base rate cannot be negative")
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_RATE", "Base rate cannot exceed 100 percent")
	}
	b.BaseRate = rate
	return nil
}

// SoftDelete marks the bank as deleted
func (b *Bank) SoftDelete() error {
	if b.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Bank is already deleted")
	}
	b.MarkDeleted()
	b.Touch()
	b.IncrementVersion()
	return nil
}

// Undelete restores a soft-deleted bank
func (b *Bank) Undelete() error {
	if !b.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Bank is not deleted")
	}
	b.Restore()
	b.Touch()
	b.IncrementVersion()
	return nil
}
