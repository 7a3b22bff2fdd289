package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// AuditedAggregateRoot extends BaseAggregateRoot with creator tracking
type AuditedAggregateRoot struct {
	BaseAggregateRoot
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewAuditedAggregateRoot creates a new aggregate root without creator info
func NewAuditedAggregateRoot() AuditedAggregateRoot {
	return AuditedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
	}
}

// NewAuditedAggregateRootWithCreator creates a new aggregate root recording who created it
func NewAuditedAggregateRootWithCreator(createdBy uuid.UUID) AuditedAggregateRoot {
	return AuditedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator admin ID
func (a *AuditedAggregateRoot) SetCreatedBy(adminID uuid.UUID) {
	a.CreatedBy = &adminID
}

// SoftDeletable is embedded by entities that support soft deletion.
// A non-null DeletedAt marks the row as deleted; clearing it restores the row.
type SoftDeletable struct {
	DeletedAt *time.Time `gorm:"type:timestamptz;index"`
}

// IsDeleted returns true if the entity has been soft-deleted
func (s *SoftDeletable) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MarkDeleted sets the deletion timestamp
func (s *SoftDeletable) MarkDeleted() {
	now := time.Now()
	s.DeletedAt = &now
}

// Restore clears the deletion timestamp
func (s *SoftDeletable) Restore() {
	s.DeletedAt = nil
}
