package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// ToDomainAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// AuditedAggregateModel extends AggregateModel with creator tracking
type AuditedAggregateModel struct {
	AggregateModel
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// ToDomainAuditedAggregateRoot converts to domain AuditedAggregateRoot
func (m *AuditedAggregateModel) ToDomainAuditedAggregateRoot() shared.AuditedAggregateRoot {
	return shared.AuditedAggregateRoot{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomainAuditedAggregateRoot populates from domain AuditedAggregateRoot
func (m *AuditedAggregateModel) FromDomainAuditedAggregateRoot(a shared.AuditedAggregateRoot) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.CreatedBy = a.CreatedBy
}

// SoftDeleteModel carries the nullable deletion timestamp used by
// restore-able deletes. Queries filter on it explicitly rather than
// through GORM's gorm.DeletedAt hook so undo can clear it.
type SoftDeleteModel struct {
	DeletedAt *time.Time `gorm:"index"`
}

// ToDomainSoftDeletable converts to the domain embed
func (m *SoftDeleteModel) ToDomainSoftDeletable() shared.SoftDeletable {
	return shared.SoftDeletable{DeletedAt: m.DeletedAt}
}

// FromDomainSoftDeletable populates from the domain embed
func (m *SoftDeleteModel) FromDomainSoftDeletable(s shared.SoftDeletable) {
	m.DeletedAt = s.DeletedAt
}
