package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// Action is the kind of admin operation recorded in the audit trail
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionRestore      Action = "restore"
	ActionImport       Action = "import"
	ActionImportUndo   Action = "import_undo"
	ActionLogin        Action = "login"
	ActionLogout       Action = "logout"
	ActionBanIP        Action = "ban_ip"
	ActionUnbanIP      Action = "unban_ip"
	ActionStatusToggle Action = "status_toggle"
)

// AuditLog is an immutable record of one admin operation
type AuditLog struct {
	shared.BaseEntity
	AdminID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     Action     `gorm:"type:varchar(30);not null;index"`
	EntityType string     `gorm:"type:varchar(50);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	Details    string     `gorm:"type:text"`
	IPAddress  string     `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// NewAuditLog creates an audit entry
func NewAuditLog(adminID *uuid.UUID, action Action, entityType string, entityID *uuid.UUID, details, ipAddress string) (*AuditLog, error) {
	if action == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action cannot be empty")
	}
	return &AuditLog{
		BaseEntity: shared.NewBaseEntity(),
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ipAddress,
	}, nil
}

// Filter narrows audit log listings
type Filter struct {
	AdminID    *uuid.UUID
	Action     Action
	EntityType string
	Page       int
	PageSize   int
}

// Repository defines the persistence interface for audit logs
type Repository interface {
	Save(ctx context.Context, log *AuditLog) error
	FindAll(ctx context.Context, filter Filter) (*shared.Paginated[*AuditLog], error)
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*AuditLog, error)
}
