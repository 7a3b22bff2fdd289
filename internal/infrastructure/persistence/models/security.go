package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/analytics"
	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/security"
)

// AdminUserModel is the persistence model for admin accounts
type AdminUserModel struct {
	AggregateModel
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	DisplayName  string `gorm:"type:varchar(200)"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// ToDomain converts the persistence model to a domain AdminUser
func (m *AdminUserModel) ToDomain() *security.AdminUser {
	return &security.AdminUser{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		DisplayName:       m.DisplayName,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain AdminUser
func (m *AdminUserModel) FromDomain(u *security.AdminUser) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.Active = u.Active
}

// IPBanModel is the persistence model for IP bans
type IPBanModel struct {
	BaseModel
	IPAddress string     `gorm:"type:varchar(45);not null;uniqueIndex"`
	Reason    string     `gorm:"type:varchar(500)"`
	BannedBy  *uuid.UUID `gorm:"type:uuid"`
	ExpiresAt *time.Time
}

// TableName returns the table name for GORM
func (IPBanModel) TableName() string {
	return "ip_bans"
}

// ToDomain converts the persistence model to a domain IPBan
func (m *IPBanModel) ToDomain() *security.IPBan {
	return &security.IPBan{
		BaseEntity: m.BaseModel.ToDomain(),
		IPAddress:  m.IPAddress,
		Reason:     m.Reason,
		BannedBy:   m.BannedBy,
		ExpiresAt:  m.ExpiresAt,
	}
}

// FromDomain populates the persistence model from a domain IPBan
func (m *IPBanModel) FromDomain(b *security.IPBan) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.IPAddress = b.IPAddress
	m.Reason = b.Reason
	m.BannedBy = b.BannedBy
	m.ExpiresAt = b.ExpiresAt
}

// AuditLogModel is the persistence model for audit entries
type AuditLogModel struct {
	BaseModel
	AdminID    *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(30);not null;index"`
	EntityType string     `gorm:"type:varchar(50);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	Details    string     `gorm:"type:text"`
	IPAddress  string     `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	return &audit.AuditLog{
		BaseEntity: m.BaseModel.ToDomain(),
		AdminID:    m.AdminID,
		Action:     audit.Action(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    m.Details,
		IPAddress:  m.IPAddress,
	}
}

// FromDomain populates the persistence model from a domain AuditLog
func (m *AuditLogModel) FromDomain(l *audit.AuditLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.AdminID = l.AdminID
	m.Action = string(l.Action)
	m.EntityType = l.EntityType
	m.EntityID = l.EntityID
	m.Details = l.Details
	m.IPAddress = l.IPAddress
}

// PageViewModel is the persistence model for tracked page views
type PageViewModel struct {
	BaseModel
	Path       string     `gorm:"type:varchar(500);not null"`
	EntityType string     `gorm:"type:varchar(50);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	VisitorID  string     `gorm:"type:varchar(64);index"`
	IPAddress  string     `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (PageViewModel) TableName() string {
	return "page_views"
}

// ToDomain converts the persistence model to a domain PageView
func (m *PageViewModel) ToDomain() *analytics.PageView {
	return &analytics.PageView{
		BaseEntity: m.BaseModel.ToDomain(),
		Path:       m.Path,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		VisitorID:  m.VisitorID,
		IPAddress:  m.IPAddress,
	}
}

// FromDomain populates the persistence model from a domain PageView
func (m *PageViewModel) FromDomain(v *analytics.PageView) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Path = v.Path
	m.EntityType = v.EntityType
	m.EntityID = v.EntityID
	m.VisitorID = v.VisitorID
	m.IPAddress = v.IPAddress
}
