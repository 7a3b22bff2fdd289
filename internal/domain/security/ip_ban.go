package security

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// IPBan blocks a source address from the public API. A nil ExpiresAt
// means the ban is permanent.
type IPBan struct {
	shared.BaseEntity
	IPAddress string     `gorm:"type:varchar(45);not null;uniqueIndex"`
	Reason    string     `gorm:"type:varchar(500)"`
	BannedBy  *uuid.UUID `gorm:"type:uuid"`
	ExpiresAt *time.Time
}

// TableName returns the table name for GORM
func (IPBan) TableName() string {
	return "ip_bans"
}

// NewIPBan creates a ban for one IP address
func NewIPBan(ipAddress, reason string, bannedBy *uuid.UUID, expiresAt *time.Time) (*IPBan, error) {
	ipAddress = strings.TrimSpace(ipAddress)
	if net.ParseIP(ipAddress) == nil {
		return nil, shared.NewDomainError("INVALID_IP", "Invalid IP address: "+ipAddress)
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Ban expiry must be in the future")
	}
	return &IPBan{
		BaseEntity: shared.NewBaseEntity(),
		IPAddress:  ipAddress,
		Reason:     reason,
		BannedBy:   bannedBy,
		ExpiresAt:  expiresAt,
	}, nil
}

// IsActive reports whether the ban currently applies
func (b *IPBan) IsActive(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// IPBanRepository defines the persistence interface for IP bans
type IPBanRepository interface {
	FindByIP(ctx context.Context, ipAddress string) (*IPBan, error)
	ListActive(ctx context.Context, now time.Time) ([]*IPBan, error)
	FindAll(ctx context.Context, page, pageSize int) (*shared.Paginated[*IPBan], error)
	Save(ctx context.Context, ban *IPBan) error
	Delete(ctx context.Context, ipAddress string) error
}
