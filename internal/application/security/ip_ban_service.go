package security

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/domain/shared"
)

// CreateBanRequest bans one IP address, optionally until ExpiresAt
type CreateBanRequest struct {
	IPAddress string     `json:"ip_address" binding:"required,max=45"`
	Reason    string     `json:"reason" binding:"max=500"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// BanResponse is an IP ban in API responses
type BanResponse struct {
	ID        uuid.UUID  `json:"id"`
	IPAddress string     `json:"ip_address"`
	Reason    string     `json:"reason"`
	BannedBy  *uuid.UUID `json:"banned_by,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toBanResponse(b *security.IPBan) BanResponse {
	return BanResponse{
		ID:        b.ID,
		IPAddress: b.IPAddress,
		Reason:    b.Reason,
		BannedBy:  b.BannedBy,
		ExpiresAt: b.ExpiresAt,
		CreatedAt: b.CreatedAt,
	}
}

// BanRefresher is notified after the ban table changes so cached
// copies converge immediately instead of on the next tick.
type BanRefresher interface {
	Refresh(ctx context.Context) error
}

// IPBanService manages the IP ban table
type IPBanService struct {
	bans      security.IPBanRepository
	refresher BanRefresher
	auditLogs audit.Repository
	logger    *zap.Logger
}

// NewIPBanService creates an IPBanService. refresher may be nil.
func NewIPBanService(bans security.IPBanRepository, refresher BanRefresher, auditLogs audit.Repository, logger *zap.Logger) *IPBanService {
	return &IPBanService{bans: bans, refresher: refresher, auditLogs: auditLogs, logger: logger}
}

// Create bans an IP address
func (s *IPBanService) Create(ctx context.Context, req CreateBanRequest, adminID *uuid.UUID, ip string) (*BanResponse, error) {
	if _, err := s.bans.FindByIP(ctx, req.IPAddress); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "IP address is already banned")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	ban, err := security.NewIPBan(req.IPAddress, req.Reason, adminID, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := s.bans.Save(ctx, ban); err != nil {
		return nil, err
	}
	s.refresh(ctx)

	s.writeAudit(ctx, adminID, audit.ActionBanIP, ban.ID, "Banned IP "+ban.IPAddress, ip)

	resp := toBanResponse(ban)
	return &resp, nil
}

// Delete lifts the ban on an IP address
func (s *IPBanService) Delete(ctx context.Context, ipAddress string, adminID *uuid.UUID, ip string) error {
	ban, err := s.bans.FindByIP(ctx, ipAddress)
	if err != nil {
		return err
	}
	if err := s.bans.Delete(ctx, ipAddress); err != nil {
		return err
	}
	s.refresh(ctx)

	s.writeAudit(ctx, adminID, audit.ActionUnbanIP, ban.ID, "Unbanned IP "+ban.IPAddress, ip)
	return nil
}

// List returns bans with pagination
func (s *IPBanService) List(ctx context.Context, page, pageSize int) (*shared.Paginated[BanResponse], error) {
	result, err := s.bans.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	items := make([]BanResponse, 0, len(result.Items))
	for _, b := range result.Items {
		items = append(items, toBanResponse(b))
	}
	out := shared.NewPaginated(items, result.Total, result.Page, result.PageSize)
	return &out, nil
}

func (s *IPBanService) refresh(ctx context.Context) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn("Failed to refresh ban cache", zap.Error(err))
	}
}

func (s *IPBanService) writeAudit(ctx context.Context, adminID *uuid.UUID, action audit.Action, banID uuid.UUID, details, ip string) {
	entry, err := audit.NewAuditLog(adminID, action, "ip_ban", &banID, details, ip)
	if err != nil {
		return
	}
	if err := s.auditLogs.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", string(action)), zap.Error(err))
	}
}
