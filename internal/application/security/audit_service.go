package security

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/shared"
)

// AuditLogQuery filters the audit trail listing
type AuditLogQuery struct {
	AdminID    *uuid.UUID `form:"admin_id"`
	Action     string     `form:"action"`
	EntityType string     `form:"entity_type"`
	Page       int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size,default=50" binding:"omitempty,min=1,max=200"`
}

// AuditLogResponse is one audit trail entry in API responses
type AuditLogResponse struct {
	ID         uuid.UUID  `json:"id"`
	AdminID    *uuid.UUID `json:"admin_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Details    string     `json:"details"`
	IPAddress  string     `json:"ip_address"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toAuditLogResponse(l *audit.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		AdminID:    l.AdminID,
		Action:     string(l.Action),
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    l.Details,
		IPAddress:  l.IPAddress,
		CreatedAt:  l.CreatedAt,
	}
}

// AuditService exposes the audit trail to admins
type AuditService struct {
	auditLogs audit.Repository
}

// NewAuditService creates an AuditService
func NewAuditService(auditLogs audit.Repository) *AuditService {
	return &AuditService{auditLogs: auditLogs}
}

// List returns audit entries newest first
func (s *AuditService) List(ctx context.Context, query AuditLogQuery) (*shared.Paginated[AuditLogResponse], error) {
	filter := audit.Filter{
		AdminID:    query.AdminID,
		Action:     audit.Action(query.Action),
		EntityType: query.EntityType,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	result, err := s.auditLogs.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]AuditLogResponse, 0, len(result.Items))
	for _, l := range result.Items {
		items = append(items, toAuditLogResponse(l))
	}
	out := shared.NewPaginated(items, result.Total, result.Page, result.PageSize)
	return &out, nil
}

// EntityHistory returns every audit entry touching one record
func (s *AuditService) EntityHistory(ctx context.Context, entityType string, entityID uuid.UUID) ([]AuditLogResponse, error) {
	logs, err := s.auditLogs.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	items := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toAuditLogResponse(l))
	}
	return items, nil
}
