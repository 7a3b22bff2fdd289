package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/shared"
)

// PageView is one tracked visit to a public page. Ingestion is
// fire-and-forget; rows are only ever aggregated, never updated.
type PageView struct {
	shared.BaseEntity
	Path       string     `gorm:"type:varchar(500);not null"`
	EntityType string     `gorm:"type:varchar(50);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	VisitorID  string     `gorm:"type:varchar(64);index"`
	IPAddress  string     `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (PageView) TableName() string {
	return "page_views"
}

// NewPageView creates a tracked page view
func NewPageView(path, entityType string, entityID *uuid.UUID, visitorID, ipAddress string) (*PageView, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, shared.NewDomainError("INVALID_PATH", "Path cannot be empty")
	}
	if len(path) > 500 {
		path = path[:500]
	}
	return &PageView{
		BaseEntity: shared.NewBaseEntity(),
		Path:       path,
		EntityType: entityType,
		EntityID:   entityID,
		VisitorID:  visitorID,
		IPAddress:  ipAddress,
	}, nil
}

// DailyCount is a per-day view total
type DailyCount struct {
	Day   time.Time
	Count int64
}

// EntityCount is a per-entity view total
type EntityCount struct {
	EntityID uuid.UUID
	Count    int64
}

// Repository defines the persistence interface for page views
type Repository interface {
	Save(ctx context.Context, view *PageView) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountUniqueVisitorsSince(ctx context.Context, since time.Time) (int64, error)
	CountByDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	TopEntities(ctx context.Context, entityType string, since time.Time, limit int) ([]EntityCount, error)
}
