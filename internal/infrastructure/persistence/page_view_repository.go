package persistence

import (
	"context"
	"time"

	"github.com/listings/backend/internal/domain/analytics"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPageViewRepository implements analytics.Repository using GORM
type GormPageViewRepository struct {
	db *gorm.DB
}

// NewGormPageViewRepository creates a new GormPageViewRepository
func NewGormPageViewRepository(db *gorm.DB) *GormPageViewRepository {
	return &GormPageViewRepository{db: db}
}

// Save inserts a page view
func (r *GormPageViewRepository) Save(ctx context.Context, view *analytics.PageView) error {
	var model models.PageViewModel
	model.FromDomain(view)
	return r.db.WithContext(ctx).Create(&model).Error
}

// CountSince counts views recorded after the given time
func (r *GormPageViewRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PageViewModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// CountUniqueVisitorsSince counts distinct visitor IDs after the given time
func (r *GormPageViewRepository) CountUniqueVisitorsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PageViewModel{}).
		Where("created_at >= ? AND visitor_id <> ''", since).
		Distinct("visitor_id").
		Count(&count).Error
	return count, err
}

// CountByDay returns per-day view totals after the given time
func (r *GormPageViewRepository) CountByDay(ctx context.Context, since time.Time) ([]analytics.DailyCount, error) {
	type row struct {
		Day   time.Time
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.PageViewModel{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]analytics.DailyCount, len(rows))
	for i, r := range rows {
		counts[i] = analytics.DailyCount{Day: r.Day, Count: r.Count}
	}
	return counts, nil
}

// TopEntities returns the most viewed entities of a type after the given time
func (r *GormPageViewRepository) TopEntities(ctx context.Context, entityType string, since time.Time, limit int) ([]analytics.EntityCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []analytics.EntityCount
	err := r.db.WithContext(ctx).Model(&models.PageViewModel{}).
		Select("entity_id, COUNT(*) AS count").
		Where("entity_type = ? AND entity_id IS NOT NULL AND created_at >= ?", entityType, since).
		Group("entity_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
