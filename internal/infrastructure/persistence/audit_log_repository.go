package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.Repository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save creates an audit entry
func (r *GormAuditLogRepository) Save(ctx context.Context, log *audit.AuditLog) error {
	var model models.AuditLogModel
	model.FromDomain(log)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindAll returns audit entries matching the filter, newest first
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter audit.Filter) (*shared.Paginated[*audit.AuditLog], error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogModel{})

	if filter.AdminID != nil {
		query = query.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", string(filter.Action))
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var logModels []models.AuditLogModel
	if err := query.Order("created_at DESC").Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]*audit.AuditLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}

	result := shared.NewPaginated(logs, total, page, pageSize)
	return &result, nil
}

// FindByEntity returns all audit entries touching one entity
func (r *GormAuditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*audit.AuditLog, error) {
	var logModels []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}
	logs := make([]*audit.AuditLog, len(logModels))
	for i := range logModels {
		logs[i] = logModels[i].ToDomain()
	}
	return logs, nil
}
