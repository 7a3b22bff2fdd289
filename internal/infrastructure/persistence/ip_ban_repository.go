package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormIPBanRepository implements security.IPBanRepository using GORM
type GormIPBanRepository struct {
	db *gorm.DB
}

// NewGormIPBanRepository creates a new GormIPBanRepository
func NewGormIPBanRepository(db *gorm.DB) *GormIPBanRepository {
	return &GormIPBanRepository{db: db}
}

// FindByIP finds a ban by IP address
func (r *GormIPBanRepository) FindByIP(ctx context.Context, ipAddress string) (*security.IPBan, error) {
	var model models.IPBanModel
	if err := r.db.WithContext(ctx).Where("ip_address = ?", ipAddress).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListActive returns every ban still in effect at the given time
func (r *GormIPBanRepository) ListActive(ctx context.Context, now time.Time) ([]*security.IPBan, error) {
	var banModels []models.IPBanModel
	if err := r.db.WithContext(ctx).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Find(&banModels).Error; err != nil {
		return nil, err
	}
	bans := make([]*security.IPBan, len(banModels))
	for i := range banModels {
		bans[i] = banModels[i].ToDomain()
	}
	return bans, nil
}

// FindAll returns bans with pagination, newest first
func (r *GormIPBanRepository) FindAll(ctx context.Context, page, pageSize int) (*shared.Paginated[*security.IPBan], error) {
	query := r.db.WithContext(ctx).Model(&models.IPBanModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var banModels []models.IPBanModel
	if err := query.Order("created_at DESC").Find(&banModels).Error; err != nil {
		return nil, err
	}

	bans := make([]*security.IPBan, len(banModels))
	for i := range banModels {
		bans[i] = banModels[i].ToDomain()
	}

	result := shared.NewPaginated(bans, total, page, pageSize)
	return &result, nil
}

// Save creates or updates a ban
func (r *GormIPBanRepository) Save(ctx context.Context, ban *security.IPBan) error {
	var model models.IPBanModel
	model.FromDomain(ban)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a ban by IP address
func (r *GormIPBanRepository) Delete(ctx context.Context, ipAddress string) error {
	result := r.db.WithContext(ctx).Where("ip_address = ?", ipAddress).Delete(&models.IPBanModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
