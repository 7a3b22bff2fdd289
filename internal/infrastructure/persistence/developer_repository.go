package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeveloperRepository implements listing.DeveloperRepository using GORM
type GormDeveloperRepository struct {
	db *gorm.DB
}

// NewGormDeveloperRepository creates a new GormDeveloperRepository
func NewGormDeveloperRepository(db *gorm.DB) *GormDeveloperRepository {
	return &GormDeveloperRepository{db: db}
}

// FindByID finds a developer by ID, including soft-deleted rows
func (r *GormDeveloperRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Developer, error) {
	var model models.DeveloperModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a developer by name, case-insensitive, excluding soft-deleted rows
func (r *GormDeveloperRepository) FindByName(ctx context.Context, name string) (*listing.Developer, error) {
	var model models.DeveloperModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND deleted_at IS NULL", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns developers matching the filter with pagination
func (r *GormDeveloperRepository) FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[listing.Developer], error) {
	query := r.db.WithContext(ctx).Model(&models.DeveloperModel{})
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var developerModels []models.DeveloperModel
	if err := query.Order("name ASC").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&developerModels).Error; err != nil {
		return nil, err
	}

	developers := make([]listing.Developer, len(developerModels))
	for i := range developerModels {
		developers[i] = *developerModels[i].ToDomain()
	}

	result := shared.NewPaginated(developers, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActive returns every non-deleted developer
func (r *GormDeveloperRepository) ListActive(ctx context.Context) ([]listing.Developer, error) {
	var developerModels []models.DeveloperModel
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Find(&developerModels).Error; err != nil {
		return nil, err
	}
	developers := make([]listing.Developer, len(developerModels))
	for i := range developerModels {
		developers[i] = *developerModels[i].ToDomain()
	}
	return developers, nil
}

// Save creates or updates a developer
func (r *GormDeveloperRepository) Save(ctx context.Context, developer *listing.Developer) error {
	var model models.DeveloperModel
	model.FromDomain(developer)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SoftDelete sets deleted_at on the developer row
func (r *GormDeveloperRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.DeveloperModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Restore clears deleted_at on the developer row
func (r *GormDeveloperRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.DeveloperModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
