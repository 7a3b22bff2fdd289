package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFavoriteRepository implements listing.FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// FindByVisitor returns a visitor's favorites, newest first
func (r *GormFavoriteRepository) FindByVisitor(ctx context.Context, visitorID string) ([]*listing.Favorite, error) {
	var favoriteModels []models.FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("created_at DESC").
		Find(&favoriteModels).Error; err != nil {
		return nil, err
	}
	favorites := make([]*listing.Favorite, len(favoriteModels))
	for i := range favoriteModels {
		favorites[i] = favoriteModels[i].ToDomain()
	}
	return favorites, nil
}

// Exists checks whether the visitor already favorited the project
func (r *GormFavoriteRepository) Exists(ctx context.Context, visitorID string, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("visitor_id = ? AND project_id = ?", visitorID, projectID).
		Count(&count).Error
	return count > 0, err
}

// Save creates a favorite, ignoring duplicates
func (r *GormFavoriteRepository) Save(ctx context.Context, favorite *listing.Favorite) error {
	var model models.FavoriteModel
	model.FromDomain(favorite)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error
}

// Delete removes a favorite
func (r *GormFavoriteRepository) Delete(ctx context.Context, visitorID string, projectID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("visitor_id = ? AND project_id = ?", visitorID, projectID).
		Delete(&models.FavoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByProject counts how many visitors favorited a project
func (r *GormFavoriteRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
