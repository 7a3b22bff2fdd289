package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCityRepository implements listing.CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// FindByID finds a city by ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a city by name, case-insensitive
func (r *GormCityRepository) FindByName(ctx context.Context, name string) (*listing.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListAll returns every city ordered by name
func (r *GormCityRepository) ListAll(ctx context.Context) ([]*listing.City, error) {
	var cityModels []models.CityModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cityModels).Error; err != nil {
		return nil, err
	}
	cities := make([]*listing.City, len(cityModels))
	for i := range cityModels {
		cities[i] = cityModels[i].ToDomain()
	}
	return cities, nil
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *listing.City) error {
	var model models.CityModel
	model.FromDomain(city)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormDistrictRepository implements listing.DistrictRepository using GORM
type GormDistrictRepository struct {
	db *gorm.DB
}

// NewGormDistrictRepository creates a new GormDistrictRepository
func NewGormDistrictRepository(db *gorm.DB) *GormDistrictRepository {
	return &GormDistrictRepository{db: db}
}

// FindByID finds a district by ID
func (r *GormDistrictRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.District, error) {
	var model models.DistrictModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCity returns the districts of one city ordered by name
func (r *GormDistrictRepository) FindByCity(ctx context.Context, cityID uuid.UUID) ([]*listing.District, error) {
	var districtModels []models.DistrictModel
	if err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order("name ASC").
		Find(&districtModels).Error; err != nil {
		return nil, err
	}
	districts := make([]*listing.District, len(districtModels))
	for i := range districtModels {
		districts[i] = districtModels[i].ToDomain()
	}
	return districts, nil
}

// ListAll returns every district
func (r *GormDistrictRepository) ListAll(ctx context.Context) ([]*listing.District, error) {
	var districtModels []models.DistrictModel
	if err := r.db.WithContext(ctx).Find(&districtModels).Error; err != nil {
		return nil, err
	}
	districts := make([]*listing.District, len(districtModels))
	for i := range districtModels {
		districts[i] = districtModels[i].ToDomain()
	}
	return districts, nil
}

// Save creates or updates a district
func (r *GormDistrictRepository) Save(ctx context.Context, district *listing.District) error {
	var model models.DistrictModel
	model.FromDomain(district)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a district
func (r *GormDistrictRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DistrictModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
