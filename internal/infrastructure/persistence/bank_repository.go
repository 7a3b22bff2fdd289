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

// GormBankRepository implements listing.BankRepository using GORM
type GormBankRepository struct {
	db *gorm.DB
}

// NewGormBankRepository creates a new GormBankRepository
func NewGormBankRepository(db *gorm.DB) *GormBankRepository {
	return &GormBankRepository{db: db}
}

// FindByID finds a bank by ID, including soft-deleted rows
func (r *GormBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Bank, error) {
	var model models.BankModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a bank by name, case-insensitive, excluding soft-deleted rows
func (r *GormBankRepository) FindByName(ctx context.Context, name string) (*listing.Bank, error) {
	var model models.BankModel
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

// FindAll returns banks matching the filter with pagination
func (r *GormBankRepository) FindAll(ctx context.Context, filter shared.Filter, includeDeleted bool) (*shared.Paginated[listing.Bank], error) {
	query := r.db.WithContext(ctx).Model(&models.BankModel{})
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

	var bankModels []models.BankModel
	if err := query.Order("name ASC").
		Offset(filter.Offset()).Limit(filter.PageSize).
		Find(&bankModels).Error; err != nil {
		return nil, err
	}

	banks := make([]listing.Bank, len(bankModels))
	for i := range bankModels {
		banks[i] = *bankModels[i].ToDomain()
	}

	result := shared.NewPaginated(banks, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActive returns every non-deleted bank
func (r *GormBankRepository) ListActive(ctx context.Context) ([]listing.Bank, error) {
	var bankModels []models.BankModel
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Find(&bankModels).Error; err != nil {
		return nil, err
	}
	banks := make([]listing.Bank, len(bankModels))
	for i := range bankModels {
		banks[i] = *bankModels[i].ToDomain()
	}
	return banks, nil
}

// Save creates or updates a bank
func (r *GormBankRepository) Save(ctx context.Context, bank *listing.Bank) error {
	var model models.BankModel
	model.FromDomain(bank)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SoftDelete sets deleted_at on the bank row
func (r *GormBankRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.BankModel{}).
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

// Restore clears deleted_at on the bank row
func (r *GormBankRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.BankModel{}).
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
