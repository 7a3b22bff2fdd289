package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/security"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdminUserRepository implements security.AdminUserRepository using GORM
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewGormAdminUserRepository creates a new GormAdminUserRepository
func NewGormAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// FindByID finds an admin account by ID
func (r *GormAdminUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*security.AdminUser, error) {
	var model models.AdminUserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds an admin account by username
func (r *GormAdminUserRepository) FindByUsername(ctx context.Context, username string) (*security.AdminUser, error) {
	var model models.AdminUserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an admin account
func (r *GormAdminUserRepository) Save(ctx context.Context, user *security.AdminUser) error {
	var model models.AdminUserModel
	model.FromDomain(user)
	return r.db.WithContext(ctx).Save(&model).Error
}
