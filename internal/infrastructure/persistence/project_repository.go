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
	"gorm.io/gorm/clause"
)

// GormProjectRepository implements listing.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by ID, including soft-deleted rows
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a project by exact name, excluding soft-deleted rows
func (r *GormProjectRepository) FindByName(ctx context.Context, name string) (*listing.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("name = ? AND deleted_at IS NULL", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter listing.ProjectFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("projects.deleted_at IS NULL")
	}
	if !filter.IncludeHidden {
		query = query.Where("projects.status = ?", string(listing.ProjectStatusActive))
	}
	if filter.CityID != nil {
		query = query.Where("projects.city_id = ?", *filter.CityID)
	}
	if filter.DistrictID != nil {
		query = query.Where("projects.district_id = ?", *filter.DistrictID)
	}
	if filter.DeveloperID != nil {
		query = query.Where("projects.developer_id = ?", *filter.DeveloperID)
	}
	if filter.BankID != nil {
		query = query.Joins("JOIN project_banks ON project_banks.project_id = projects.id").
			Where("project_banks.bank_id = ?", *filter.BankID)
	}
	if filter.PriceMin != nil {
		query = query.Where("projects.price_from >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("projects.price_from <= ?", *filter.PriceMax)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(projects.name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	return query
}

// FindAll returns projects matching the filter with pagination
func (r *GormProjectRepository) FindAll(ctx context.Context, filter listing.ProjectFilter, page, pageSize int) (*shared.Paginated[listing.Project], error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var projectModels []models.ProjectModel
	if err := query.Order("projects.created_at DESC").Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]listing.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = *projectModels[i].ToDomain()
	}

	result := shared.NewPaginated(projects, total, page, pageSize)
	return &result, nil
}

// FindInBounds returns visible projects with coordinates inside the bounding box
func (r *GormProjectRepository) FindInBounds(ctx context.Context, bounds listing.MapBounds, limit int) ([]listing.Project, error) {
	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND status = ?", string(listing.ProjectStatusActive)).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", bounds.MinLat, bounds.MaxLat).
		Where("longitude BETWEEN ? AND ?", bounds.MinLng, bounds.MaxLng)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var projectModels []models.ProjectModel
	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]listing.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = *projectModels[i].ToDomain()
	}
	return projects, nil
}

// FindByIDs finds multiple projects by their IDs
func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]listing.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var projectModels []models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&projectModels).Error; err != nil {
		return nil, err
	}
	projects := make([]listing.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = *projectModels[i].ToDomain()
	}
	return projects, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, project *listing.Project) error {
	var model models.ProjectModel
	model.FromDomain(project)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SoftDelete sets deleted_at on the project row
func (r *GormProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
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

// Restore clears deleted_at on the project row
func (r *GormProjectRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
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

// LinkBank associates a bank with a project, ignoring duplicates
func (r *GormProjectRepository) LinkBank(ctx context.Context, projectID, bankID uuid.UUID) error {
	link := models.ProjectBankModel{
		ProjectID: projectID,
		BankID:    bankID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// UnlinkBank removes a bank association
func (r *GormProjectRepository) UnlinkBank(ctx context.Context, projectID, bankID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND bank_id = ?", projectID, bankID).
		Delete(&models.ProjectBankModel{}).Error
}

// FindBanks returns the banks associated with a project
func (r *GormProjectRepository) FindBanks(ctx context.Context, projectID uuid.UUID) ([]listing.Bank, error) {
	var bankModels []models.BankModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN project_banks ON project_banks.bank_id = banks.id").
		Where("project_banks.project_id = ?", projectID).
		Find(&bankModels).Error; err != nil {
		return nil, err
	}
	banks := make([]listing.Bank, len(bankModels))
	for i := range bankModels {
		banks[i] = *bankModels[i].ToDomain()
	}
	return banks, nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter listing.ProjectFilter) (int64, error) {
	var total int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter).Count(&total).Error
	return total, err
}
