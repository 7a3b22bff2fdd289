package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormImportJobRepository implements bulk.ImportJobRepository using GORM
type GormImportJobRepository struct {
	db *gorm.DB
}

// NewGormImportJobRepository creates a new GormImportJobRepository
func NewGormImportJobRepository(db *gorm.DB) *GormImportJobRepository {
	return &GormImportJobRepository{db: db}
}

// FindByID finds an import job by ID
func (r *GormImportJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportJob, error) {
	var model models.ImportJobModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns ledger entries matching the filter, newest first
func (r *GormImportJobRepository) FindAll(ctx context.Context, filter bulk.ImportJobFilter) (*shared.Paginated[*bulk.ImportJob], error) {
	query := r.db.WithContext(ctx).Model(&models.ImportJobModel{})

	if filter.Filename != "" {
		query = query.Where("LOWER(filename) LIKE LOWER(?)", "%"+filter.Filename+"%")
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", string(filter.EntityType))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page > 0 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var jobModels []models.ImportJobModel
	if err := query.Order("created_at DESC").Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]*bulk.ImportJob, len(jobModels))
	for i := range jobModels {
		jobs[i] = jobModels[i].ToDomain()
	}

	result := shared.NewPaginated(jobs, total, page, pageSize)
	return &result, nil
}

// FindByStatus finds all import jobs with a specific status
func (r *GormImportJobRepository) FindByStatus(ctx context.Context, status bulk.ImportStatus) ([]*bulk.ImportJob, error) {
	var jobModels []models.ImportJobModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&jobModels).Error; err != nil {
		return nil, err
	}
	jobs := make([]*bulk.ImportJob, len(jobModels))
	for i := range jobModels {
		jobs[i] = jobModels[i].ToDomain()
	}
	return jobs, nil
}

// Save creates or updates an import job
func (r *GormImportJobRepository) Save(ctx context.Context, job *bulk.ImportJob) error {
	var model models.ImportJobModel
	model.FromDomain(job)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormImportJobErrorRepository implements bulk.ImportJobErrorRepository using GORM
type GormImportJobErrorRepository struct {
	db *gorm.DB
}

// NewGormImportJobErrorRepository creates a new GormImportJobErrorRepository
func NewGormImportJobErrorRepository(db *gorm.DB) *GormImportJobErrorRepository {
	return &GormImportJobErrorRepository{db: db}
}

// FindByJob returns all error rows for a job in file order
func (r *GormImportJobErrorRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]*bulk.ImportJobError, error) {
	var errModels []models.ImportJobErrorModel
	if err := r.db.WithContext(ctx).
		Where("import_job_id = ?", jobID).
		Order("row_number ASC").
		Find(&errModels).Error; err != nil {
		return nil, err
	}
	jobErrs := make([]*bulk.ImportJobError, len(errModels))
	for i := range errModels {
		jobErrs[i] = errModels[i].ToDomain()
	}
	return jobErrs, nil
}

// Save creates an error row
func (r *GormImportJobErrorRepository) Save(ctx context.Context, jobErr *bulk.ImportJobError) error {
	var model models.ImportJobErrorModel
	model.FromDomain(jobErr)
	return r.db.WithContext(ctx).Create(&model).Error
}

// SaveBatch creates multiple error rows in one insert
func (r *GormImportJobErrorRepository) SaveBatch(ctx context.Context, jobErrs []*bulk.ImportJobError) error {
	if len(jobErrs) == 0 {
		return nil
	}
	errModels := make([]models.ImportJobErrorModel, len(jobErrs))
	for i, e := range jobErrs {
		errModels[i].FromDomain(e)
	}
	return r.db.WithContext(ctx).Create(&errModels).Error
}
