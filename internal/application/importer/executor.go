package importer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/infrastructure/csvimport"
)

// Executor runs one import job end to end: parse the CSV, validate and
// insert row by row, collect per-row errors, and finalize the ledger.
// A row failure never aborts the batch; the job only finishes as
// failed when the file itself cannot be processed.
type Executor struct {
	projects   listing.ProjectRepository
	developers listing.DeveloperRepository
	banks      listing.BankRepository
	cities     listing.CityRepository
	districts  listing.DistrictRepository
	jobs       bulk.ImportJobRepository
	jobErrors  bulk.ImportJobErrorRepository
	logger     *zap.Logger
}

// NewExecutor creates an Executor.
func NewExecutor(
	projects listing.ProjectRepository,
	developers listing.DeveloperRepository,
	banks listing.BankRepository,
	cities listing.CityRepository,
	districts listing.DistrictRepository,
	jobs bulk.ImportJobRepository,
	jobErrors bulk.ImportJobErrorRepository,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		projects:   projects,
		developers: developers,
		banks:      banks,
		cities:     cities,
		districts:  districts,
		jobs:       jobs,
		jobErrors:  jobErrors,
		logger:     logger,
	}
}

// Run executes the job against the raw file contents. The job must be
// pending; it is moved to processing before any row is read and ends
// in completed or failed.
func (e *Executor) Run(ctx context.Context, job *bulk.ImportJob, data []byte) error {
	if err := job.Start(); err != nil {
		return err
	}
	if err := e.jobs.Save(ctx, job); err != nil {
		return err
	}

	parser, err := csvimport.ParseBytes(data)
	if err != nil {
		return e.finalizeFailed(ctx, job, err)
	}
	if err := parser.ParseHeader(); err != nil {
		return e.finalizeFailed(ctx, job, err)
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return e.finalizeFailed(ctx, job, err)
	}

	var resolver *Resolver
	if job.EntityType == bulk.EntityTypeProjects {
		resolver, err = BuildResolver(ctx, ResolverSources{
			Developers: e.developers,
			Cities:     e.cities,
			Districts:  e.districts,
			Banks:      e.banks,
		})
		if err != nil {
			return e.finalizeFailed(ctx, job, err)
		}
	}

	var rowErrors []*bulk.ImportJobError
	for _, row := range rows {
		id, rowErr := e.importRow(ctx, job.EntityType, row, resolver)
		if rowErr != nil {
			job.RecordFailure()
			jobErr, err := bulk.NewImportJobError(job.ID, rowErr.Line, rowErr.Message, rowErr.RawJSON())
			if err != nil {
				e.logger.Error("Failed to build import row error",
					zap.String("job_id", job.ID.String()),
					zap.Int("row", rowErr.Line),
					zap.Error(err),
				)
				continue
			}
			rowErrors = append(rowErrors, jobErr)
			continue
		}
		job.RecordInsert(id)
	}

	if len(rowErrors) > 0 {
		if err := e.jobErrors.SaveBatch(ctx, rowErrors); err != nil {
			// errors are advisory, the job still finalizes
			e.logger.Error("Failed to persist import row errors",
				zap.String("job_id", job.ID.String()),
				zap.Int("count", len(rowErrors)),
				zap.Error(err),
			)
		}
	}

	if err := job.Complete(len(rows)); err != nil {
		return e.finalizeFailed(ctx, job, err)
	}
	if err := e.jobs.Save(ctx, job); err != nil {
		return err
	}

	e.logger.Info("Import job completed",
		zap.String("job_id", job.ID.String()),
		zap.String("entity_type", string(job.EntityType)),
		zap.Int("total", job.TotalRows),
		zap.Int("inserted", job.InsertedCount),
		zap.Int("failed", job.FailedCount),
	)
	return nil
}

// importRow validates and inserts a single row. Any error is returned
// as a RowError so the caller records it without aborting the loop.
func (e *Executor) importRow(ctx context.Context, entityType bulk.EntityType, row *csvimport.Row, resolver *Resolver) (uuid.UUID, *csvimport.RowError) {
	switch entityType {
	case bulk.EntityTypeDevelopers:
		return e.importDeveloperRow(ctx, row)
	case bulk.EntityTypeBanks:
		return e.importBankRow(ctx, row)
	default:
		return e.importProjectRow(ctx, row, resolver)
	}
}

func (e *Executor) importProjectRow(ctx context.Context, row *csvimport.Row, resolver *Resolver) (uuid.UUID, *csvimport.RowError) {
	payload, rowErr := NormalizeProjectRow(row, resolver)
	if rowErr != nil {
		return uuid.Nil, rowErr
	}

	for _, name := range payload.UnresolvedBanks {
		e.logger.Warn("Unknown bank name in import row, skipping",
			zap.String("bank", name),
			zap.Int("row", row.LineNumber),
		)
	}

	project, err := listing.NewProject(payload.Name, payload.DeveloperID, payload.CityID, payload.DistrictID)
	if err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if err := project.Update(payload.Name, payload.Address, payload.ShortDescription, payload.Description); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if err := project.SetPrice(payload.PriceFrom, payload.Currency); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	// ranges were checked during normalization, either side may be nil
	project.Latitude = payload.Latitude
	project.Longitude = payload.Longitude
	project.SetCompletionDate(payload.CompletionDate)
	project.CoverImageURL = payload.CoverImageURL

	if err := e.projects.Save(ctx, project); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, "Failed to save project: "+err.Error())
	}

	// associations only after the row itself is in
	for _, bankID := range payload.BankIDs {
		if err := e.projects.LinkBank(ctx, project.ID, bankID); err != nil {
			e.logger.Warn("Failed to link bank to imported project",
				zap.String("project_id", project.ID.String()),
				zap.String("bank_id", bankID.String()),
				zap.Error(err),
			)
		}
	}

	return project.ID, nil
}

func (e *Executor) importDeveloperRow(ctx context.Context, row *csvimport.Row) (uuid.UUID, *csvimport.RowError) {
	payload, rowErr := NormalizeDeveloperRow(row)
	if rowErr != nil {
		return uuid.Nil, rowErr
	}

	developer, err := listing.NewDeveloper(payload.Name)
	if err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if err := developer.Update(payload.Name, payload.Description, payload.Website, payload.Phone, payload.LogoURL); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if err := e.developers.Save(ctx, developer); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, "Failed to save developer: "+err.Error())
	}
	return developer.ID, nil
}

func (e *Executor) importBankRow(ctx context.Context, row *csvimport.Row) (uuid.UUID, *csvimport.RowError) {
	payload, rowErr := NormalizeBankRow(row)
	if rowErr != nil {
		return uuid.Nil, rowErr
	}

	bank, err := listing.NewBank(payload.Name)
	if err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if err := bank.Update(payload.Name, payload.LogoURL, payload.Website); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, err.Error())
	}
	if payload.BaseRate != nil {
		if err := bank.SetBaseRate(*payload.BaseRate); err != nil {
			return uuid.Nil, csvimport.NewRowError(row, err.Error())
		}
	}
	if err := e.banks.Save(ctx, bank); err != nil {
		return uuid.Nil, csvimport.NewRowError(row, "Failed to save bank: "+err.Error())
	}
	return bank.ID, nil
}

// finalizeFailed marks the job failed after a structural error, keeping
// whatever per-row progress was already counted.
func (e *Executor) finalizeFailed(ctx context.Context, job *bulk.ImportJob, cause error) error {
	e.logger.Error("Import job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("filename", job.Filename),
		zap.Error(cause),
	)
	if err := job.Fail(job.InsertedCount + job.FailedCount); err != nil {
		return err
	}
	if err := e.jobs.Save(ctx, job); err != nil {
		return err
	}
	return cause
}
