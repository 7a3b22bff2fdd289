package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/infrastructure/persistence"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
)

// fixtures bundles the repositories and reference rows the importer
// tests run against.
type fixtures struct {
	db *gorm.DB

	projects   *persistence.GormProjectRepository
	developers *persistence.GormDeveloperRepository
	banks      *persistence.GormBankRepository
	cities     *persistence.GormCityRepository
	districts  *persistence.GormDistrictRepository
	jobs       *persistence.GormImportJobRepository
	jobErrors  *persistence.GormImportJobErrorRepository
	auditLogs  *persistence.GormAuditLogRepository

	developer *listing.Developer
	city      *listing.City
	district  *listing.District
	otherCity *listing.City
	// otherDistrict belongs to otherCity, for cross-check tests
	otherDistrict *listing.District
	bankAlpha     *listing.Bank
	bankBeta      *listing.Bank
}

func setupFixtures(t *testing.T) *fixtures {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ProjectModel{},
		&models.ProjectBankModel{},
		&models.DeveloperModel{},
		&models.BankModel{},
		&models.CityModel{},
		&models.DistrictModel{},
		&models.ImportJobModel{},
		&models.ImportJobErrorModel{},
		&models.AuditLogModel{},
	))

	f := &fixtures{
		db:         db,
		projects:   persistence.NewGormProjectRepository(db),
		developers: persistence.NewGormDeveloperRepository(db),
		banks:      persistence.NewGormBankRepository(db),
		cities:     persistence.NewGormCityRepository(db),
		districts:  persistence.NewGormDistrictRepository(db),
		jobs:       persistence.NewGormImportJobRepository(db),
		jobErrors:  persistence.NewGormImportJobErrorRepository(db),
		auditLogs:  persistence.NewGormAuditLogRepository(db),
	}

	ctx := context.Background()

	f.developer = mustDeveloper(t, "Acme Homes")
	require.NoError(t, f.developers.Save(ctx, f.developer))

	f.city = mustCity(t, "Springfield")
	require.NoError(t, f.cities.Save(ctx, f.city))
	f.otherCity = mustCity(t, "Shelbyville")
	require.NoError(t, f.cities.Save(ctx, f.otherCity))

	f.district = mustDistrict(t, "North End", f.city)
	require.NoError(t, f.districts.Save(ctx, f.district))
	f.otherDistrict = mustDistrict(t, "Old Town", f.otherCity)
	require.NoError(t, f.districts.Save(ctx, f.otherDistrict))

	f.bankAlpha = mustBank(t, "Alpha Bank")
	require.NoError(t, f.banks.Save(ctx, f.bankAlpha))
	f.bankBeta = mustBank(t, "Beta Bank")
	require.NoError(t, f.banks.Save(ctx, f.bankBeta))

	return f
}

func (f *fixtures) executor(t *testing.T) *Executor {
	t.Helper()
	return NewExecutor(f.projects, f.developers, f.banks, f.cities, f.districts, f.jobs, f.jobErrors, zaptest.NewLogger(t))
}

func (f *fixtures) undoEngine(t *testing.T) *UndoEngine {
	t.Helper()
	return NewUndoEngine(f.projects, f.developers, f.banks, f.jobs, zaptest.NewLogger(t))
}

func (f *fixtures) resolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := BuildResolver(context.Background(), ResolverSources{
		Developers: f.developers,
		Cities:     f.cities,
		Districts:  f.districts,
		Banks:      f.banks,
	})
	require.NoError(t, err)
	return r
}

func mustDeveloper(t *testing.T, name string) *listing.Developer {
	t.Helper()
	d, err := listing.NewDeveloper(name)
	require.NoError(t, err)
	return d
}

func mustCity(t *testing.T, name string) *listing.City {
	t.Helper()
	c, err := listing.NewCity(name)
	require.NoError(t, err)
	return c
}

func mustDistrict(t *testing.T, name string, city *listing.City) *listing.District {
	t.Helper()
	d, err := listing.NewDistrict(name, city.ID)
	require.NoError(t, err)
	return d
}

func mustBank(t *testing.T, name string) *listing.Bank {
	t.Helper()
	b, err := listing.NewBank(name)
	require.NoError(t, err)
	return b
}
