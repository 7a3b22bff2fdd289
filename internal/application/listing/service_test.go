package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/listings/backend/internal/domain/audit"
	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/domain/shared"
	"github.com/listings/backend/internal/infrastructure/persistence"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
)

type testEnv struct {
	projects   *ProjectService
	developers *DeveloperService
	banks      *BankService
	locations  *LocationService
	favorites  *FavoriteService
	auditLogs  audit.Repository

	developerID uuid.UUID
	cityID      uuid.UUID
	districtID  uuid.UUID
	otherCityID uuid.UUID
}

func setupEnv(t *testing.T) *testEnv {
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
		&models.FavoriteModel{},
		&models.AuditLogModel{},
	))

	projectRepo := persistence.NewGormProjectRepository(db)
	developerRepo := persistence.NewGormDeveloperRepository(db)
	bankRepo := persistence.NewGormBankRepository(db)
	cityRepo := persistence.NewGormCityRepository(db)
	districtRepo := persistence.NewGormDistrictRepository(db)
	favoriteRepo := persistence.NewGormFavoriteRepository(db)
	auditRepo := persistence.NewGormAuditLogRepository(db)
	log := zaptest.NewLogger(t)

	env := &testEnv{
		projects:   NewProjectService(projectRepo, developerRepo, cityRepo, districtRepo, bankRepo, auditRepo, log),
		developers: NewDeveloperService(developerRepo, auditRepo, log),
		banks:      NewBankService(bankRepo, auditRepo, log),
		locations:  NewLocationService(cityRepo, districtRepo, auditRepo, log),
		favorites:  NewFavoriteService(favoriteRepo, projectRepo),
		auditLogs:  auditRepo,
	}

	ctx := context.Background()
	dev, err := listing.NewDeveloper("Acme Homes")
	require.NoError(t, err)
	require.NoError(t, developerRepo.Save(ctx, dev))
	env.developerID = dev.ID

	city, err := listing.NewCity("Springfield")
	require.NoError(t, err)
	require.NoError(t, cityRepo.Save(ctx, city))
	env.cityID = city.ID

	other, err := listing.NewCity("Shelbyville")
	require.NoError(t, err)
	require.NoError(t, cityRepo.Save(ctx, other))
	env.otherCityID = other.ID

	district, err := listing.NewDistrict("North End", city.ID)
	require.NoError(t, err)
	require.NoError(t, districtRepo.Save(ctx, district))
	env.districtID = district.ID

	return env
}

func (e *testEnv) createProject(t *testing.T, name string) *ProjectResponse {
	t.Helper()
	resp, err := e.projects.Create(context.Background(), CreateProjectRequest{
		Name:        name,
		DeveloperID: e.developerID,
		CityID:      e.cityID,
		DistrictID:  e.districtID,
	}, nil, "")
	require.NoError(t, err)
	return resp
}

func TestProjectServiceCreateValidatesReferences(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.projects.Create(ctx, CreateProjectRequest{
		Name:        "Tower",
		DeveloperID: uuid.New(),
		CityID:      env.cityID,
		DistrictID:  env.districtID,
	}, nil, "")
	require.Error(t, err)

	// district from another city is rejected
	otherDistrict, err := env.locations.CreateDistrict(ctx, DistrictRequest{Name: "Old Town", CityID: env.otherCityID}, nil, "")
	require.NoError(t, err)
	_, err = env.projects.Create(ctx, CreateProjectRequest{
		Name:        "Tower",
		DeveloperID: env.developerID,
		CityID:      env.cityID,
		DistrictID:  otherDistrict.ID,
	}, nil, "")
	require.Error(t, err)

	resp := env.createProject(t, "Tower One")
	assert.Equal(t, "Tower One", resp.Name)
	assert.Equal(t, "active", resp.Status)
}

func TestProjectServiceCreateWritesAudit(t *testing.T) {
	env := setupEnv(t)
	adminID := uuid.New()

	resp, err := env.projects.Create(context.Background(), CreateProjectRequest{
		Name:        "Audited Tower",
		DeveloperID: env.developerID,
		CityID:      env.cityID,
		DistrictID:  env.districtID,
	}, &adminID, "10.0.0.9")
	require.NoError(t, err)

	entries, err := env.auditLogs.FindByEntity(context.Background(), "project", resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionCreate, entries[0].Action)
	assert.Equal(t, "10.0.0.9", entries[0].IPAddress)
}

func TestProjectServiceVisibilityAndPublicGet(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	resp := env.createProject(t, "Tower One")

	_, err := env.projects.GetPublic(ctx, resp.ID)
	require.NoError(t, err)

	_, err = env.projects.SetVisibility(ctx, resp.ID, false, nil, "")
	require.NoError(t, err)

	_, err = env.projects.GetPublic(ctx, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// admin view still sees it
	got, err := env.projects.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "hidden", got.Status)
}

func TestProjectServiceDeleteAndRestore(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	resp := env.createProject(t, "Tower One")

	require.NoError(t, env.projects.Delete(ctx, resp.ID, nil, ""))

	listed, err := env.projects.List(ctx, ProjectListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), listed.Total)

	listed, err = env.projects.List(ctx, ProjectListQuery{Page: 1, PageSize: 10, IncludeDeleted: true, IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), listed.Total)

	require.NoError(t, env.projects.Restore(ctx, resp.ID, nil, ""))
	listed, err = env.projects.List(ctx, ProjectListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), listed.Total)
}

func TestProjectServiceUpdatePartial(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	resp := env.createProject(t, "Tower One")

	newAddress := "1 Main St"
	updated, err := env.projects.Update(ctx, resp.ID, UpdateProjectRequest{Address: &newAddress}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Tower One", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestDeveloperServiceUniqueName(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.developers.Create(ctx, DeveloperRequest{Name: "acme homes"}, nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	resp, err := env.developers.Create(ctx, DeveloperRequest{Name: "Delta Developments"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Delta Developments", resp.Name)
}

func TestBankServiceCreateWithRate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	rate := decimal.RequireFromString("4.5")
	resp, err := env.banks.Create(ctx, BankRequest{Name: "Alpha Bank", BaseRate: &rate}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "4.5", resp.BaseRate.String())

	active, err := env.banks.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, env.banks.Delete(ctx, resp.ID, nil, ""))
	active, err = env.banks.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 0)
}

func TestLocationServiceListCitiesWithDistricts(t *testing.T) {
	env := setupEnv(t)

	cities, err := env.locations.ListCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)

	var springfield *CityResponse
	for i := range cities {
		if cities[i].Name == "Springfield" {
			springfield = &cities[i]
		}
	}
	require.NotNil(t, springfield)
	require.Len(t, springfield.Districts, 1)
	assert.Equal(t, "North End", springfield.Districts[0].Name)
}

func TestFavoriteServiceRoundTrip(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	resp := env.createProject(t, "Tower One")

	require.NoError(t, env.favorites.Add(ctx, "visitor-1", resp.ID))
	// second add is a no-op
	require.NoError(t, env.favorites.Add(ctx, "visitor-1", resp.ID))

	favs, err := env.favorites.List(ctx, "visitor-1")
	require.NoError(t, err)
	require.Len(t, favs, 1)

	count, err := env.favorites.Count(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// hidden projects drop out of the visitor's list
	_, err = env.projects.SetVisibility(ctx, resp.ID, false, nil, "")
	require.NoError(t, err)
	favs, err = env.favorites.List(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Len(t, favs, 0)

	require.NoError(t, env.favorites.Remove(ctx, "visitor-1", resp.ID))
	count, err = env.favorites.Count(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
