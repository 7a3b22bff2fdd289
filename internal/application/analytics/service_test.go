package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/listings/backend/internal/domain/listing"
	"github.com/listings/backend/internal/infrastructure/persistence"
	"github.com/listings/backend/internal/infrastructure/persistence/models"
)

func setupService(t *testing.T) (*Service, *persistence.GormProjectRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.PageViewModel{},
		&models.ProjectModel{},
		&models.ProjectBankModel{},
	))

	projects := persistence.NewGormProjectRepository(db)
	views := persistence.NewGormPageViewRepository(db)
	return NewService(views, projects, zaptest.NewLogger(t)), projects
}

func seedProject(t *testing.T, repo *persistence.GormProjectRepository) *listing.Project {
	t.Helper()
	p, err := listing.NewProject("Tracked Tower", uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestDashboardAggregatesViews(t *testing.T) {
	svc, projects := setupService(t)
	ctx := context.Background()
	project := seedProject(t, projects)

	for _, visitor := range []string{"v1", "v1", "v2"} {
		svc.Track(ctx, TrackRequest{
			Path:       "/projects/" + project.ID.String(),
			EntityType: "project",
			EntityID:   &project.ID,
		}, visitor, "10.0.0.1")
	}
	svc.Track(ctx, TrackRequest{Path: "/"}, "v3", "10.0.0.2")

	resp, err := svc.Dashboard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.TotalViews)
	assert.Equal(t, int64(3), resp.UniqueVisitors)
	require.Len(t, resp.ViewsByDay, 1)
	assert.Equal(t, int64(4), resp.ViewsByDay[0].Count)

	require.Len(t, resp.TopProjects, 1)
	assert.Equal(t, project.ID, resp.TopProjects[0].ProjectID)
	assert.Equal(t, "Tracked Tower", resp.TopProjects[0].Name)
	assert.Equal(t, int64(3), resp.TopProjects[0].Views)
}

func TestTrackIgnoresInvalidPath(t *testing.T) {
	svc, _ := setupService(t)
	svc.Track(context.Background(), TrackRequest{Path: "  "}, "v1", "10.0.0.1")

	resp, err := svc.Dashboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalViews)
}
