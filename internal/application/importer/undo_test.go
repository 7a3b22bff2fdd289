package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listings/backend/internal/domain/bulk"
)

func runProjectImport(t *testing.T, f *fixtures, csv string) *bulk.ImportJob {
	t.Helper()
	job := newJob(t, bulk.EntityTypeProjects)
	require.NoError(t, f.executor(t).Run(context.Background(), job, []byte(csv)))
	reloaded, err := f.jobs.FindByID(context.Background(), job.ID)
	require.NoError(t, err)
	return reloaded
}

func TestUndoSoftDeletesEveryCreatedRecord(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	job := runProjectImport(t, f, "name,developer,city,district\n"+
		"Tower One,Acme Homes,Springfield,North End\n"+
		"Tower Two,Acme Homes,Springfield,North End\n"+
		"Tower Three,Acme Homes,Springfield,North End\n")
	require.Equal(t, 3, job.InsertedCount)

	result, err := f.undoEngine(t).Undo(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Undone)
	assert.Equal(t, 3, result.Total)

	for _, id := range job.CreatedRecordIDs {
		project, err := f.projects.FindByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, project.IsDeleted())
	}

	reloaded, err := f.jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusUndone, reloaded.Status)
	require.NotNil(t, reloaded.UndoneAt)
}

func TestUndoIsSingleShot(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	job := runProjectImport(t, f, "name,developer,city,district\n"+
		"Tower One,Acme Homes,Springfield,North End\n")

	engine := f.undoEngine(t)
	_, err := engine.Undo(ctx, job.ID)
	require.NoError(t, err)

	_, err = engine.Undo(ctx, job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, bulk.ErrAlreadyUndone)
	assert.Equal(t, "Import has already been undone", err.Error())
}

func TestUndoUnknownJob(t *testing.T) {
	f := setupFixtures(t)

	_, err := f.undoEngine(t).Undo(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.Equal(t, "Import job not found", err.Error())
}

func TestUndoWithNoCreatedRecords(t *testing.T) {
	f := setupFixtures(t)

	// every row fails validation, the job completes with nothing inserted
	job := runProjectImport(t, f, "name,developer,city,district\n"+
		",Acme Homes,Springfield,North End\n")
	require.Equal(t, bulk.ImportStatusCompleted, job.Status)
	require.Equal(t, 0, job.InsertedCount)

	_, err := f.undoEngine(t).Undo(context.Background(), job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, bulk.ErrNothingToUndo)
}

func TestUndoRejectsFailedJob(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	job := newJob(t, bulk.EntityTypeProjects)
	require.Error(t, f.executor(t).Run(ctx, job, nil))

	_, err := f.undoEngine(t).Undo(ctx, job.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, bulk.ErrNotUndoable)
}

func TestUndoRetainsErrorRows(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	job := runProjectImport(t, f, "name,developer,city,district\n"+
		"Tower One,Acme Homes,Springfield,North End\n"+
		",Acme Homes,Springfield,North End\n")
	require.Equal(t, 1, job.FailedCount)

	_, err := f.undoEngine(t).Undo(ctx, job.ID)
	require.NoError(t, err)

	rowErrors, err := f.jobErrors.FindByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, rowErrors, 1)
}

func TestUndoDevelopersJob(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()

	job := newJob(t, bulk.EntityTypeDevelopers)
	require.NoError(t, f.executor(t).Run(ctx, job, []byte("name\nDelta Developments\n")))

	reloaded, err := f.jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)

	_, err = f.undoEngine(t).Undo(ctx, reloaded.ID)
	require.NoError(t, err)

	dev, err := f.developers.FindByID(ctx, reloaded.CreatedRecordIDs[0])
	require.NoError(t, err)
	assert.True(t, dev.IsDeleted())
}
