package importer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/listings/backend/internal/domain/bulk"
)

func newRunner(t *testing.T, f *fixtures, queueSize, workers int) *Runner {
	t.Helper()
	r := NewRunner(f.executor(t), f.jobs, zaptest.NewLogger(t), queueSize, workers)
	t.Cleanup(r.Stop)
	return r
}

func TestRunnerProcessesQueuedJob(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()
	runner := newRunner(t, f, 4, 1)

	job := newJob(t, bulk.EntityTypeProjects)
	require.NoError(t, f.jobs.Save(ctx, job))

	csv := "name,developer,city,district\nTower One,Acme Homes,Springfield,North End\n"
	require.NoError(t, runner.Enqueue(job, []byte(csv)))

	assert.Eventually(t, func() bool {
		reloaded, err := f.jobs.FindByID(ctx, job.ID)
		return err == nil && reloaded.Status == bulk.ImportStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunnerStopDrainsQueue(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()
	runner := NewRunner(f.executor(t), f.jobs, zaptest.NewLogger(t), 4, 1)

	job := newJob(t, bulk.EntityTypeProjects)
	require.NoError(t, f.jobs.Save(ctx, job))
	csv := "name,developer,city,district\nTower One,Acme Homes,Springfield,North End\n"
	require.NoError(t, runner.Enqueue(job, []byte(csv)))

	runner.Stop()

	reloaded, err := f.jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusCompleted, reloaded.Status)
}

func TestRunnerRejectsWorkAfterStop(t *testing.T) {
	f := setupFixtures(t)
	runner := NewRunner(f.executor(t), f.jobs, zaptest.NewLogger(t), 1, 1)
	runner.Stop()

	job := newJob(t, bulk.EntityTypeProjects)
	err := runner.Enqueue(job, nil)
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestRecoverOrphansMarksStuckJobsFailed(t *testing.T) {
	f := setupFixtures(t)
	ctx := context.Background()
	runner := newRunner(t, f, 1, 1)

	stuck := newJob(t, bulk.EntityTypeProjects)
	require.NoError(t, stuck.Start())
	require.NoError(t, f.jobs.Save(ctx, stuck))

	pending := newJob(t, bulk.EntityTypeDevelopers)
	require.NoError(t, f.jobs.Save(ctx, pending))

	done := newJob(t, bulk.EntityTypeBanks)
	require.NoError(t, f.executor(t).Run(ctx, done, []byte("name\nGamma Bank\n")))

	require.NoError(t, runner.RecoverOrphans(ctx))

	for _, id := range []uuid.UUID{stuck.ID, pending.ID} {
		reloaded, err := f.jobs.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, bulk.ImportStatusFailed, reloaded.Status)
		assert.NotNil(t, reloaded.CompletedAt)
	}

	completed, err := f.jobs.FindByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, bulk.ImportStatusCompleted, completed.Status)
}
