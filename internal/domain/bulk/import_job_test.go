package bulk

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessingJob(t *testing.T) *ImportJob {
	t.Helper()
	job, err := NewImportJob("projects.csv", EntityTypeProjects, nil)
	require.NoError(t, err)
	require.NoError(t, job.Start())
	return job
}

func TestNewImportJob(t *testing.T) {
	adminID := uuid.New()

	t.Run("valid job", func(t *testing.T) {
		job, err := NewImportJob("projects.csv", EntityTypeProjects, &adminID)
		require.NoError(t, err)
		assert.Equal(t, ImportStatusPending, job.Status)
		assert.Equal(t, "projects.csv", job.Filename)
		assert.Equal(t, &adminID, job.CreatedByAdminID)
		assert.Empty(t, job.CreatedRecordIDs)
		assert.Nil(t, job.CompletedAt)
		assert.Nil(t, job.UndoneAt)
	})

	t.Run("empty filename", func(t *testing.T) {
		_, err := NewImportJob("", EntityTypeProjects, nil)
		assert.Error(t, err)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		_, err := NewImportJob("x.csv", EntityType("tenants"), nil)
		assert.Error(t, err)
	})
}

func TestImportJobStart(t *testing.T) {
	job, err := NewImportJob("projects.csv", EntityTypeProjects, nil)
	require.NoError(t, err)

	require.NoError(t, job.Start())
	assert.Equal(t, ImportStatusProcessing, job.Status)

	assert.Error(t, job.Start())
}

func TestImportJobComplete(t *testing.T) {
	t.Run("counts must cover all rows", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordInsert(uuid.New())
		job.RecordFailure()

		assert.Error(t, job.Complete(3))
		require.NoError(t, job.Complete(2))
		assert.Equal(t, ImportStatusCompleted, job.Status)
		assert.Equal(t, 2, job.TotalRows)
		assert.Equal(t, 1, job.InsertedCount)
		assert.Equal(t, 1, job.FailedCount)
		assert.NotNil(t, job.CompletedAt)
	})

	t.Run("created ids track inserted count", func(t *testing.T) {
		job := newProcessingJob(t)
		for i := 0; i < 5; i++ {
			job.RecordInsert(uuid.New())
		}
		require.NoError(t, job.Complete(5))
		assert.Len(t, job.CreatedRecordIDs, job.InsertedCount)
	})

	t.Run("only processing jobs complete", func(t *testing.T) {
		job, err := NewImportJob("projects.csv", EntityTypeProjects, nil)
		require.NoError(t, err)
		assert.Error(t, job.Complete(0))
	})
}

func TestImportJobFail(t *testing.T) {
	job := newProcessingJob(t)
	job.RecordInsert(uuid.New())

	require.NoError(t, job.Fail(10))
	assert.Equal(t, ImportStatusFailed, job.Status)
	assert.Equal(t, 10, job.TotalRows)
	assert.Equal(t, 1, job.InsertedCount)
	assert.NotNil(t, job.CompletedAt)

	// already terminal
	assert.Error(t, job.Fail(10))
}

func TestImportJobUndo(t *testing.T) {
	t.Run("completed job with records can undo", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordInsert(uuid.New())
		require.NoError(t, job.Complete(1))

		require.NoError(t, job.MarkUndone())
		assert.True(t, job.IsUndone())
		assert.NotNil(t, job.UndoneAt)
	})

	t.Run("undo is single-shot", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordInsert(uuid.New())
		require.NoError(t, job.Complete(1))
		require.NoError(t, job.MarkUndone())

		err := job.MarkUndone()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyUndone)
	})

	t.Run("nothing to undo", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordFailure()
		require.NoError(t, job.Complete(1))

		err := job.MarkUndone()
		assert.ErrorIs(t, err, ErrNothingToUndo)
		assert.Nil(t, job.UndoneAt)
	})

	t.Run("failed job cannot undo", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordInsert(uuid.New())
		require.NoError(t, job.Fail(5))

		assert.ErrorIs(t, job.MarkUndone(), ErrNotUndoable)
	})

	t.Run("processing job cannot undo", func(t *testing.T) {
		job := newProcessingJob(t)
		job.RecordInsert(uuid.New())

		assert.ErrorIs(t, job.MarkUndone(), ErrNotUndoable)
	})
}

func TestNewImportJobError(t *testing.T) {
	jobID := uuid.New()

	e, err := NewImportJobError(jobID, 3, "Missing required fields: name, developer, city, district", `{"name":""}`)
	require.NoError(t, err)
	assert.Equal(t, jobID, e.ImportJobID)
	assert.Equal(t, 3, e.RowNumber)

	_, err = NewImportJobError(uuid.Nil, 2, "msg", "{}")
	assert.Error(t, err)

	// header line and below are never data rows
	_, err = NewImportJobError(jobID, 1, "msg", "{}")
	assert.Error(t, err)

	_, err = NewImportJobError(jobID, 2, "", "{}")
	assert.Error(t, err)
}
