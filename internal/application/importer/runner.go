package importer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/listings/backend/internal/domain/bulk"
	"github.com/listings/backend/internal/domain/shared"
)

// ErrQueueFull is returned when the import queue cannot take more work.
var ErrQueueFull = shared.NewDomainError("IMPORT_QUEUE_FULL", "Import queue is full, try again later")

// ErrRunnerStopped is returned when work is submitted after shutdown.
var ErrRunnerStopped = shared.NewDomainError("IMPORT_RUNNER_STOPPED", "Import runner is not accepting work")

type task struct {
	job  *bulk.ImportJob
	data []byte
}

// Runner executes import jobs in the background. Uploads enqueue onto
// a bounded channel and worker goroutines drain it, so the HTTP
// handler returns as soon as the job is recorded. Stop drains any
// queued work before returning.
type Runner struct {
	executor *Executor
	jobs     bulk.ImportJobRepository
	logger   *zap.Logger

	queue chan task
	wg    sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// NewRunner creates a Runner with the given queue depth and worker count.
func NewRunner(executor *Executor, jobs bulk.ImportJobRepository, logger *zap.Logger, queueSize, workers int) *Runner {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	r := &Runner{
		executor: executor,
		jobs:     jobs,
		logger:   logger,
		queue:    make(chan task, queueSize),
	}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.work()
	}
	return r
}

// Enqueue submits a job for background execution. It never blocks: a
// full queue is reported to the caller instead.
func (r *Runner) Enqueue(job *bulk.ImportJob, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrRunnerStopped
	}
	select {
	case r.queue <- task{job: job, data: data}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight and queued jobs to finish.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.queue)
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) work() {
	defer r.wg.Done()
	for t := range r.queue {
		if err := r.executor.Run(context.Background(), t.job, t.data); err != nil {
			r.logger.Error("Import job run failed",
				zap.String("job_id", t.job.ID.String()),
				zap.Error(err),
			)
		}
	}
}

// RecoverOrphans marks jobs left pending or processing by a previous
// process as failed. Run once at startup, before accepting uploads.
func (r *Runner) RecoverOrphans(ctx context.Context) error {
	for _, status := range []bulk.ImportStatus{bulk.ImportStatusPending, bulk.ImportStatusProcessing} {
		jobs, err := r.jobs.FindByStatus(ctx, status)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			if err := job.Fail(job.InsertedCount + job.FailedCount); err != nil {
				continue
			}
			if err := r.jobs.Save(ctx, job); err != nil {
				return err
			}
			r.logger.Warn("Marked orphaned import job as failed",
				zap.String("job_id", job.ID.String()),
				zap.String("filename", job.Filename),
			)
		}
	}
	return nil
}
