package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jslate/intake/internal/jobs"
)

// errAbandoned signals that the job record vanished (or was superseded)
// mid-run and the worker should stop touching it.
var errAbandoned = errors.New("job abandoned")

// Engine drives a single job through the pipeline steps. Every state
// change is published through the store's generation-checked Replace, so
// a job deleted mid-run is abandoned rather than resurrected.
type Engine struct {
	store      jobs.Store
	steps      []Step
	queue      *Queue
	notifier   jobs.Notifier
	maxRetries int
	logger     *slog.Logger
}

// NewEngine creates an Engine running steps in the given order. A failed
// run restarts from the first step on the next attempt; after maxRetries
// attempts the job fails terminally. notifier may be nil.
func NewEngine(
	store jobs.Store,
	steps []Step,
	queue *Queue,
	notifier jobs.Notifier,
	maxRetries int,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		store:      store,
		steps:      steps,
		queue:      queue,
		notifier:   notifier,
		maxRetries: maxRetries,
		logger:     logger.With("system", "workflow"),
	}
}

// Process runs one pipeline pass for the job. It returns an error only
// for observability; workers log and move on regardless.
func (e *Engine) Process(ctx context.Context, id uuid.UUID) error {
	job, gen, err := e.store.Get(ctx, id)
	if err != nil {
		e.logger.Warn("dequeued job no longer exists", "job_id", id)
		return err
	}
	if job.Status != jobs.StatusPending {
		e.logger.Warn("dequeued job is not pending, skipping", "job_id", id, "status", job.Status)
		return nil
	}

	// Fresh attempt: prior outputs and error state do not carry over.
	job.ExtractedText = ""
	job.StructuredData = nil
	job.ReportPath = ""
	job.ErrorMessage = ""

	logger := e.logger.With("job_id", id, "attempt", job.RetryCount+1)
	logger.Info("processing started", "document_type", job.DocumentType)

	for _, step := range e.steps {
		job.SetStatus(jobs.StatusProcessing, step.Name())
		if gen, err = e.publish(ctx, job, gen); err != nil {
			return err
		}

		if stepErr := runStep(ctx, step, job); stepErr != nil {
			logger.Error("step failed", "step", step.Name(), "error", stepErr)
			return e.handleFailure(ctx, job, gen, stepErr)
		}

		if gen, err = e.publish(ctx, job, gen); err != nil {
			return err
		}
		logger.Info("step completed", "step", step.Name())
	}

	job.SetStatus(jobs.StatusCompleted, "")
	if _, err = e.publish(ctx, job, gen); err != nil {
		return err
	}

	logger.Info("processing completed")
	return nil
}

// handleFailure records the error and either re-queues the job for a full
// restart or fails it terminally once attempts are exhausted.
func (e *Engine) handleFailure(ctx context.Context, job *jobs.Job, gen uint64, stepErr error) error {
	job.ErrorMessage = stepErr.Error()
	job.RetryCount++

	if job.RetryCount < e.maxRetries {
		job.SetStatus(jobs.StatusPending, job.CurrentStep)
		gen, err := e.publish(ctx, job, gen)
		if err != nil {
			return err
		}

		if err := e.queue.Enqueue(job.ID); err != nil {
			// Full queue leaves no way to retry; fail terminally.
			job.ErrorMessage = fmt.Sprintf("%s (retry aborted: %v)", job.ErrorMessage, err)
			return e.failTerminally(ctx, job, gen)
		}

		e.logger.Info("job requeued for retry",
			"job_id", job.ID,
			"retry_count", job.RetryCount,
			"max_retries", e.maxRetries)
		return nil
	}

	return e.failTerminally(ctx, job, gen)
}

func (e *Engine) failTerminally(ctx context.Context, job *jobs.Job, gen uint64) error {
	job.SetStatus(jobs.StatusFailed, job.CurrentStep)
	job.Metadata["error_handling"] = map[string]any{
		"final_error": job.ErrorMessage,
		"retry_count": job.RetryCount,
		"failed_step": job.CurrentStep,
	}

	if _, err := e.publish(ctx, job, gen); err != nil {
		return err
	}

	e.logger.Error("job failed terminally",
		"job_id", job.ID,
		"retry_count", job.RetryCount,
		"error", job.ErrorMessage)
	return nil
}

// publish writes the job snapshot back to the store and notifies
// listeners. A stale generation means the job was deleted mid-run.
func (e *Engine) publish(ctx context.Context, job *jobs.Job, gen uint64) (uint64, error) {
	next, err := e.store.Replace(ctx, job.ID, gen, job)
	if err != nil {
		e.logger.Warn("job state superseded mid-run, abandoning", "job_id", job.ID, "error", err)
		return 0, errAbandoned
	}
	if e.notifier != nil {
		e.notifier.JobUpdated(job)
	}
	return next, nil
}

// runStep executes one step with panic containment, so a crashing step
// fails the job instead of the worker.
func runStep(ctx context.Context, step Step, job *jobs.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step %s panicked: %v", step.Name(), r)
		}
	}()
	return step.Run(ctx, job)
}
