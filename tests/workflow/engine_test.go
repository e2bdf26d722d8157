package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jslate/intake/internal/jobs"
	"github.com/jslate/intake/internal/workflow"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubStep struct {
	name string
	run  func(ctx context.Context, job *jobs.Job) error
}

func (s *stubStep) Name() string { return s.name }

func (s *stubStep) Run(ctx context.Context, job *jobs.Job) error {
	if s.run == nil {
		return nil
	}
	return s.run(ctx, job)
}

type recordingNotifier struct {
	statuses []jobs.Status
}

func (n *recordingNotifier) JobUpdated(job *jobs.Job) {
	n.statuses = append(n.statuses, job.Status)
}

func seedJob(t *testing.T, store jobs.Store) *jobs.Job {
	t.Helper()

	now := time.Now().UTC()
	job := &jobs.Job{
		ID:           uuid.New(),
		DocumentType: "payslip",
		FilePath:     "/uploads/doc.pdf",
		Status:       jobs.StatusPending,
		Metadata:     map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func currentJob(t *testing.T, store jobs.Store, id uuid.UUID) *jobs.Job {
	t.Helper()

	job, _, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	return job
}

// drainQueue processes every id the engine re-enqueued, bounded so a
// broken retry loop fails the test instead of hanging it.
func drainQueue(t *testing.T, engine *workflow.Engine, queue *workflow.Queue) {
	t.Helper()

	for i := 0; i < 10 && queue.Len() > 0; i++ {
		engine.Process(context.Background(), <-queue.Dequeue())
	}
	if queue.Len() > 0 {
		t.Fatal("queue did not drain")
	}
}

func TestProcessCompletesPipeline(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)
	notifier := &recordingNotifier{}

	steps := []workflow.Step{
		&stubStep{name: "first", run: func(_ context.Context, job *jobs.Job) error {
			job.ExtractedText = "text"
			job.Metadata["first"] = true
			return nil
		}},
		&stubStep{name: "second", run: func(_ context.Context, job *jobs.Job) error {
			job.ReportPath = "/reports/out.pdf"
			return nil
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, notifier, 3, discardLogger())

	job := seedJob(t, store)
	if err := engine.Process(context.Background(), job.ID); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	got := currentJob(t, store, job.ID)
	if got.Status != jobs.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.CurrentStep != "second" {
		t.Errorf("current step = %q, want the final step retained on completion", got.CurrentStep)
	}
	if got.ReportPath != "/reports/out.pdf" {
		t.Errorf("report path = %q", got.ReportPath)
	}
	if _, ok := got.Metadata["first"]; !ok {
		t.Error("step metadata not persisted")
	}

	last := notifier.statuses[len(notifier.statuses)-1]
	if last != jobs.StatusCompleted {
		t.Errorf("final notification = %s, want completed", last)
	}
}

func TestProcessFailureRequeuesForRetry(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)

	steps := []workflow.Step{
		&stubStep{name: "flaky", run: func(_ context.Context, _ *jobs.Job) error {
			return errors.New("upstream unavailable")
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	if err := engine.Process(context.Background(), job.ID); err != nil {
		t.Fatalf("process returned %v", err)
	}

	got := currentJob(t, store, job.ID)
	if got.Status != jobs.StatusPending {
		t.Errorf("status = %s, want pending for retry", got.Status)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", got.RetryCount)
	}
	if got.ErrorMessage != "upstream unavailable" {
		t.Errorf("error message = %q", got.ErrorMessage)
	}
	if queue.Len() != 1 {
		t.Errorf("queue length = %d, want 1 requeued job", queue.Len())
	}
}

func TestProcessExhaustsRetries(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)

	attempts := 0
	steps := []workflow.Step{
		&stubStep{name: "always_failing", run: func(_ context.Context, _ *jobs.Job) error {
			attempts++
			return errors.New("persistent failure")
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	engine.Process(context.Background(), job.ID)
	drainQueue(t, engine, queue)

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	got := currentJob(t, store, job.ID)
	if got.Status != jobs.StatusFailed {
		t.Errorf("status = %s, want failed", got.Status)
	}
	if got.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3", got.RetryCount)
	}

	handling, ok := got.Metadata["error_handling"].(map[string]any)
	if !ok {
		t.Fatalf("error_handling metadata missing: %v", got.Metadata)
	}
	if handling["failed_step"] != "always_failing" {
		t.Errorf("failed_step = %v", handling["failed_step"])
	}
	if handling["final_error"] != "persistent failure" {
		t.Errorf("final_error = %v", handling["final_error"])
	}
}

func TestRetryRestartsFromFirstStep(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)

	firstRuns := 0
	failOnce := true
	steps := []workflow.Step{
		&stubStep{name: "first", run: func(_ context.Context, job *jobs.Job) error {
			firstRuns++
			job.ExtractedText = "recovered text"
			return nil
		}},
		&stubStep{name: "second", run: func(_ context.Context, _ *jobs.Job) error {
			if failOnce {
				failOnce = false
				return errors.New("transient")
			}
			return nil
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	engine.Process(context.Background(), job.ID)
	drainQueue(t, engine, queue)

	if firstRuns != 2 {
		t.Errorf("first step ran %d times, want 2 (full restart per attempt)", firstRuns)
	}

	got := currentJob(t, store, job.ID)
	if got.Status != jobs.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.ErrorMessage != "" {
		t.Errorf("error message = %q, want cleared on successful attempt", got.ErrorMessage)
	}
	if got.RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", got.RetryCount)
	}
}

func TestQueueFullDuringRetryFailsTerminally(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(1)
	queue.Enqueue(uuid.New())

	steps := []workflow.Step{
		&stubStep{name: "failing", run: func(_ context.Context, _ *jobs.Job) error {
			return errors.New("boom")
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	engine.Process(context.Background(), job.ID)

	got := currentJob(t, store, job.ID)
	if got.Status != jobs.StatusFailed {
		t.Errorf("status = %s, want failed when retry cannot be queued", got.Status)
	}
	if !strings.Contains(got.ErrorMessage, "retry aborted") {
		t.Errorf("error message = %q, want retry aborted note", got.ErrorMessage)
	}
}

func TestPanickingStepFailsJob(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)

	steps := []workflow.Step{
		&stubStep{name: "crashing", run: func(_ context.Context, _ *jobs.Job) error {
			panic("nil dereference")
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	if err := engine.Process(context.Background(), job.ID); err != nil {
		t.Fatalf("panic escaped the step boundary: %v", err)
	}

	got := currentJob(t, store, job.ID)
	if !strings.Contains(got.ErrorMessage, "panicked") {
		t.Errorf("error message = %q, want panic recorded", got.ErrorMessage)
	}
	if got.Status != jobs.StatusPending {
		t.Errorf("status = %s, want pending retry after panic", got.Status)
	}
}

func TestDeletedJobIsAbandonedMidRun(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)

	steps := []workflow.Step{
		&stubStep{name: "deleting", run: func(ctx context.Context, job *jobs.Job) error {
			return store.Delete(ctx, job.ID)
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, nil, 3, discardLogger())

	job := seedJob(t, store)
	if err := engine.Process(context.Background(), job.ID); err == nil {
		t.Error("expected abandonment error for a job deleted mid-run")
	}

	if _, _, err := store.Get(context.Background(), job.ID); !errors.Is(err, jobs.ErrNotFound) {
		t.Error("deleted job was resurrected by the worker")
	}
	if queue.Len() != 0 {
		t.Error("abandoned job must not be requeued")
	}
}

func TestNonPendingJobSkipped(t *testing.T) {
	store := jobs.NewStore()
	queue := workflow.NewQueue(4)
	notifier := &recordingNotifier{}

	ran := false
	steps := []workflow.Step{
		&stubStep{name: "noop", run: func(_ context.Context, _ *jobs.Job) error {
			ran = true
			return nil
		}},
	}
	engine := workflow.NewEngine(store, steps, queue, notifier, 3, discardLogger())

	job := seedJob(t, store)
	snapshot, gen, _ := store.Get(context.Background(), job.ID)
	snapshot.Status = jobs.StatusCompleted
	store.Replace(context.Background(), job.ID, gen, snapshot)

	if err := engine.Process(context.Background(), job.ID); err != nil {
		t.Fatalf("process returned %v", err)
	}
	if ran {
		t.Error("steps must not run for a non-pending job")
	}
	if len(notifier.statuses) != 0 {
		t.Error("no notifications expected for a skipped job")
	}
}

func TestMissingJobReturnsError(t *testing.T) {
	store := jobs.NewStore()
	engine := workflow.NewEngine(store, nil, workflow.NewQueue(1), nil, 3, discardLogger())

	if err := engine.Process(context.Background(), uuid.New()); !errors.Is(err, jobs.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
