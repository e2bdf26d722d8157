package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jslate/intake/internal/extract"
	"github.com/jslate/intake/internal/schemas"
	"github.com/jslate/intake/pkg/storage"
)

// Enqueuer hands a pending job to the processing pipeline.
type Enqueuer interface {
	Enqueue(id uuid.UUID) error
}

// Notifier receives job state change notifications.
type Notifier interface {
	JobUpdated(job *Job)
}

// SubmitCommand carries an upload request into the system.
type SubmitCommand struct {
	DocumentType string
	Filename     string
	File         io.Reader
}

// HealthReport summarizes the job population for the health endpoint.
type HealthReport struct {
	Status       string         `json:"status"`
	TotalJobs    int            `json:"total_jobs"`
	JobsByStatus map[Status]int `json:"jobs_by_status"`
	ActiveJobs   int            `json:"active_jobs"`
}

// System defines the public contract for job domain operations.
type System interface {
	Handler() *Handler

	Submit(ctx context.Context, cmd SubmitCommand) (*Job, error)
	Find(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context) ([]*Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Report(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	Health(ctx context.Context) (*HealthReport, error)

	Store() Store
}

type system struct {
	store    Store
	uploads  storage.System
	reports  storage.System
	queue    Enqueuer
	notifier Notifier
	logger   *slog.Logger
}

// NewSystem creates the job domain system. notifier may be nil.
func NewSystem(
	store Store,
	uploads storage.System,
	reports storage.System,
	queue Enqueuer,
	notifier Notifier,
	logger *slog.Logger,
) System {
	return &system{
		store:    store,
		uploads:  uploads,
		reports:  reports,
		queue:    queue,
		notifier: notifier,
		logger:   logger.With("system", "jobs"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Store() Store {
	return s.store
}

// Submit validates the request, persists the uploaded file keyed by job
// id, records the job as pending, and enqueues it for processing.
func (s *system) Submit(ctx context.Context, cmd SubmitCommand) (*Job, error) {
	if !ValidDocumentType(cmd.DocumentType, schemas.SupportedTypes()) {
		return nil, ErrInvalidDocumentType
	}
	if cmd.Filename == "" || cmd.File == nil {
		return nil, ErrMissingFile
	}
	if !extract.Supported(cmd.Filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(cmd.Filename))
	}

	id := uuid.New()
	key := id.String() + strings.ToLower(filepath.Ext(cmd.Filename))

	path, err := s.uploads.Upload(ctx, key, cmd.File)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	now := time.Now().UTC()
	job := &Job{
		ID:           id,
		DocumentType: cmd.DocumentType,
		FilePath:     path,
		Status:       StatusPending,
		Metadata:     map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, job); err != nil {
		s.cleanupUpload(ctx, key)
		return nil, fmt.Errorf("record job: %w", err)
	}

	if err := s.queue.Enqueue(id); err != nil {
		if delErr := s.store.Delete(ctx, id); delErr != nil {
			s.logger.Warn("failed to remove unqueued job", "job_id", id, "error", delErr)
		}
		s.cleanupUpload(ctx, key)
		return nil, err
	}

	s.logger.Info("job submitted", "job_id", id, "document_type", cmd.DocumentType, "file", cmd.Filename)
	s.notify(job)
	return job, nil
}

func (s *system) notify(job *Job) {
	if s.notifier != nil {
		s.notifier.JobUpdated(job)
	}
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	job, _, err := s.store.Get(ctx, id)
	return job, err
}

func (s *system) List(ctx context.Context) ([]*Job, error) {
	return s.store.List(ctx)
}

// Delete removes the job record along with its uploaded document and any
// rendered report. Artifact removal failures are logged, not fatal.
func (s *system) Delete(ctx context.Context, id uuid.UUID) error {
	job, _, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if job.FilePath != "" {
		s.cleanupUpload(ctx, filepath.Base(job.FilePath))
	}
	if job.ReportPath != "" {
		if err := s.reports.Delete(ctx, filepath.Base(job.ReportPath)); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to delete report artifact", "job_id", id, "error", err)
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", "job_id", id)
	return nil
}

// Report streams the rendered PDF for a completed job.
func (s *system) Report(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	job, _, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != StatusCompleted {
		return nil, ErrNotCompleted
	}
	if job.ReportPath == "" {
		return nil, ErrReportNotFound
	}

	reader, err := s.reports.Download(ctx, filepath.Base(job.ReportPath))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return reader, nil
}

func (s *system) Health(ctx context.Context) (*HealthReport, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &HealthReport{
		Status:       "healthy",
		TotalJobs:    total,
		JobsByStatus: counts,
		ActiveJobs:   counts[StatusPending] + counts[StatusProcessing],
	}, nil
}

func (s *system) cleanupUpload(ctx context.Context, key string) {
	if err := s.uploads.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("failed to delete upload artifact", "key", key, "error", err)
	}
}
