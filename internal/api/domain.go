package api

import (
	"github.com/jslate/intake/internal/events"
	"github.com/jslate/intake/internal/extract"
	"github.com/jslate/intake/internal/extraction"
	"github.com/jslate/intake/internal/jobs"
	"github.com/jslate/intake/internal/report"
	"github.com/jslate/intake/internal/tickets"
	"github.com/jslate/intake/internal/workflow"
	"github.com/jslate/intake/pkg/lifecycle"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Jobs       jobs.System
	Events     *events.Hub
	Classifier tickets.Classifier

	pool *workflow.Pool
}

// NewDomain wires the processing pipeline: one shared chat client feeds
// both the structured extractor and the ticket classifier; the queue
// connects job submission to the worker pool.
func NewDomain(runtime *Runtime) *Domain {
	cfg := runtime.Config
	logger := runtime.Logger

	hub := events.NewHub(logger)

	chatClient := extraction.NewClient(extraction.ClientConfig{
		BaseURL:           cfg.Extractor.BaseURL,
		APIKey:            cfg.Extractor.APIKey,
		Model:             cfg.Extractor.Model,
		Timeout:           cfg.Extractor.TimeoutDuration(),
		RequestsPerMinute: cfg.Extractor.RateLimit,
	})

	queue := workflow.NewQueue(cfg.Processing.QueueSize)
	store := jobs.NewStore()

	jobsSystem := jobs.NewSystem(
		store,
		runtime.Uploads,
		runtime.Reports,
		queue,
		hub,
		logger,
	)

	steps := []workflow.Step{
		workflow.NewValidateStep(),
		workflow.NewTextStep(extract.New(&extract.TesseractOCR{}, logger)),
		workflow.NewDataStep(extraction.NewExtractor(chatClient, cfg.Extractor.Temperature, logger)),
		workflow.NewRenderStep(report.New(runtime.Reports, logger)),
	}

	engine := workflow.NewEngine(store, steps, queue, hub, cfg.Processing.MaxRetries, logger)
	pool := workflow.NewPool(cfg.Processing.Workers, queue, engine, logger)

	return &Domain{
		Jobs:       jobsSystem,
		Events:     hub,
		Classifier: tickets.NewClassifier(chatClient, cfg.Extractor.Temperature, logger),
		pool:       pool,
	}
}

// Start launches the event hub and worker pool under the lifecycle
// coordinator.
func (d *Domain) Start(lc *lifecycle.Coordinator) error {
	if err := d.Events.Start(lc); err != nil {
		return err
	}
	return d.pool.Start(lc)
}
