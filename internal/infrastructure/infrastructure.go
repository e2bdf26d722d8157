// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (lifecycle, logging, artifact storage) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jslate/intake/internal/config"
	"github.com/jslate/intake/pkg/lifecycle"
	"github.com/jslate/intake/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Uploads and Reports are the two artifact roots: source documents named by
// job id, and rendered reports named by job id.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Uploads   storage.System
	Reports   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	uploads, err := storage.New(&cfg.Storage.Uploads, logger)
	if err != nil {
		return nil, fmt.Errorf("uploads storage init failed: %w", err)
	}

	reports, err := storage.New(&cfg.Storage.Reports, logger)
	if err != nil {
		return nil, fmt.Errorf("reports storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Uploads:   uploads,
		Reports:   reports,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Uploads.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("uploads storage start failed: %w", err)
	}
	if err := i.Reports.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("reports storage start failed: %w", err)
	}
	return nil
}
