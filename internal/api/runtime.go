package api

import (
	"github.com/jslate/intake/internal/config"
	"github.com/jslate/intake/internal/infrastructure"
)

// Runtime extends Infrastructure with API-scoped configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Config *config.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Uploads:   infra.Uploads,
			Reports:   infra.Reports,
		},
		Config: cfg,
	}
}
