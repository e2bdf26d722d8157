// Package api assembles the service modules: the job intake surface
// mounted at the API root and the ticket classifier under /tickets.
package api

import (
	"net/http"

	"github.com/jslate/intake/internal/config"
	"github.com/jslate/intake/internal/infrastructure"
	"github.com/jslate/intake/pkg/middleware"
	"github.com/jslate/intake/pkg/module"
)

// NewModule creates the job intake module with all domain handlers and
// middleware, returning the module and the domain for lifecycle wiring.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, *Domain, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime.Logger)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recovery(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, domain, nil
}

// NewTicketsModule creates the ticket classification module mounted at
// /tickets.
func NewTicketsModule(cfg *config.Config, infra *infrastructure.Infrastructure, domain *Domain) *module.Module {
	logger := infra.Logger.With("module", "tickets")

	mux := http.NewServeMux()
	registerTicketRoutes(mux, domain, logger)

	m := module.New("/tickets", mux)
	m.Use(middleware.Recovery(logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(logger))

	return m
}
