package api

import (
	"log/slog"
	"net/http"

	"github.com/jslate/intake/internal/config"
	"github.com/jslate/intake/internal/events"
	"github.com/jslate/intake/internal/tickets"
	"github.com/jslate/intake/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config, logger *slog.Logger) {
	jobsHandler := domain.Jobs.Handler()
	jobsHandler.SetMaxUploadSize(cfg.API.MaxUploadSizeBytes())

	routes.Register(
		mux,
		jobsHandler.Routes(),
		events.NewHandler(domain.Events, logger).Routes(),
	)
}

func registerTicketRoutes(mux *http.ServeMux, domain *Domain, logger *slog.Logger) {
	routes.Register(
		mux,
		tickets.NewHandler(domain.Classifier, logger).Routes(),
	)
}
