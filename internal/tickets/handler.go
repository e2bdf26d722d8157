package tickets

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jslate/intake/pkg/handlers"
	"github.com/jslate/intake/pkg/routes"
)

// Handler provides HTTP endpoints for ticket classification.
type Handler struct {
	classifier Classifier
	logger     *slog.Logger
}

// ClassifyRequest is the body for the classify endpoint.
type ClassifyRequest struct {
	Message string `json:"message"`
}

// ClassifyResponse is the classification outcome.
type ClassifyResponse struct {
	Category          Category `json:"category"`
	ProcessingSeconds float64  `json:"processing_seconds"`
}

// NewHandler creates a Handler for the given classifier.
func NewHandler(classifier Classifier, logger *slog.Logger) *Handler {
	return &Handler{
		classifier: classifier,
		logger:     logger.With("handler", "tickets"),
	}
}

// Routes returns the route group definition for ticket endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "GET", Pattern: "/categories", Handler: h.Categories},
		},
	}
}

// Classify assigns a category to the submitted ticket message.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyMessage)
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.Message)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ClassifyResponse{
		Category:          result.Category,
		ProcessingSeconds: result.ElapsedSec,
	})
}

// Categories lists the available classification labels.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"categories": Categories(),
	})
}
