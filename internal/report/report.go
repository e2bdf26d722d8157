// Package report renders extracted document data into PDF summary reports.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jslate/intake/pkg/storage"
)

// Renderer produces the summary report artifact for a completed extraction.
type Renderer interface {
	// Render writes the report PDF and returns the absolute path of the
	// stored artifact.
	Render(ctx context.Context, jobID, documentType string, data json.RawMessage) (string, error)
}

type renderer struct {
	reports storage.System
	logger  *slog.Logger
	now     func() time.Time
}

// New returns a Renderer that stores reports as <job_id>.pdf under the
// reports storage root.
func New(reports storage.System, logger *slog.Logger) Renderer {
	return &renderer{
		reports: reports,
		logger:  logger.With("system", "report"),
		now:     time.Now,
	}
}

func (r *renderer) Render(ctx context.Context, jobID, documentType string, data json.RawMessage) (string, error) {
	blueprint, err := buildBlueprint(documentType, data, r.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	var pdfBuf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(blueprint), &pdfBuf, nil); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	key := jobID + ".pdf"
	path, err := r.reports.Upload(ctx, key, &pdfBuf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	r.logger.Info("rendered report", "job_id", jobID, "document_type", documentType, "path", path)
	return path, nil
}
