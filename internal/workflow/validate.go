package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jslate/intake/internal/extract"
	"github.com/jslate/intake/internal/jobs"
	"github.com/jslate/intake/internal/schemas"
)

type validateStep struct{}

// NewValidateStep checks that the job references a supported, readable
// document before any expensive work begins.
func NewValidateStep() Step {
	return &validateStep{}
}

func (s *validateStep) Name() string {
	return StepValidate
}

func (s *validateStep) Run(_ context.Context, job *jobs.Job) error {
	if !jobs.ValidDocumentType(job.DocumentType, schemas.SupportedTypes()) {
		return fmt.Errorf("unsupported document type: %q", job.DocumentType)
	}

	info, err := os.Stat(job.FilePath)
	if err != nil {
		return fmt.Errorf("document not found: %s", job.FilePath)
	}
	if info.Size() == 0 {
		return fmt.Errorf("document is empty: %s", job.FilePath)
	}
	if !extract.Supported(job.FilePath) {
		return fmt.Errorf("unsupported file format: %s", filepath.Ext(job.FilePath))
	}

	validation := map[string]any{
		"file_exists":      true,
		"format_supported": true,
		"size_bytes":       info.Size(),
	}

	// Corrupt PDFs fail here rather than mid-pipeline.
	if strings.EqualFold(filepath.Ext(job.FilePath), ".pdf") {
		count, err := api.PageCountFile(job.FilePath)
		if err != nil {
			return fmt.Errorf("unreadable pdf: %v", err)
		}
		validation["page_count"] = count
	}

	job.Metadata["validation"] = validation
	return nil
}
