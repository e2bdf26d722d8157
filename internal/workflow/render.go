package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jslate/intake/internal/jobs"
	"github.com/jslate/intake/internal/report"
)

type renderStep struct {
	renderer report.Renderer
}

// NewRenderStep produces the summary PDF for the extracted record.
func NewRenderStep(renderer report.Renderer) Step {
	return &renderStep{renderer: renderer}
}

func (s *renderStep) Name() string {
	return StepRender
}

func (s *renderStep) Run(ctx context.Context, job *jobs.Job) error {
	if len(job.StructuredData) == 0 {
		return errors.New("no structured data available for report generation")
	}

	path, err := s.renderer.Render(ctx, job.ID.String(), job.DocumentType, job.StructuredData)
	if err != nil {
		return fmt.Errorf("report generation failed: %v", err)
	}

	job.ReportPath = path
	job.Metadata["report"] = map[string]any{
		"generated": true,
		"path":      path,
	}
	return nil
}
