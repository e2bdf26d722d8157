package workflow

import (
	"context"

	"github.com/jslate/intake/internal/jobs"
)

// Pipeline step names, in execution order. They surface to clients as the
// job's current node.
const (
	StepValidate    = "validate_document"
	StepExtractText = "extract_text"
	StepExtractData = "extract_structured_data"
	StepRender      = "render_report"
)

// Step is one stage of the processing pipeline. Run mutates the job in
// place; a returned error routes the job through failure handling.
type Step interface {
	Name() string
	Run(ctx context.Context, job *jobs.Job) error
}
