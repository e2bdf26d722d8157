package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jslate/intake/internal/extraction"
	"github.com/jslate/intake/internal/jobs"
)

type dataStep struct {
	extractor extraction.Extractor
}

// NewDataStep turns extracted text into a schema-conforming structured
// record.
func NewDataStep(extractor extraction.Extractor) Step {
	return &dataStep{extractor: extractor}
}

func (s *dataStep) Name() string {
	return StepExtractData
}

func (s *dataStep) Run(ctx context.Context, job *jobs.Job) error {
	if job.ExtractedText == "" {
		return errors.New("no extracted text available")
	}

	data, err := s.extractor.Extract(ctx, job.DocumentType, job.ExtractedText)
	if err != nil {
		kind := "extraction_error"
		if errors.Is(err, extraction.ErrValidation) {
			kind = "validation_error"
		}
		return fmt.Errorf("data extraction failed (%s): %v", kind, err)
	}

	job.StructuredData = data
	job.Metadata["extraction"] = map[string]any{
		"extraction_successful": true,
		"document_type":         job.DocumentType,
	}
	return nil
}
