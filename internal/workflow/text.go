package workflow

import (
	"context"
	"fmt"

	"github.com/jslate/intake/internal/extract"
	"github.com/jslate/intake/internal/jobs"
)

type textStep struct {
	extractor extract.TextExtractor
}

// NewTextStep pulls plain text from the uploaded document.
func NewTextStep(extractor extract.TextExtractor) Step {
	return &textStep{extractor: extractor}
}

func (s *textStep) Name() string {
	return StepExtractText
}

func (s *textStep) Run(ctx context.Context, job *jobs.Job) error {
	result, err := s.extractor.Extract(ctx, job.FilePath)
	if err != nil {
		return fmt.Errorf("text extraction failed: %v", err)
	}

	job.ExtractedText = result.Text
	job.Metadata["text_extraction"] = map[string]any{
		"pages":  result.Pages,
		"method": result.Method,
		"chars":  len(result.Text),
	}
	return nil
}
