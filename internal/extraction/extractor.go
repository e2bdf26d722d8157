// Package extraction turns raw document text into schema-conforming
// structured records using an OpenAI-compatible chat completions endpoint.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jslate/intake/internal/schemas"
	"github.com/jslate/intake/pkg/formatting"
)

// Extractor performs structured extraction for a supported document type.
type Extractor interface {
	Extract(ctx context.Context, documentType, text string) (json.RawMessage, error)
}

type extractor struct {
	client      ChatClient
	temperature float64
	logger      *slog.Logger
}

// NewExtractor returns an Extractor backed by client. Model output is
// parsed tolerantly and then validated against the document type's schema
// before being accepted.
func NewExtractor(client ChatClient, temperature float64, logger *slog.Logger) Extractor {
	return &extractor{
		client:      client,
		temperature: temperature,
		logger:      logger.With("system", "extraction"),
	}
}

func (e *extractor) Extract(ctx context.Context, documentType, text string) (json.RawMessage, error) {
	system, err := systemPrompt(documentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	result, err := e.client.Complete(ctx, ChatRequest{
		System:      system,
		User:        fmt.Sprintf("Extract structured data from the following %s:\n\n%s", documentType, text),
		Temperature: e.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	parsed, err := formatting.Parse[map[string]any](result.Content)
	if err != nil {
		e.logger.Error("model output is not valid JSON",
			"document_type", documentType,
			"error", err)
		return nil, fmt.Errorf("%w: model output is not valid JSON", ErrExtraction)
	}

	document, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	violations, err := schemas.Validate(documentType, document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if len(violations) > 0 {
		e.logger.Error("model output rejected by schema",
			"document_type", documentType,
			"violations", len(violations))
		return nil, &ValidationError{DocumentType: documentType, Violations: violations}
	}

	e.logger.Info("structured extraction complete",
		"document_type", documentType,
		"model", result.Model,
		"output_tokens", result.OutputTokens)

	return document, nil
}
