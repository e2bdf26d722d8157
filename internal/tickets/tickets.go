// Package tickets classifies customer support messages into a fixed
// category set using the shared chat completions client.
package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jslate/intake/internal/extraction"
	"github.com/jslate/intake/pkg/formatting"
)

// Category is a support ticket classification label.
type Category string

const (
	CategoryShippingTracking      Category = "Shipping & Tracking"
	CategoryOrderIssue            Category = "Order Issue (Missing, Damaged, Wrong Item)"
	CategoryProductQuestionOnline Category = "Product Question - Bought Online"
	CategoryProductQuestionStore  Category = "Product Question - Bought In Store"
	CategoryWholesaleInquiry      Category = "Wholesale Inquiry"
	CategoryCollabSponsorship     Category = "Collab or Sponsorship"
	CategoryWebsiteTechIssue      Category = "Website or Tech Issue"
	CategorySomethingElse         Category = "Something Else"
)

// Categories lists all classification labels.
func Categories() []Category {
	return []Category{
		CategoryShippingTracking,
		CategoryOrderIssue,
		CategoryProductQuestionOnline,
		CategoryProductQuestionStore,
		CategoryWholesaleInquiry,
		CategoryCollabSponsorship,
		CategoryWebsiteTechIssue,
		CategorySomethingElse,
	}
}

// Classification is the result of classifying a single ticket.
type Classification struct {
	Category   Category      `json:"category"`
	Elapsed    time.Duration `json:"-"`
	ElapsedSec float64       `json:"processing_seconds"`
}

// Classifier assigns a category to a support ticket message.
type Classifier interface {
	Classify(ctx context.Context, message string) (*Classification, error)
}

type classifier struct {
	client      extraction.ChatClient
	temperature float64
	logger      *slog.Logger
}

// NewClassifier returns a Classifier backed by client.
func NewClassifier(client extraction.ChatClient, temperature float64, logger *slog.Logger) Classifier {
	return &classifier{
		client:      client,
		temperature: temperature,
		logger:      logger.With("system", "tickets"),
	}
}

func (c *classifier) Classify(ctx context.Context, message string) (*Classification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	start := time.Now()
	result, err := c.client.Complete(ctx, extraction.ChatRequest{
		System:      classificationPrompt(),
		User:        fmt.Sprintf("Classify this customer support ticket:\n\n%s", message),
		Temperature: c.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationFailed, err)
	}

	parsed, err := formatting.Parse[struct {
		Category string `json:"category"`
	}](result.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: model output is not valid JSON", ErrClassificationFailed)
	}

	category, ok := matchCategory(parsed.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrClassificationFailed, parsed.Category)
	}

	elapsed := time.Since(start)
	c.logger.Info("ticket classified", "category", category, "elapsed", elapsed)

	return &Classification{
		Category:   category,
		Elapsed:    elapsed,
		ElapsedSec: elapsed.Seconds(),
	}, nil
}

func classificationPrompt() string {
	labels := make([]string, 0, len(Categories()))
	for _, category := range Categories() {
		labels = append(labels, `- "`+string(category)+`"`)
	}
	return "Classify this customer support ticket into the most appropriate category.\n" +
		"Respond with a JSON object of the form {\"category\": \"<label>\"} where <label> is exactly one of:\n" +
		strings.Join(labels, "\n")
}

// matchCategory resolves a model-produced label to a known category,
// tolerating case differences.
func matchCategory(label string) (Category, bool) {
	trimmed := strings.TrimSpace(label)
	for _, category := range Categories() {
		if strings.EqualFold(trimmed, string(category)) {
			return category, true
		}
	}
	return "", false
}
