package extraction

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelUnavailable marks transport failures and retryable endpoint
	// statuses (429, 5xx).
	ErrModelUnavailable = errors.New("model endpoint unavailable")

	// ErrExtraction marks failures producing parseable model output.
	ErrExtraction = errors.New("extraction failed")

	// ErrValidation marks model output that parsed but violated the
	// document schema.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries the per-field schema violations for a rejected
// extraction. It unwraps to ErrValidation.
type ValidationError struct {
	DocumentType string
	Violations   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s extraction rejected by schema: %s",
		e.DocumentType, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
