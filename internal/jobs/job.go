// Package jobs defines the processing job domain: the job record, the
// in-memory store, and the HTTP surface for submitting and tracking
// document processing work.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a processing job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Statuses lists all job statuses in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is a single document processing request and its accumulated state.
// StructuredData is nil until extraction succeeds; ReportPath is empty
// until rendering succeeds.
type Job struct {
	ID             uuid.UUID       `json:"id"`
	DocumentType   string          `json:"document_type"`
	FilePath       string          `json:"file_path"`
	Status         Status          `json:"status"`
	CurrentStep    string          `json:"current_step"`
	ExtractedText  string          `json:"-"`
	StructuredData json.RawMessage `json:"structured_data,omitempty"`
	ReportPath     string          `json:"report_path,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	RetryCount     int             `json:"retry_count"`
	Metadata       map[string]any  `json:"metadata"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so store snapshots cannot be mutated by
// callers holding the returned pointer.
func (j *Job) Clone() *Job {
	copied := *j
	if j.StructuredData != nil {
		copied.StructuredData = make(json.RawMessage, len(j.StructuredData))
		copy(copied.StructuredData, j.StructuredData)
	}
	if j.Metadata != nil {
		copied.Metadata = make(map[string]any, len(j.Metadata))
		for k, v := range j.Metadata {
			copied.Metadata[k] = v
		}
	}
	return &copied
}

// SetStatus updates the status and, when step is non-empty, the current
// step marker.
func (j *Job) SetStatus(status Status, step string) {
	j.Status = status
	if step != "" {
		j.CurrentStep = step
	}
	j.UpdatedAt = time.Now().UTC()
}

// ValidDocumentType reports whether t names a supported document type.
func ValidDocumentType(t string, supported []string) bool {
	for _, s := range supported {
		if s == t {
			return true
		}
	}
	return false
}
