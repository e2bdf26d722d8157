package jobs

import (
	"errors"
	"net/http"
)

// Domain errors for job operations.
var (
	ErrNotFound            = errors.New("job not found")
	ErrExists              = errors.New("job already exists")
	ErrStale               = errors.New("job state superseded")
	ErrInvalidDocumentType = errors.New("document_type must be either 'employment_contract' or 'payslip'")
	ErrUnsupportedFile     = errors.New("file type not supported")
	ErrFileTooLarge        = errors.New("file exceeds maximum upload size")
	ErrMissingFile         = errors.New("no file provided")
	ErrNotCompleted        = errors.New("processing not completed")
	ErrReportNotFound      = errors.New("report not found")
	ErrQueueFull           = errors.New("processing queue is full")
)

// MapHTTPStatus maps job domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrReportNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrExists) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidDocumentType) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrNotCompleted) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrQueueFull) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
