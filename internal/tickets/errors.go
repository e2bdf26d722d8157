package tickets

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyMessage         = errors.New("ticket message is required")
	ErrClassificationFailed = errors.New("ticket classification failed")
)

// MapHTTPStatus maps ticket domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyMessage) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrClassificationFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
