package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-coach/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMatchNotFound indicates no stored match has the given ID
type ErrMatchNotFound struct {
	ID uuid.UUID
}

func (e *ErrMatchNotFound) Error() string {
	return fmt.Sprintf("match not found: %s", e.ID)
}

// ErrStoreUnavailable indicates the server runs without a database
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "match history is unavailable: no database configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalid     *matching.InvalidInputError
		validation  *ErrValidation
		notFound    *ErrMatchNotFound
		unavailable *ErrStoreUnavailable
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
