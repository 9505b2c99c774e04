package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-coach/internal/matching"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &matching.InvalidInputError{Stage: matching.StageSchema, Cause: errors.New("bad")}, http.StatusBadRequest},
		{"wrapped invalid input", fmt.Errorf("batch item 3: %w", &matching.InvalidInputError{Stage: matching.StageDecode, Cause: errors.New("bad")}), http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "limit", Message: "must be a positive integer"}, http.StatusBadRequest},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"not found", &ErrMatchNotFound{ID: uuid.New()}, http.StatusNotFound},
		{"no database", &ErrStoreUnavailable{}, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	id := uuid.MustParse("8c9d7a52-6c5f-4f0e-9f7e-0d6a3c1b2a11")

	assert.Equal(t, "validation error: min_score - must be between 0 and 100", (&ErrValidation{Field: "min_score", Message: "must be between 0 and 100"}).Error())
	assert.Equal(t, "match not found: 8c9d7a52-6c5f-4f0e-9f7e-0d6a3c1b2a11", (&ErrMatchNotFound{ID: id}).Error())
	assert.Contains(t, (&ErrStoreUnavailable{}).Error(), "no database")
}
