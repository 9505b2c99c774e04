package matching

import (
	"fmt"
)

// InvalidInputError indicates a structurally invalid match input.
// It is raised before any requirement is evaluated.
type InvalidInputError struct {
	Stage string
	Cause error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid match input (%s): %v", e.Stage, e.Cause)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// Decode stages
const (
	StageSchema     = "schema"
	StageDecode     = "decode"
	StageValidation = "validation"
)
