package types

import (
	"github.com/go-playground/validator/v10"
)

// Status is the verdict for a single requirement
type Status string

// Evaluation statuses. No rule currently emits StatusPartial.
const (
	StatusMet     Status = "met"
	StatusPartial Status = "partial"
	StatusGap     Status = "gap"
)

// MatchRequest pairs a resume profile with the job it is matched against
type MatchRequest struct {
	Profile ResumeProfile   `json:"profile"`
	Job     JobRequirements `json:"job"`
}

// Validate validates both halves of the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MatchEvaluation is the verdict for one requirement.
// Requirement points into the caller's JobRequirements; it is not a copy.
type MatchEvaluation struct {
	Requirement *Requirement `json:"requirement"`
	Status      Status       `json:"status"`
	Evidence    *string      `json:"evidence"`
}

// MatchSummary counts evaluations per status
type MatchSummary struct {
	Total        int      `json:"total"`
	Met          int      `json:"met"`
	Partial      int      `json:"partial"`
	Gap          int      `json:"gap"`
	MustHaveGaps []string `json:"must_have_gaps"`
}

// MatchResult is the engine output: one evaluation per requirement, in input order, and a 0-100 score
type MatchResult struct {
	Evaluations []MatchEvaluation `json:"evaluations"`
	Score       int               `json:"score"`
	Summary     MatchSummary      `json:"summary"`
}

// EvidenceText returns the evidence string, or "" when there is none
func (e *MatchEvaluation) EvidenceText() string {
	if e.Evidence == nil {
		return ""
	}
	return *e.Evidence
}
