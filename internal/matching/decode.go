package matching

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-coach/internal/schemas"
	"github.com/jonathan/resume-coach/internal/types"
	definitions "github.com/jonathan/resume-coach/schemas"
)

// Decode parses and structurally validates a MatchRequest document.
// Both halves are checked against their schemas before unmarshalling, so a
// malformed request fails as a whole before any requirement is evaluated.
func Decode(data []byte) (*types.MatchRequest, error) {
	if err := schemas.ValidateDocument(definitions.MatchRequest, data); err != nil {
		return nil, &InvalidInputError{Stage: StageSchema, Cause: err}
	}

	var envelope struct {
		Profile json.RawMessage `json:"profile"`
		Job     json.RawMessage `json:"job"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: err}
	}

	profile, err := DecodeProfile(envelope.Profile)
	if err != nil {
		return nil, err
	}
	job, err := DecodeJob(envelope.Job)
	if err != nil {
		return nil, err
	}

	return &types.MatchRequest{Profile: *profile, Job: *job}, nil
}

// DecodeProfile parses and validates a ResumeProfile document
func DecodeProfile(data []byte) (*types.ResumeProfile, error) {
	if err := schemas.ValidateDocument(definitions.ResumeProfile, data); err != nil {
		return nil, &InvalidInputError{Stage: StageSchema, Cause: err}
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: fmt.Errorf("resume profile: %w", err)}
	}
	if err := profile.Validate(); err != nil {
		return nil, &InvalidInputError{Stage: StageValidation, Cause: err}
	}
	return &profile, nil
}

// DecodeJob parses and validates a JobRequirements document
func DecodeJob(data []byte) (*types.JobRequirements, error) {
	if err := schemas.ValidateDocument(definitions.JobRequirements, data); err != nil {
		return nil, &InvalidInputError{Stage: StageSchema, Cause: err}
	}

	var job types.JobRequirements
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: fmt.Errorf("job requirements: %w", err)}
	}
	if err := job.Validate(); err != nil {
		return nil, &InvalidInputError{Stage: StageValidation, Cause: err}
	}
	return &job, nil
}

// DecodeBatch parses a JSON array of MatchRequest documents. Arrays longer than
// maxItems are rejected before any element is validated; maxItems <= 0 means no
// limit. The first invalid element fails the whole batch and is identified by its index.
func DecodeBatch(data []byte, maxItems int) ([]*types.MatchRequest, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: fmt.Errorf("batch must be a JSON array: %w", err)}
	}
	if raw == nil {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: fmt.Errorf("batch must be a JSON array, got null")}
	}
	if maxItems > 0 && len(raw) > maxItems {
		return nil, &InvalidInputError{Stage: StageDecode, Cause: fmt.Errorf("batch exceeds %d requests", maxItems)}
	}

	reqs := make([]*types.MatchRequest, 0, len(raw))
	for i, item := range raw {
		req, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
