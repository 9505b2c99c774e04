// Package schemas holds the JSON Schema documents for match inputs and outputs.
package schemas

import (
	"embed"
)

// Schema file names
const (
	ResumeProfile   = "resume_profile.schema.json"
	JobRequirements = "job_requirements.schema.json"
	MatchRequest    = "match_request.schema.json"
	MatchResult     = "match_result.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// All lists the schema files in FS
var All = []string{ResumeProfile, JobRequirements, MatchRequest, MatchResult}
