package types

import (
	"github.com/go-playground/validator/v10"
)

// Category is the wire name of a requirement category.
// Values outside the known set are legal and are evaluated as unmatched.
type Category string

// Known requirement categories
const (
	CategoryExperience Category = "experience"
	CategoryScale      Category = "scale"
	CategorySkill      Category = "skill"
	CategoryCompany    Category = "company"
	CategoryTool       Category = "tool"
)

// RequirementType distinguishes hard requirements from preferences.
// Values other than MustHave are accepted and treated as preferences.
type RequirementType string

// Requirement types
const (
	MustHave   RequirementType = "must_have"
	NiceToHave RequirementType = "nice_to_have"
)

// JobRequirements represents the structured needs extracted from a job description
type JobRequirements struct {
	Company      string        `json:"company,omitempty"`
	RoleTitle    string        `json:"role_title,omitempty"`
	Seniority    string        `json:"seniority,omitempty"`
	Requirements []Requirement `json:"requirements" validate:"dive"`
}

// Requirement is one categorized need from a job description.
// MinYears, MinScale and ExtractedSkill are only read by their own category.
type Requirement struct {
	Text           string          `json:"text"`
	Type           RequirementType `json:"type,omitempty"`
	Category       Category        `json:"category"`
	MinYears       float64         `json:"min_years,omitempty" validate:"gte=0"`
	MinScale       *MinScale       `json:"min_scale,omitempty"`
	ExtractedSkill string          `json:"extracted_skill,omitempty"`
}

// MinScale is the threshold a scale claim has to reach
type MinScale struct {
	Metric string  `json:"metric,omitempty"`
	Value  float64 `json:"value" validate:"gte=0"`
}

// IsMustHave reports whether the requirement is a hard requirement
func (r *Requirement) IsMustHave() bool {
	return r.Type == MustHave
}

// Validate validates the JobRequirements using the validator.
func (j *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
