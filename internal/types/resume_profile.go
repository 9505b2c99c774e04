// Package types provides type definitions for structured data used throughout the resume-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Growth directions for a GrowthClaim
const (
	DirectionIncrease = "increase"
	DirectionDecrease = "decrease"
)

// ResumeProfile represents the structured claims extracted from a resume.
// Every field is optional; absent collections and numbers behave as their zero value.
type ResumeProfile struct {
	Skills          []string      `json:"skills,omitempty"`
	Tools           []string      `json:"tools,omitempty"`
	Domains         []string      `json:"domains,omitempty"`
	Companies       []string      `json:"companies,omitempty"`
	ScaleClaims     []ScaleClaim  `json:"scale_claims,omitempty" validate:"dive"`
	GrowthClaims    []GrowthClaim `json:"growth_claims,omitempty" validate:"dive"`
	YearsExperience float64       `json:"years_experience" validate:"gte=0"`
	Seniority       string        `json:"seniority,omitempty"`
	Titles          []string      `json:"titles,omitempty"`
	Industries      []string      `json:"industries,omitempty"`
}

// ScaleClaim is a quantified impact statement, e.g. "hired 1000 engineers at Meta".
type ScaleClaim struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value" validate:"gte=0"`
	Context string  `json:"context,omitempty"`
}

// GrowthClaim is a relative change statement, e.g. "grew retention 30%".
type GrowthClaim struct {
	Metric     string  `json:"metric"`
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction" validate:"omitempty,oneof=increase decrease"`
}

// Validate validates the ResumeProfile using the validator.
func (p *ResumeProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
