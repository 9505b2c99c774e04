// Package matching decides, per job requirement, whether a resume profile satisfies it and
// aggregates the verdicts into a single comparability score.
package matching

import (
	"github.com/jonathan/resume-coach/internal/types"
)

// Kind is the closed set of requirement categories the engine knows how to evaluate.
// Every category string maps to exactly one Kind; unrecognized strings map to KindUnknown.
type Kind int

// Requirement kinds
const (
	KindUnknown Kind = iota
	KindExperience
	KindScale
	KindSkill
	KindCompany
	KindTool

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:    "unknown",
	KindExperience: string(types.CategoryExperience),
	KindScale:      string(types.CategoryScale),
	KindSkill:      string(types.CategorySkill),
	KindCompany:    string(types.CategoryCompany),
	KindTool:       string(types.CategoryTool),
}

// KindOf classifies a category string. Only the exact wire names are recognized;
// any other spelling, including a different case, is KindUnknown.
func KindOf(c types.Category) Kind {
	switch c {
	case types.CategoryExperience:
		return KindExperience
	case types.CategoryScale:
		return KindScale
	case types.CategorySkill:
		return KindSkill
	case types.CategoryCompany:
		return KindCompany
	case types.CategoryTool:
		return KindTool
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}
