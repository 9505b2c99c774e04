package matching

import (
	"strings"

	"github.com/jonathan/resume-coach/internal/types"
)

// verdict is what a rule returns for a single requirement
type verdict struct {
	status   types.Status
	evidence string
}

func met(evidence string) verdict {
	return verdict{status: types.StatusMet, evidence: evidence}
}

var gap = verdict{status: types.StatusGap}

// ruleFunc evaluates one requirement against a profile. Rules are pure and never fail.
type ruleFunc func(profile *types.ResumeProfile, req *types.Requirement) verdict

// experienceRule is met when the candidate has at least MinYears of experience.
func experienceRule(profile *types.ResumeProfile, req *types.Requirement) verdict {
	if profile.YearsExperience >= req.MinYears {
		return met(experienceEvidence(profile.YearsExperience))
	}
	return gap
}

// scaleRule picks the first scale claim, in profile order, that reaches the threshold.
// The metric name is not compared.
func scaleRule(profile *types.ResumeProfile, req *types.Requirement) verdict {
	threshold := 0.0
	if req.MinScale != nil {
		threshold = req.MinScale.Value
	}
	for _, claim := range profile.ScaleClaims {
		if claim.Value >= threshold {
			return met(scaleEvidence(claim.Value, claim.Metric, claim.Context))
		}
	}
	return gap
}

// skillRule is a loose two-way substring test against skills, then domains.
func skillRule(profile *types.ResumeProfile, req *types.Requirement) verdict {
	want := strings.ToLower(strings.TrimSpace(req.ExtractedSkill))
	if want == "" {
		return gap
	}
	for _, entries := range [][]string{profile.Skills, profile.Domains} {
		for _, entry := range entries {
			have := strings.ToLower(strings.TrimSpace(entry))
			if have == "" {
				continue
			}
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return met(skillEvidence(req.ExtractedSkill))
			}
		}
	}
	return gap
}

// companyRule returns a rule bound to an employer table. It never reads the requirement text.
func companyRule(employers EmployerTokens) ruleFunc {
	return func(profile *types.ResumeProfile, _ *types.Requirement) verdict {
		for _, company := range profile.Companies {
			if employers.Match(company) {
				return met(companyEvidence(company))
			}
		}
		return gap
	}
}

// toolRule is met when any listed tool is mentioned in the requirement text.
func toolRule(profile *types.ResumeProfile, req *types.Requirement) verdict {
	text := strings.ToLower(req.Text)
	for _, tool := range profile.Tools {
		tool = strings.ToLower(strings.TrimSpace(tool))
		if tool != "" && strings.Contains(text, tool) {
			return met(toolEvidence)
		}
	}
	return gap
}

func unknownRule(_ *types.ResumeProfile, _ *types.Requirement) verdict {
	return gap
}
