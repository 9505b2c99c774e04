package matching

import (
	"github.com/jonathan/resume-coach/internal/types"
)

// Matcher evaluates job requirements against resume profiles.
// A Matcher holds no mutable state and is safe for concurrent use.
type Matcher struct {
	employers EmployerTokens
	rules     [kindCount]ruleFunc
}

// Option configures a Matcher
type Option func(*Matcher)

// WithEmployerTokens replaces the elite-employer table used by the company rule.
// A nil slice keeps the default table; an empty one disables company matches.
func WithEmployerTokens(tokens []string) Option {
	return func(m *Matcher) {
		if tokens != nil {
			m.employers = NewEmployerTokens(tokens)
		}
	}
}

// New creates a Matcher with the default employer table unless overridden
func New(opts ...Option) *Matcher {
	m := &Matcher{
		employers: NewEmployerTokens(DefaultEmployerTokens),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.rules = [kindCount]ruleFunc{
		KindUnknown:    unknownRule,
		KindExperience: experienceRule,
		KindScale:      scaleRule,
		KindSkill:      skillRule,
		KindCompany:    companyRule(m.employers),
		KindTool:       toolRule,
	}
	return m
}

// Employers returns the employer table the company rule uses
func (m *Matcher) Employers() EmployerTokens {
	return m.employers
}

// Evaluate returns the verdict for a single requirement
func (m *Matcher) Evaluate(profile *types.ResumeProfile, req *types.Requirement) types.MatchEvaluation {
	if profile == nil {
		profile = &types.ResumeProfile{}
	}
	eval := types.MatchEvaluation{Requirement: req, Status: types.StatusGap}
	if req == nil {
		return eval
	}

	v := m.rules[KindOf(req.Category)](profile, req)
	eval.Status = v.status
	if v.status != types.StatusGap && v.evidence != "" {
		evidence := v.evidence
		eval.Evidence = &evidence
	}
	return eval
}

// Match evaluates every requirement of job against profile, in order, and scores the result.
// Nil arguments are treated as empty values; Match never fails.
func (m *Matcher) Match(profile *types.ResumeProfile, job *types.JobRequirements) *types.MatchResult {
	if profile == nil {
		profile = &types.ResumeProfile{}
	}
	var reqs []types.Requirement
	if job != nil {
		reqs = job.Requirements
	}

	evals := make([]types.MatchEvaluation, len(reqs))
	for i := range reqs {
		evals[i] = m.Evaluate(profile, &reqs[i])
	}

	summary := summarize(evals)
	return &types.MatchResult{
		Evaluations: evals,
		Score:       Score(summary.Met, summary.Partial, summary.Total),
		Summary:     summary,
	}
}

// MatchRequest is a convenience wrapper around Match for a paired request
func (m *Matcher) MatchRequest(req *types.MatchRequest) *types.MatchResult {
	if req == nil {
		return m.Match(nil, nil)
	}
	return m.Match(&req.Profile, &req.Job)
}
