package matching

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jonathan/resume-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *types.ResumeProfile {
	return &types.ResumeProfile{
		Skills:          []string{"Technical Recruiting", "Sourcing"},
		Tools:           []string{"Greenhouse", "LinkedIn Recruiter"},
		Domains:         []string{"recruiting"},
		Companies:       []string{"Acme Corp", "Meta"},
		ScaleClaims:     []types.ScaleClaim{{Metric: "hires", Value: 1000, Context: "at Meta"}},
		YearsExperience: 10,
		Seniority:       "senior",
		Titles:          []string{"Senior Recruiter"},
	}
}

func sampleJob() *types.JobRequirements {
	return &types.JobRequirements{
		Company:   "Example",
		RoleTitle: "Recruiting Lead",
		Requirements: []types.Requirement{
			{Text: "5+ years of recruiting", Type: types.MustHave, Category: types.CategoryExperience, MinYears: 5},
			{Text: "Hired 100+ people", Type: types.MustHave, Category: types.CategoryScale, MinScale: &types.MinScale{Metric: "hires", Value: 100}},
			{Text: "Engineering Recruiting", Type: types.MustHave, Category: types.CategorySkill, ExtractedSkill: "Engineering Recruiting"},
			{Text: "Big tech background", Type: types.NiceToHave, Category: types.CategoryCompany},
			{Text: "Experience with Greenhouse", Type: types.NiceToHave, Category: types.CategoryTool},
			{Text: "Speaks Klingon", Type: types.MustHave, Category: "language"},
		},
	}
}

func TestMatch_ScenarioA_Experience(t *testing.T) {
	profile := &types.ResumeProfile{YearsExperience: 10}
	job := &types.JobRequirements{Requirements: []types.Requirement{
		{Text: "5 years", Category: types.CategoryExperience, MinYears: 5},
	}}

	result := New().Match(profile, job)
	require.Len(t, result.Evaluations, 1)
	assert.Equal(t, types.StatusMet, result.Evaluations[0].Status)
	require.NotNil(t, result.Evaluations[0].Evidence)
	assert.Equal(t, "10 years experience", *result.Evaluations[0].Evidence)
}

func TestMatch_ScenarioB_Scale(t *testing.T) {
	profile := &types.ResumeProfile{ScaleClaims: []types.ScaleClaim{{Metric: "hires", Value: 1000, Context: "at Meta"}}}
	job := &types.JobRequirements{Requirements: []types.Requirement{
		{Text: "Hiring at scale", Category: types.CategoryScale, MinScale: &types.MinScale{Metric: "hires", Value: 100}},
	}}

	result := New().Match(profile, job)
	assert.Equal(t, types.StatusMet, result.Evaluations[0].Status)
	assert.Equal(t, "1000+ hires at Meta", result.Evaluations[0].EvidenceText())
}

func TestMatch_ScenarioC_SkillViaDomain(t *testing.T) {
	profile := &types.ResumeProfile{Skills: []string{}, Domains: []string{"recruiting"}}
	job := &types.JobRequirements{Requirements: []types.Requirement{
		{Text: "Engineering Recruiting", Category: types.CategorySkill, ExtractedSkill: "Engineering Recruiting"},
	}}

	result := New().Match(profile, job)
	assert.Equal(t, types.StatusMet, result.Evaluations[0].Status)
	assert.Equal(t, "Has Engineering Recruiting", result.Evaluations[0].EvidenceText())
}

func TestMatch_ScenarioD_CompanyGap(t *testing.T) {
	profile := &types.ResumeProfile{Companies: []string{"Acme Corp"}}
	job := &types.JobRequirements{Requirements: []types.Requirement{
		{Text: "Top company", Category: types.CategoryCompany},
	}}

	result := New().Match(profile, job)
	assert.Equal(t, types.StatusGap, result.Evaluations[0].Status)
	assert.Nil(t, result.Evaluations[0].Evidence)
}

func TestMatch_ScenarioE_Score(t *testing.T) {
	profile := &types.ResumeProfile{YearsExperience: 10, Tools: []string{"Greenhouse"}}
	job := &types.JobRequirements{Requirements: []types.Requirement{
		{Text: "5 years", Category: types.CategoryExperience, MinYears: 5},
		{Text: "Greenhouse", Category: types.CategoryTool},
		{Text: "Hire 500", Category: types.CategoryScale, MinScale: &types.MinScale{Value: 500}},
	}}

	result := New().Match(profile, job)
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, types.MatchSummary{Total: 3, Met: 2, Gap: 1, MustHaveGaps: []string{}}, result.Summary)
}

func TestMatch_FullProfile(t *testing.T) {
	result := New().Match(sampleProfile(), sampleJob())

	statuses := make([]types.Status, 0, len(result.Evaluations))
	for _, e := range result.Evaluations {
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []types.Status{
		types.StatusMet, types.StatusMet, types.StatusMet, types.StatusMet, types.StatusMet, types.StatusGap,
	}, statuses)
	assert.Equal(t, "Experience at Meta", result.Evaluations[3].EvidenceText())
	assert.Equal(t, "Has tool experience", result.Evaluations[4].EvidenceText())
	assert.Equal(t, 83, result.Score)
	assert.Equal(t, []string{"Speaks Klingon"}, result.Summary.MustHaveGaps)
}

func TestMatch_EmptyRequirementsIsNeutral(t *testing.T) {
	m := New()

	for name, job := range map[string]*types.JobRequirements{
		"nil job":          nil,
		"nil requirements": {RoleTitle: "x"},
		"empty":            {Requirements: []types.Requirement{}},
	} {
		t.Run(name, func(t *testing.T) {
			result := m.Match(sampleProfile(), job)
			assert.Equal(t, 50, result.Score)
			assert.NotNil(t, result.Evaluations)
			assert.Empty(t, result.Evaluations)
		})
	}
}

// Totality: every field at its zero value, including a nil profile.
func TestMatch_SparseProfileDegradesToGap(t *testing.T) {
	m := New()
	job := sampleJob()
	// experience with unset min_years is trivially met; everything else gaps
	job.Requirements[0].MinYears = 0

	for name, profile := range map[string]*types.ResumeProfile{
		"nil profile":   nil,
		"empty profile": {},
	} {
		t.Run(name, func(t *testing.T) {
			var result *types.MatchResult
			require.NotPanics(t, func() { result = m.Match(profile, job) })
			require.Len(t, result.Evaluations, len(job.Requirements))

			assert.Equal(t, types.StatusMet, result.Evaluations[0].Status)
			assert.Equal(t, "0 years experience", result.Evaluations[0].EvidenceText())
			for _, e := range result.Evaluations[1:] {
				assert.Equal(t, types.StatusGap, e.Status, e.Requirement.Text)
				assert.Nil(t, e.Evidence)
			}
		})
	}
}

func TestMatch_ZeroValueRequirements(t *testing.T) {
	job := &types.JobRequirements{Requirements: make([]types.Requirement, 3)}
	result := New().Match(sampleProfile(), job)
	assert.Equal(t, 0, result.Score)
	for _, e := range result.Evaluations {
		assert.Equal(t, types.StatusGap, e.Status)
	}
}

func TestMatch_PreservesOrderAndBorrowsRequirements(t *testing.T) {
	job := sampleJob()
	result := New().Match(sampleProfile(), job)

	require.Len(t, result.Evaluations, len(job.Requirements))
	for i := range job.Requirements {
		assert.Same(t, &job.Requirements[i], result.Evaluations[i].Requirement)
	}
}

func TestMatch_EvidencePresentIffNotGap(t *testing.T) {
	result := New().Match(sampleProfile(), sampleJob())
	for _, e := range result.Evaluations {
		if e.Status == types.StatusGap {
			assert.Nil(t, e.Evidence)
		} else {
			assert.NotNil(t, e.Evidence)
		}
	}
}

func TestMatch_ScoreBounds(t *testing.T) {
	m := New()
	profile := sampleProfile()
	job := sampleJob()

	for n := 0; n <= len(job.Requirements); n++ {
		sub := &types.JobRequirements{Requirements: job.Requirements[:n]}
		result := m.Match(profile, sub)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		if n == 0 {
			assert.Equal(t, 50, result.Score)
		}
	}
}

func TestMatch_Monotonicity(t *testing.T) {
	m := New()
	profile := &types.ResumeProfile{YearsExperience: 3}
	metReq := types.Requirement{Text: "2 years", Category: types.CategoryExperience, MinYears: 2}
	gapReq := types.Requirement{Text: "9 years", Category: types.CategoryExperience, MinYears: 9}

	bases := [][]types.Requirement{
		{metReq},
		{gapReq},
		{metReq, gapReq},
		{gapReq, gapReq, metReq},
	}

	for i, base := range bases {
		t.Run(fmt.Sprintf("base %d", i), func(t *testing.T) {
			before := m.Match(profile, &types.JobRequirements{Requirements: base}).Score

			withMet := append(append([]types.Requirement{}, base...), metReq)
			withGap := append(append([]types.Requirement{}, base...), gapReq)

			assert.GreaterOrEqual(t, m.Match(profile, &types.JobRequirements{Requirements: withMet}).Score, before)
			assert.LessOrEqual(t, m.Match(profile, &types.JobRequirements{Requirements: withGap}).Score, before)
		})
	}
}

func TestMatch_CompaniesOnlyAffectCompanyRequirements(t *testing.T) {
	m := New()
	job := sampleJob()

	a := sampleProfile()
	b := sampleProfile()
	b.Companies = []string{"Acme Corp"}

	ra := m.Match(a, job)
	rb := m.Match(b, job)

	for i := range job.Requirements {
		if KindOf(job.Requirements[i].Category) == KindCompany {
			assert.NotEqual(t, ra.Evaluations[i].Status, rb.Evaluations[i].Status)
			continue
		}
		assert.Equal(t, ra.Evaluations[i], rb.Evaluations[i])
	}
}

func TestMatch_WithEmployerTokens(t *testing.T) {
	profile := &types.ResumeProfile{Companies: []string{"Acme Corp"}}
	job := &types.JobRequirements{Requirements: []types.Requirement{{Text: "x", Category: types.CategoryCompany}}}

	assert.Equal(t, types.StatusGap, New().Match(profile, job).Evaluations[0].Status)

	m := New(WithEmployerTokens([]string{"Acme"}))
	assert.Equal(t, types.StatusMet, m.Match(profile, job).Evaluations[0].Status)
	assert.Equal(t, []string{"acme"}, m.Employers().Tokens())

	assert.Equal(t, len(DefaultEmployerTokens), New(WithEmployerTokens(nil)).Employers().Len())
	assert.Equal(t, 0, New(WithEmployerTokens([]string{})).Employers().Len())
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	profile := sampleProfile()
	job := sampleJob()
	wantProfile := sampleProfile()
	wantJob := sampleJob()

	New().Match(profile, job)

	assert.Equal(t, wantProfile, profile)
	assert.Equal(t, wantJob, job)
}

func TestMatch_ConcurrentCallsAgree(t *testing.T) {
	m := New()
	want := m.Match(sampleProfile(), sampleJob())

	var wg sync.WaitGroup
	results := make([]*types.MatchResult, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.Match(sampleProfile(), sampleJob())
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want.Score, r.Score)
		assert.Equal(t, want.Summary, r.Summary)
	}
}

func TestEvaluate_NilRequirement(t *testing.T) {
	eval := New().Evaluate(sampleProfile(), nil)
	assert.Equal(t, types.StatusGap, eval.Status)
	assert.Nil(t, eval.Requirement)
	assert.Nil(t, eval.Evidence)
}

func TestMatchRequest(t *testing.T) {
	m := New()
	req := &types.MatchRequest{Profile: *sampleProfile(), Job: *sampleJob()}
	assert.Equal(t, 83, m.MatchRequest(req).Score)
	assert.Equal(t, 50, m.MatchRequest(nil).Score)
}
