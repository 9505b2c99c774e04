package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-coach/internal/types"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args := buildListQuery(MatchFilters{})

	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $1")
	assert.NotContains(t, query, "position(")
	assert.NotContains(t, query, "score >=")
	assert.Equal(t, []any{DefaultListLimit}, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	query, args := buildListQuery(MatchFilters{Company: "Meta", MinScore: 60, Limit: 10})

	assert.Contains(t, query, "position(lower($1) in lower(company)) > 0")
	assert.Contains(t, query, "score >= $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Equal(t, []any{"Meta", 60, 10}, args)
}

func TestBuildListQuery_CompanyIsLiteral(t *testing.T) {
	for _, company := range []string{"%", "_", "50%_off", `back\slash`} {
		query, args := buildListQuery(MatchFilters{Company: company})

		assert.NotContains(t, query, "LIKE")
		assert.Equal(t, []any{company, DefaultListLimit}, args, "filter is passed through verbatim")
	}
}

func TestBuildListQuery_ScoreOnly(t *testing.T) {
	query, args := buildListQuery(MatchFilters{MinScore: 50})

	assert.Contains(t, query, "score >= $1")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{50, DefaultListLimit}, args)
}

func TestBuildListQuery_ClampsLimit(t *testing.T) {
	_, args := buildListQuery(MatchFilters{Limit: MaxListLimit + 1000})
	assert.Equal(t, []any{MaxListLimit}, args)
}

func TestDecodeRecord_RebindsRequirements(t *testing.T) {
	req := types.MatchRequest{
		Job: types.JobRequirements{
			Company: "Acme",
			Requirements: []types.Requirement{
				{Text: "Go", Category: types.CategoryTool},
				{Text: "5 years", Category: types.CategoryExperience, MinYears: 5},
			},
		},
	}
	evidence := "Go"
	result := types.MatchResult{
		Evaluations: []types.MatchEvaluation{
			{Requirement: &req.Job.Requirements[0], Status: types.StatusMet, Evidence: &evidence},
			{Requirement: &req.Job.Requirements[1], Status: types.StatusGap},
		},
		Score: 50,
	}

	reqJSON, err := json.Marshal(req)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	var rec MatchRecord
	require.NoError(t, decodeRecord(&rec, reqJSON, resultJSON))

	require.NotNil(t, rec.Request)
	require.NotNil(t, rec.Result)
	assert.Equal(t, 50, rec.Result.Score)
	assert.Same(t, &rec.Request.Job.Requirements[0], rec.Result.Evaluations[0].Requirement)
	assert.Same(t, &rec.Request.Job.Requirements[1], rec.Result.Evaluations[1].Requirement)
	assert.Nil(t, rec.Result.Evaluations[1].Evidence)
}

func TestDecodeRecord_InvalidJSON(t *testing.T) {
	var rec MatchRecord
	err := decodeRecord(&rec, []byte("{"), []byte("{}"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stored request")

	err = decodeRecord(&rec, []byte("{}"), []byte("not json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "stored result")
}
