package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/resume-coach/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintJobRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobRequirements{
		Company:   "Acme Corp",
		RoleTitle: "Recruiting Lead",
		Requirements: []types.Requirement{
			{Text: "5+ years", Type: types.MustHave, Category: types.CategoryExperience},
			{Text: "Greenhouse", Type: types.NiceToHave, Category: types.CategoryTool},
			{Text: "Untyped"},
		},
	}

	p.PrintJobRequirements(job)
	output := buf.String()

	assert.Contains(t, output, "JOB REQUIREMENTS")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Must-haves:")
	assert.Contains(t, output, "[experience] 5+ years")
	assert.Contains(t, output, "[tool] Greenhouse")
	assert.Contains(t, output, "[?] Untyped")
}

func TestPrintJobRequirements_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobRequirements(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	evidence := "10 years experience"
	met := types.Requirement{Text: "5 years"}
	gap := types.Requirement{Text: "Speaks Klingon"}
	result := &types.MatchResult{
		Evaluations: []types.MatchEvaluation{
			{Requirement: &met, Status: types.StatusMet, Evidence: &evidence},
			{Requirement: &gap, Status: types.StatusGap},
		},
		Score:   50,
		Summary: types.MatchSummary{Total: 2, Met: 1, Gap: 1},
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "Score: 50/100")
	assert.Contains(t, output, "Met: 1  Partial: 0  Gap: 1  (of 2)")
	assert.Contains(t, output, "✓ 5 years")
	assert.Contains(t, output, "10 years experience")
	assert.Contains(t, output, "✗ Speaks Klingon")
}

func TestPrintMatchResult_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	evals := make([]types.MatchEvaluation, 8)
	for i := range evals {
		req := types.Requirement{Text: fmt.Sprintf("req %d", i)}
		evals[i] = types.MatchEvaluation{Requirement: &req, Status: types.StatusGap}
	}

	p.PrintMatchResult(&types.MatchResult{Evaluations: evals})
	output := buf.String()

	assert.Contains(t, output, "req 4")
	assert.NotContains(t, output, "req 5")
	assert.Contains(t, output, "... and 3 more requirements")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMustHaveGaps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMustHaveGaps(&types.MatchResult{Summary: types.MatchSummary{MustHaveGaps: []string{"Speaks Klingon"}}})
	assert.Contains(t, buf.String(), "MUST-HAVE GAPS")
	assert.Contains(t, buf.String(), "⚠ Speaks Klingon")

	buf.Reset()
	p.PrintMustHaveGaps(&types.MatchResult{})
	assert.Contains(t, buf.String(), "NO MUST-HAVE GAPS")
}

func TestPrintBox_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
