package matching

import (
	"math"

	"github.com/jonathan/resume-coach/internal/types"
)

// neutralScore is reported when there are no requirements to compare against,
// so "nothing parsed" does not read as a total mismatch.
const neutralScore = 50

// partialCredit is the weight of a partial verdict relative to a met one
const partialCredit = 0.5

// summarize counts evaluations per status and collects must-have gaps in input order
func summarize(evals []types.MatchEvaluation) types.MatchSummary {
	summary := types.MatchSummary{
		Total:        len(evals),
		MustHaveGaps: []string{},
	}
	for i := range evals {
		switch evals[i].Status {
		case types.StatusMet:
			summary.Met++
		case types.StatusPartial:
			summary.Partial++
		default:
			summary.Gap++
			if evals[i].Requirement != nil && evals[i].Requirement.IsMustHave() {
				summary.MustHaveGaps = append(summary.MustHaveGaps, evals[i].Requirement.Text)
			}
		}
	}
	return summary
}

// Score computes round((met + 0.5*partial) / total * 100), or 50 when total is zero.
// Halves round up.
func Score(met, partial, total int) int {
	if total <= 0 {
		return neutralScore
	}
	ratio := (float64(met) + partialCredit*float64(partial)) / float64(total)
	score := int(math.Floor(ratio*100 + 0.5))
	return max(0, min(100, score))
}
