package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// toolEvidence does not name the matched tool.
const toolEvidence = "Has tool experience"

// formatNumber renders a number in its shortest exact decimal form (10, 7.5, 1000)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func experienceEvidence(years float64) string {
	return fmt.Sprintf("%s years experience", formatNumber(years))
}

func scaleEvidence(value float64, metric, context string) string {
	return strings.TrimSpace(fmt.Sprintf("%s+ %s %s", formatNumber(value), metric, context))
}

func skillEvidence(skill string) string {
	return "Has " + skill
}

func companyEvidence(company string) string {
	return "Experience at " + company
}
