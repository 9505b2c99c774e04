// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// statusIcons maps a verdict to its marker in the evaluations box
var statusIcons = map[types.Status]string{
	types.StatusMet:     "✓",
	types.StatusPartial: "~",
	types.StatusGap:     "✗",
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most limit runes, marking the cut with "..."
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// PrintJobRequirements outputs a human-readable summary of the job's requirements.
func (p *Printer) PrintJobRequirements(job *types.JobRequirements) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.RoleTitle))
	sb.WriteString("\n")

	var must, nice []types.Requirement
	for _, req := range job.Requirements {
		if req.IsMustHave() {
			must = append(must, req)
		} else {
			nice = append(nice, req)
		}
	}

	writeRequirements(&sb, "Must-haves:", must)
	writeRequirements(&sb, "Other requirements:", nice)

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeRequirements(sb *strings.Builder, heading string, reqs []types.Requirement) {
	if len(reqs) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	count := min(len(reqs), maxItemsToShow)
	for i := 0; i < count; i++ {
		category := string(reqs[i].Category)
		if category == "" {
			category = "?"
		}
		sb.WriteString(fmt.Sprintf("  • [%s] %s\n", category, reqs[i].Text))
	}
	if len(reqs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reqs)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintMatchResult outputs the score and the first evaluations with their evidence.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	s := result.Summary
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Met: %d  Partial: %d  Gap: %d  (of %d)\n", s.Met, s.Partial, s.Gap, s.Total))

	if len(result.Evaluations) > 0 {
		sb.WriteString("\n")
	}
	count := min(len(result.Evaluations), maxItemsToShow)
	for i := 0; i < count; i++ {
		eval := result.Evaluations[i]
		text := ""
		if eval.Requirement != nil {
			text = eval.Requirement.Text
		}
		icon, ok := statusIcons[eval.Status]
		if !ok {
			icon = "?"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", icon, text))
		if eval.Evidence != nil {
			sb.WriteString(fmt.Sprintf("  %s\n", *eval.Evidence))
		}
	}
	if len(result.Evaluations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more requirements\n", len(result.Evaluations)-maxItemsToShow))
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMustHaveGaps outputs the must-have requirements the profile did not satisfy.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMustHaveGaps(result *types.MatchResult) {
	if result == nil || len(result.Summary.MustHaveGaps) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MUST-HAVE GAPS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	gaps := result.Summary.MustHaveGaps
	sb.WriteString(fmt.Sprintf("Missing %d must-have requirements:\n\n", len(gaps)))
	for _, g := range gaps {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", g))
	}

	p.printBox("MUST-HAVE GAPS", strings.TrimSuffix(sb.String(), "\n"))
}
