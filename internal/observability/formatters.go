// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vacancy-matching/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

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
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs the staffing request a run matched against.
func (p *Printer) PrintRequest(request *types.Request) {
	if request == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:              %s\n", request.ID)
	fmt.Fprintf(&sb, "Classification:  %s\n", request.ClassificationCode)
	fmt.Fprintf(&sb, "Language:        %s\n", request.LanguageRequirementCode)
	if len(request.CityCodes) > 0 {
		fmt.Fprintf(&sb, "Cities:          %s\n", strings.Join(request.CityCodes, ", "))
	}
	if request.StatusCode != "" {
		fmt.Fprintf(&sb, "Status:          %s\n", request.StatusCode)
	}

	p.printBox("STAFFING REQUEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the first matches in priority order with their WFA status.
func (p *Printer) PrintMatches(matches []types.Match) {
	if len(matches) == 0 {
		p.printBox("NO MATCHES CREATED", "No eligible candidate profiles")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Created %d matches:\n\n", len(matches))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, m.ProfileID)
		wfa := "none"
		if m.Profile != nil && m.Profile.WFAStatus != nil {
			wfa = m.Profile.WFAStatus.Code
			if end := m.Profile.WFAEndDate; end != nil {
				wfa += " until " + end.Format("2006-01-02")
			}
		}
		fmt.Fprintf(&sb, "    WFA: %s  Status: %s\n", wfa, m.MatchStatus.Code)
	}

	if len(matches) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more matches", len(matches)-maxItemsToShow)
	}

	p.printBox("MATCHES (priority order)", strings.TrimSuffix(sb.String(), "\n"))
}
