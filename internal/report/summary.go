package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sharpcheck/internal/analysis"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	cleanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// Summary renders a terminal report of one run's diagnostics.
func Summary(fileCount int, diagnostics []analysis.Diagnostic) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("sharpcheck: %d files analyzed", fileCount)))
	b.WriteString("\n")

	if len(diagnostics) == 0 {
		b.WriteString(cleanStyle.Render("no style violations found"))
		b.WriteString("\n")
		return b.String()
	}

	sorted := append([]analysis.Diagnostic(nil), diagnostics...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Location.File != sorted[j].Location.File {
			return sorted[i].Location.File < sorted[j].Location.File
		}
		return sorted[i].Location.Line < sorted[j].Location.Line
	})

	for _, d := range sorted {
		style := warningStyle
		if d.Severity == analysis.SeverityError {
			style = errorStyle
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			locationStyle.Render(fmt.Sprintf("%s:%d:%d", d.Location.File, d.Location.Line, d.Location.Column)),
			style.Render(fmt.Sprintf("%s %s", d.Severity, d.RuleID)),
			d.Message,
		))
	}

	b.WriteString(fmt.Sprintf("\n%d violations\n", len(sorted)))
	return b.String()
}
