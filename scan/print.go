package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/betterleaks/kwfsm"
	"github.com/charmbracelet/lipgloss"
)

var (
	keywordStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f05c07"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5d445"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// PrintResult writes one lookup result in the classic "<word> <id>" form.
func PrintResult(w io.Writer, r kwfsm.Result, noColor bool) {
	switch {
	case r.Invalid:
		fmt.Fprintf(w, "%s is not a valid query (only a-z allowed)\n", r.Query)
	case !r.Matched():
		fmt.Fprintf(w, "%s is not a keyword\n", r.Query)
	case noColor:
		fmt.Fprintf(w, "%s %d\n", r.Query, r.ID)
	default:
		fmt.Fprintf(w, "%s %s\n", keywordStyle.Render(r.Query), idStyle.Render(fmt.Sprint(r.ID)))
	}
}

// PrintOccurrence writes "path:line:col id keyword" followed by the line
// with the keyword highlighted.
func PrintOccurrence(w io.Writer, o kwfsm.Occurrence, noColor bool) {
	loc := fmt.Sprintf("%s:%d:%d", o.Path, o.Line, o.Column)
	line := strings.TrimRight(o.LineText, " \t\r")
	if len(line) > 120 {
		line = line[:117] + "..."
	}

	if noColor {
		fmt.Fprintf(w, "%-30s %4d %s\n", loc, o.ID, o.Word)
		if line != "" {
			fmt.Fprintf(w, "    %s\n", strings.TrimSpace(line))
		}
		return
	}

	fmt.Fprintf(w, "%-30s %s %s\n", dimStyle.Render(loc), idStyle.Render(fmt.Sprintf("%4d", o.ID)), keywordStyle.Render(o.Word))
	start := o.Column - 1
	end := start + len(o.Word)
	if end <= len(line) {
		line = line[:start] + keywordStyle.Render(o.Word) + line[end:]
	}
	fmt.Fprintf(w, "    %s\n", strings.TrimSpace(line))
}
