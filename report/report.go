// Package report writes lookup results and scan occurrences.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/betterleaks/kwfsm"
)

// Report is what a command hands to a Reporter. Only one of Results and
// Occurrences is normally set.
type Report struct {
	Variant     kwfsm.Variant      `json:"variant"`
	Table       string             `json:"table,omitempty"`
	Results     []kwfsm.Result     `json:"results,omitempty"`
	Occurrences []kwfsm.Occurrence `json:"occurrences,omitempty"`
}

type Reporter interface {
	Write(w io.Writer, r Report) error
}

const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatTemplate = "template"
)

// New returns the reporter for format. templatePath is only used (and then
// required) for the template format.
func New(format, templatePath string) (Reporter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &JsonReporter{}, nil
	case FormatCSV:
		return &CsvReporter{}, nil
	case FormatTemplate:
		if templatePath == "" {
			return nil, fmt.Errorf("report format %q requires --report-template", format)
		}
		return NewTemplateReporter(templatePath)
	default:
		return nil, fmt.Errorf("unknown report format %q (expected json, csv or template)", format)
	}
}
