package report

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/registry/std"
	sproutstrings "github.com/go-sprout/sprout/registry/strings"
)

type TemplateReporter struct {
	template *template.Template
}

var _ Reporter = (*TemplateReporter)(nil)

// NewTemplateReporter parses the template file at path. Templates receive a
// Report and the sprout std and strings functions.
func NewTemplateReporter(path string) (*TemplateReporter, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return parseTemplate(path, string(b))
}

func parseTemplate(name, text string) (*TemplateReporter, error) {
	handler := sprout.New()
	if err := handler.AddRegistries(std.NewRegistry(), sproutstrings.NewRegistry()); err != nil {
		return nil, fmt.Errorf("template functions: %w", err)
	}
	tmpl, err := template.New(name).Funcs(handler.Build()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("error parsing template: %w", err)
	}
	return &TemplateReporter{template: tmpl}, nil
}

func (t *TemplateReporter) Write(w io.Writer, r Report) error {
	return t.template.Execute(w, r)
}
