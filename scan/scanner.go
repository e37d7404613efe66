package scan

import (
	"context"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/fsm"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/sources"
	"golang.org/x/sync/errgroup"
)

// Scanner finds keywords in text. A candidate is a maximal run of ASCII
// letters, digits and underscores; only runs made entirely of 'a'..'z' are
// looked up, so "If", "int8" and "else_" are never keywords.
type Scanner struct {
	Table *fsm.Table
}

// ScanLine returns the keywords on one line.
func (s *Scanner) ScanLine(path string, lineNo int, line string) []kwfsm.Occurrence {
	var out []kwfsm.Occurrence
	for i := 0; i < len(line); {
		if !isWordByte(line[i]) {
			i++
			continue
		}
		start := i
		lower := true
		for i < len(line) && isWordByte(line[i]) {
			if c := line[i]; c < 'a' || c > 'z' {
				lower = false
			}
			i++
		}
		if !lower {
			continue
		}
		word := line[start:i]
		// word is all a-z, so Lookup cannot fail
		id, _ := s.Table.Lookup(word)
		if id == kwfsm.NotAKeyword {
			continue
		}
		out = append(out, kwfsm.Occurrence{
			Keyword:  kwfsm.Keyword{Word: word, ID: id},
			Path:     path,
			Line:     lineNo,
			Column:   start + 1,
			LineText: line,
		})
	}
	return out
}

// Scan reads src and returns every keyword occurrence in order.
func (s *Scanner) Scan(ctx context.Context, src *sources.Text) ([]kwfsm.Occurrence, error) {
	var out []kwfsm.Occurrence
	err := src.Lines(ctx, func(lineNo int, line string) error {
		out = append(out, s.ScanLine(src.Path, lineNo, line)...)
		return nil
	})
	return out, err
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// Pipeline scans several text sources concurrently.
type Pipeline struct {
	Scanner     Scanner
	Concurrency int
}

// Run scans every source and returns occurrences grouped by source, in the
// order the sources were given. Sources that cannot be read are logged and
// skipped unless the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, srcs []*sources.Text) ([]kwfsm.Occurrence, error) {
	perSource := make([][]kwfsm.Occurrence, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Concurrency, 1))
	for i, src := range srcs {
		g.Go(func() error {
			occs, err := p.Scanner.Scan(ctx, src)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn().Err(err).Str("path", src.Path).Msg("skipping")
				return nil
			}
			logging.Trace().Str("path", src.Path).Int("keywords", len(occs)).Msg("scanned")
			perSource[i] = occs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []kwfsm.Occurrence
	for _, occs := range perSource {
		out = append(out, occs...)
	}
	return out, nil
}
