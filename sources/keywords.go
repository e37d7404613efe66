package sources

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/regexp"
)

// KeywordStats counts what happened to each line of a keyword list.
type KeywordStats struct {
	Lines           int
	Accepted        int
	SkippedBlank    int
	SkippedExcluded int
	MaxWordLen      int
}

// Keywords is a line-delimited keyword list. Identifiers follow the order of
// accepted lines: blank and excluded lines do not consume one.
type Keywords struct {
	// Path names the list. If Content is nil the file at Path is read, with
	// "-" meaning stdin.
	Path    string
	Content io.Reader

	// Exclude skips lines matching any pattern, e.g. comments.
	Exclude []*regexp.Regexp
}

// Load reads and validates every keyword. An invalid keyword fails the whole
// load with its line number.
func (k *Keywords) Load(ctx context.Context) ([]string, KeywordStats, error) {
	var st KeywordStats

	content := k.Content
	if content == nil {
		if k.Path == "-" {
			content = os.Stdin
		} else {
			f, err := os.Open(k.Path)
			if err != nil {
				return nil, st, err
			}
			defer f.Close()
			content = f
		}
	}

	rc, err := Open(ctx, k.Path, content)
	if err != nil {
		return nil, st, err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 1024), 1024*1024)

	var words []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			st.SkippedBlank++
			continue
		}
		if k.excluded(line) {
			st.SkippedExcluded++
			continue
		}
		if err := kwfsm.ValidateKeyword(line); err != nil {
			return nil, st, fmt.Errorf("%s:%d: %w", k.Path, st.Lines, err)
		}
		st.MaxWordLen = max(st.MaxWordLen, len(line))
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, st, err
	}
	st.Accepted = len(words)

	logging.Debug().
		Str("path", k.Path).
		Int("lines", st.Lines).
		Int("accepted", st.Accepted).
		Int("skipped_blank", st.SkippedBlank).
		Int("skipped_excluded", st.SkippedExcluded).
		Msg("loaded keywords")
	return words, st, nil
}

func (k *Keywords) excluded(line string) bool {
	for _, re := range k.Exclude {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
