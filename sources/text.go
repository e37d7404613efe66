package sources

import (
	"bufio"
	"context"
	"io"
	"os"
)

// LineFunc receives each line of a text resource with its 1-based number.
type LineFunc func(lineNo int, line string) error

// Text is a text resource scanned line by line.
type Text struct {
	// Path names the resource. If Content is nil the file at Path is read.
	Path    string
	Content io.Reader
}

// Lines calls yield for every line, stopping at the first error it returns.
func (t *Text) Lines(ctx context.Context, yield LineFunc) error {
	content := t.Content
	if content == nil {
		f, err := os.Open(t.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		content = f
	}

	rc, err := Open(ctx, t.Path, content)
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 4096), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		if err := yield(lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
