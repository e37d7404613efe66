package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/betterleaks/kwfsm"
)

func encodeText(w io.Writer, entries []int32) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for _, e := range entries {
		buf = strconv.AppendInt(buf[:0], int64(e), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// decodeText parses one integer per line. Blank lines are ignored so files with
// CRLF endings or a trailing newline load unchanged.
func decodeText(r io.Reader) ([]int32, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024), 1024*1024)

	var (
		entries []int32
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not an integer", kwfsm.ErrBadFormat, lineNo, line)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: line %d: %d out of range", kwfsm.ErrBadFormat, lineNo, n)
		}
		entries = append(entries, int32(n))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
