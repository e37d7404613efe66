// Package sources reads keyword lists and text inputs.
package sources

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/betterleaks/kwfsm/logging"
	"github.com/h2non/filetype"
	"github.com/mholt/archives"
)

// sniffLen is how many bytes filetype needs to recognise a format.
const sniffLen = 262

// ErrBinary is returned for inputs that are neither text nor a compressed
// text stream.
var ErrBinary = errors.New("binary content")

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open returns a reader over the text in r. Compressed streams (gzip, zstd,
// bzip2, xz, ...) are decompressed; archives and other binary content are
// rejected with ErrBinary. name is only used as a format hint.
func Open(ctx context.Context, name string, r io.Reader) (io.ReadCloser, error) {
	format, stream, err := archives.Identify(ctx, name, r)
	switch {
	case errors.Is(err, archives.NoMatch):
		return checkText(name, stream, nil)
	case err != nil:
		return nil, err
	}

	dec, ok := format.(archives.Decompressor)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s archives are not supported", name, ErrBinary, format.Extension())
	}
	logging.Debug().Str("path", name).Str("format", format.Extension()).Msg("decompressing input")
	rc, err := dec.OpenReader(stream)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return checkText(name, rc, rc.Close)
}

// checkText rejects streams whose leading bytes match a known binary type,
// such as a tar inside a gzip or an image.
func checkText(name string, r io.Reader, closeFn func() error) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, 4096)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, err
	}
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, fmt.Errorf("%s: %w: detected %s", name, ErrBinary, kind.MIME.Value)
	}
	return readCloser{Reader: br, close: closeFn}, nil
}
