// Package codec reads and writes persisted tables.
//
// Text format (the interop format): one signed decimal entry per line, in
// table order. It carries no variant; the reader must supply one.
//
// Binary format, little-endian:
//
//	0:4   magic "KWF1"
//	4:6   version (uint16) == 1
//	6:8   slots per block (uint16), 27 terminated or 26 unterminated
//	8:12  entry count (uint32)
//	12:16 crc32 of the entry bytes
//	16:   entry count int32 values
//
// Either format can be wrapped in zstd. File helpers pick the format from the
// extension: ".kwf" is binary, anything else is text, and a trailing ".zst"
// adds compression.
package codec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/fsm"
	"github.com/klauspost/compress/zstd"
)

type Format int

const (
	Text Format = iota
	Binary
)

const (
	BinaryExt     = ".kwf"
	CompressedExt = ".zst"
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatForPath infers the format and compression from a file name.
func FormatForPath(path string) (f Format, compressed bool) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, CompressedExt) {
		compressed = true
		name = strings.TrimSuffix(name, CompressedExt)
	}
	if strings.HasSuffix(name, BinaryExt) {
		return Binary, compressed
	}
	return Text, compressed
}

// Encode writes tb to w in format f.
func Encode(w io.Writer, tb *fsm.Table, f Format) error {
	switch f {
	case Text:
		return encodeText(w, tb.Entries())
	case Binary:
		return encodeBinary(w, tb)
	default:
		return fmt.Errorf("codec: unknown format %s", f)
	}
}

// Decode reads a table in format f and validates it for v.
func Decode(r io.Reader, v kwfsm.Variant, f Format) (*fsm.Table, error) {
	var (
		entries []int32
		err     error
	)
	switch f {
	case Text:
		entries, err = decodeText(r)
	case Binary:
		entries, err = decodeBinary(r, v)
	default:
		return nil, fmt.Errorf("codec: unknown format %s", f)
	}
	if err != nil {
		return nil, err
	}
	return fsm.New(v, entries)
}

// EncodeCompressed is Encode wrapped in a zstd stream.
func EncodeCompressed(w io.Writer, tb *fsm.Table, f Format) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err := Encode(zw, tb, f); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// DecodeCompressed is Decode reading from a zstd stream.
func DecodeCompressed(r io.Reader, v kwfsm.Variant, f Format) (*fsm.Table, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	tb, err := Decode(zr, v, f)
	if err != nil {
		return nil, fmt.Errorf("zstd %s table: %w", f, err)
	}
	return tb, nil
}

// WriteFile writes tb to path using the format implied by its name.
func WriteFile(path string, tb *fsm.Table) (err error) {
	f, compressed := FormatForPath(path)
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if compressed {
		return EncodeCompressed(out, tb, f)
	}
	return Encode(out, tb, f)
}

// ReadFile loads the table at path for variant v.
func ReadFile(path string, v kwfsm.Variant) (*fsm.Table, error) {
	f, compressed := FormatForPath(path)
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var tb *fsm.Table
	if compressed {
		tb, err = DecodeCompressed(in, v, f)
	} else {
		tb, err = Decode(in, v, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tb, nil
}
