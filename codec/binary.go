package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/fsm"
)

const (
	fileMagic   = "KWF1"
	fileVersion = 1
	headerSize  = 16

	// maxEntries bounds allocation when reading an untrusted header.
	maxEntries = 1 << 28
)

func encodeBinary(w io.Writer, tb *fsm.Table) error {
	entries := tb.Entries()
	payload := make([]byte, 4*len(entries))
	for i, e := range entries {
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(e))
	}

	var hdr [headerSize]byte
	copy(hdr[0:4], fileMagic)
	binary.LittleEndian.PutUint16(hdr[4:], fileVersion)
	binary.LittleEndian.PutUint16(hdr[6:], uint16(tb.Variant().Slots()))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(len(entries)))
	binary.LittleEndian.PutUint32(hdr[12:], crc32.ChecksumIEEE(payload))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := bw.Write(payload); err != nil {
		return err
	}
	return bw.Flush()
}

func decodeBinary(r io.Reader, v kwfsm.Variant) ([]int32, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", kwfsm.ErrBadFormat)
		}
		return nil, err
	}
	if string(hdr[0:4]) != fileMagic {
		return nil, fmt.Errorf("%w: bad magic %q", kwfsm.ErrBadFormat, hdr[0:4])
	}
	if ver := binary.LittleEndian.Uint16(hdr[4:]); ver != fileVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", kwfsm.ErrBadFormat, ver)
	}
	slots := int(binary.LittleEndian.Uint16(hdr[6:]))
	got, err := kwfsm.VariantForSlots(slots)
	if err != nil {
		return nil, err
	}
	if got != v {
		return nil, fmt.Errorf("%w: table is %s, expected %s", kwfsm.ErrBadFormat, got, v)
	}
	count := binary.LittleEndian.Uint32(hdr[8:])
	if count > maxEntries {
		return nil, fmt.Errorf("%w: %d entries exceeds limit", kwfsm.ErrBadFormat, count)
	}
	wantCRC := binary.LittleEndian.Uint32(hdr[12:])

	payload := make([]byte, 4*int(count))
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated, want %d entries", kwfsm.ErrBadFormat, count)
		}
		return nil, err
	}
	if crc32.ChecksumIEEE(payload) != wantCRC {
		return nil, fmt.Errorf("%w: checksum mismatch", kwfsm.ErrBadFormat)
	}

	entries := make([]int32, count)
	for i := range entries {
		entries[i] = int32(binary.LittleEndian.Uint32(payload[4*i:]))
	}
	return entries, nil
}
