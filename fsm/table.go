// Package fsm flattens a keyword trie into a linear transition table and walks
// that table to classify strings.
//
// Table layout: each trie node owns a block of N contiguous int32 slots
// (N=27 terminated, N=26 unterminated). The root block starts at 0.
//
//	0        absent transition
//	-id      terminal, keyword identifier id
//	+base    start of the next node's block
//
// Terminated blocks use slot 0 as the end-of-word marker and slots 1..26 for
// 'a'..'z'. Unterminated blocks use slots 0..25 for 'a'..'z' and store the
// terminal in the last letter's slot.
package fsm

import (
	"fmt"
	"math"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/trie"
	"github.com/zeebo/xxh3"
)

// Table is a read-only flattened automaton. It is safe for concurrent use.
type Table struct {
	variant kwfsm.Variant
	slots   int
	entries []int32
}

// Flatten lays t out as a table. The trie can be discarded afterwards.
func Flatten(t *trie.Trie) *Table {
	v := t.Variant()
	tb := &Table{
		variant: v,
		slots:   v.Slots(),
		entries: make([]int32, 0, v.Slots()*(t.Len()+1)),
	}
	tb.flatten(t.Root(), 0)
	return tb
}

// flatten appends n's block at base, recursively appends its children's
// blocks after it, and returns the next free offset.
func (tb *Table) flatten(n *trie.Node, base int) int {
	for i := 0; i < tb.slots; i++ {
		tb.entries = append(tb.entries, 0)
	}
	cursor := base + tb.slots

	if end, ok := n.End(); ok {
		slot, _ := tb.variant.EndSlot()
		tb.entries[base+slot] = int32(-end.ID)
	}
	for _, e := range n.Entries() {
		slot, _ := tb.variant.Slot(e.Letter)
		if e.Terminal() {
			tb.entries[base+slot] = int32(-e.Keyword.ID)
			continue
		}
		tb.entries[base+slot] = int32(cursor)
		cursor = tb.flatten(e.Child, cursor)
	}
	return cursor
}

// Compile builds and flattens words, assigning words[i] the identifier i+1.
func Compile(v kwfsm.Variant, words []string) (*Table, error) {
	if len(words) > math.MaxInt32 {
		return nil, fmt.Errorf("too many keywords: %d", len(words))
	}
	t, err := trie.Build(v, words)
	if err != nil {
		return nil, err
	}
	tb := Flatten(t)
	if len(tb.entries) > math.MaxInt32 {
		return nil, fmt.Errorf("table too large: %d entries", len(tb.entries))
	}
	return tb, nil
}

// New wraps entries loaded from storage and validates them for v. The table
// retains entries; callers must not modify the slice afterwards.
func New(v kwfsm.Variant, entries []int32) (*Table, error) {
	tb := &Table{variant: v, slots: v.Slots(), entries: entries}
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	return tb, nil
}

// MustNew panics if New fails.
func MustNew(v kwfsm.Variant, entries []int32) *Table {
	tb, err := New(v, entries)
	if err != nil {
		panic(err)
	}
	return tb
}

func (tb *Table) Variant() kwfsm.Variant { return tb.variant }

// Len returns the number of entries.
func (tb *Table) Len() int { return len(tb.entries) }

// Entries returns the underlying slice. It must not be modified.
func (tb *Table) Entries() []int32 { return tb.entries }

// Validate checks the block invariants: the length is a non-zero multiple of
// N, and every positive entry is the in-bounds start of a block other than the
// root. Terminated tables may only hold terminals in end-of-word slots.
func (tb *Table) Validate() error {
	n := len(tb.entries)
	if n == 0 || n%tb.slots != 0 {
		return fmt.Errorf("%w: %d entries is not a multiple of %d (%s)", kwfsm.ErrBadFormat, n, tb.slots, tb.variant)
	}
	endSlot, hasEnd := tb.variant.EndSlot()
	if hasEnd && tb.entries[endSlot] != 0 {
		return fmt.Errorf("%w: root block has an end-of-word marker", kwfsm.ErrBadFormat)
	}
	for i, e := range tb.entries {
		switch {
		case e > 0:
			if int(e) >= n || int(e)%tb.slots != 0 {
				return fmt.Errorf("%w: entry %d points to %d, not a block start", kwfsm.ErrBadFormat, i, e)
			}
			if hasEnd && i%tb.slots == endSlot {
				return fmt.Errorf("%w: end-of-word slot %d holds a transition", kwfsm.ErrBadFormat, i)
			}
		case e < 0:
			if hasEnd && i%tb.slots != endSlot {
				return fmt.Errorf("%w: letter slot %d holds a terminal", kwfsm.ErrBadFormat, i)
			}
		}
	}
	return nil
}

// Fingerprint returns a short hash of the block size and entries.
func (tb *Table) Fingerprint() string {
	h := xxh3.New()
	_, _ = h.Write([]byte{byte(tb.slots)})
	var buf [4]byte
	for _, e := range tb.entries {
		u := uint32(e)
		buf[0], buf[1], buf[2], buf[3] = byte(u), byte(u>>8), byte(u>>16), byte(u>>24)
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
