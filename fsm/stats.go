package fsm

import (
	"cmp"

	"github.com/betterleaks/kwfsm"
	"golang.org/x/exp/slices"
)

// Stats summarizes a table's shape.
type Stats struct {
	Variant     kwfsm.Variant `json:"variant"`
	Entries     int           `json:"entries"`
	Blocks      int           `json:"blocks"`
	Keywords    int           `json:"keywords"`
	Transitions int           `json:"transitions"`
	MaxDepth    int           `json:"maxDepth"`
	Fingerprint string        `json:"fingerprint"`
}

// Stats counts blocks, keywords and transitions.
func (tb *Table) Stats() Stats {
	st := Stats{
		Variant:     tb.variant,
		Entries:     len(tb.entries),
		Blocks:      len(tb.entries) / tb.slots,
		Fingerprint: tb.Fingerprint(),
	}
	for _, e := range tb.entries {
		switch {
		case e < 0:
			st.Keywords++
		case e > 0:
			st.Transitions++
		}
	}
	for _, kw := range tb.Keywords() {
		st.MaxDepth = max(st.MaxDepth, len(kw.Word))
	}
	return st
}

// Keywords recovers the keyword list from the table, ordered by identifier.
func (tb *Table) Keywords() []kwfsm.Keyword {
	var (
		out  []kwfsm.Keyword
		word []byte
		walk func(base int)
	)
	walk = func(base int) {
		for slot := 0; slot < tb.slots; slot++ {
			e := tb.entries[base+slot]
			if e == 0 {
				continue
			}
			c, isLetter := tb.variant.Letter(slot)
			if e < 0 {
				w := word
				if isLetter {
					w = append(w, c)
				}
				out = append(out, kwfsm.Keyword{Word: string(w), ID: int(-e)})
				continue
			}
			if !isLetter || int(e) <= base {
				// not reachable in a valid table; avoid looping on bad input
				continue
			}
			word = append(word, c)
			walk(int(e))
			word = word[:len(word)-1]
		}
	}
	walk(0)
	slices.SortFunc(out, func(a, b kwfsm.Keyword) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
