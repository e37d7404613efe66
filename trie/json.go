package trie

import (
	"strconv"

	"github.com/betterleaks/kwfsm"
)

// endKey is the JSON key used for the terminated variant's end-of-word marker.
const endKey = "null"

// MarshalJSON renders the trie as nested objects keyed by letter, in insertion
// order. A terminated end-of-word marker is written under "null"; an
// unterminated terminal is written as the bare identifier.
func (t *Trie) MarshalJSON() ([]byte, error) {
	return t.root.appendJSON(make([]byte, 0, 64*t.size+2)), nil
}

func (n *Node) appendJSON(b []byte) []byte {
	b = append(b, '{')
	first := true
	sep := func() {
		if !first {
			b = append(b, ',')
		}
		first = false
	}
	writeEnd := func() {
		sep()
		b = strconv.AppendQuote(b, endKey)
		b = append(b, ':')
		b = strconv.AppendInt(b, int64(n.end.ID), 10)
	}

	for i, e := range n.entries {
		if n.end != nil && n.endPos == i {
			writeEnd()
		}
		sep()
		b = append(b, '"', e.Letter, '"', ':')
		if e.Terminal() {
			b = strconv.AppendInt(b, int64(e.Keyword.ID), 10)
		} else {
			b = e.Child.appendJSON(b)
		}
	}
	if n.end != nil && n.endPos == len(n.entries) {
		writeEnd()
	}
	return append(b, '}')
}

// Keywords returns every keyword in the trie in depth-first insertion order.
func (t *Trie) Keywords() []kwfsm.Keyword {
	out := make([]kwfsm.Keyword, 0, t.size)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.end != nil {
			out = append(out, *n.end)
		}
		for _, e := range n.entries {
			if e.Terminal() {
				out = append(out, *e.Keyword)
				continue
			}
			walk(e.Child)
		}
	}
	walk(t.root)
	return out
}
