// Package trie builds the character trie a keyword table is flattened from.
//
// Nodes keep their entries in insertion order. The flattener lays child blocks
// out in that order, so the same keyword list always produces the same table.
package trie

import (
	"fmt"

	"github.com/betterleaks/kwfsm"
)

// Entry is one letter edge out of a node.
type Entry struct {
	Letter byte

	// Child is the node reached through Letter. It is nil for terminal
	// entries, which only exist in the unterminated variant.
	Child *Node

	// Keyword is set on terminal entries.
	Keyword *kwfsm.Keyword
}

// Terminal reports whether the entry ends a keyword instead of continuing.
func (e Entry) Terminal() bool {
	return e.Child == nil
}

// Node is a trie node. The root represents the empty prefix.
type Node struct {
	entries []Entry

	// end is the terminated variant's end-of-word marker.
	end *kwfsm.Keyword
	// endPos is len(entries) at the time end was set, used to keep the JSON
	// dump in insertion order.
	endPos int
}

// Entries returns the node's letter edges in insertion order. The returned
// slice is owned by the node and must not be modified.
func (n *Node) Entries() []Entry {
	return n.entries
}

// End returns the keyword that ends at this node (terminated variant only).
func (n *Node) End() (kwfsm.Keyword, bool) {
	if n.end == nil {
		return kwfsm.Keyword{}, false
	}
	return *n.end, true
}

func (n *Node) find(c byte) int {
	for i := range n.entries {
		if n.entries[i].Letter == c {
			return i
		}
	}
	return -1
}

// anyKeyword returns the first keyword reachable from n.
func (n *Node) anyKeyword() *kwfsm.Keyword {
	if n.end != nil {
		return n.end
	}
	for _, e := range n.entries {
		if e.Terminal() {
			return e.Keyword
		}
		if kw := e.Child.anyKeyword(); kw != nil {
			return kw
		}
	}
	return nil
}

// Trie is an insertion-ordered character trie for one variant.
type Trie struct {
	variant kwfsm.Variant
	root    *Node
	size    int
}

// New returns an empty trie for v.
func New(v kwfsm.Variant) *Trie {
	return &Trie{variant: v, root: &Node{}}
}

// Build inserts words in order, assigning words[i] the identifier i+1.
func Build(v kwfsm.Variant, words []string) (*Trie, error) {
	t := New(v)
	for i, w := range words {
		if err := t.Insert(w, i+1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Trie) Variant() kwfsm.Variant { return t.variant }
func (t *Trie) Root() *Node            { return t.root }

// Len returns the number of keywords inserted.
func (t *Trie) Len() int { return t.size }

// Insert adds word with identifier id, creating one node per character.
func (t *Trie) Insert(word string, id int) error {
	if err := kwfsm.ValidateKeyword(word); err != nil {
		return err
	}
	if id <= kwfsm.NotAKeyword {
		return fmt.Errorf("%w: identifier %d for %q must be positive", kwfsm.ErrInvalidKeyword, id, word)
	}
	kw := &kwfsm.Keyword{Word: word, ID: id}

	var err error
	if t.variant == kwfsm.Unterminated {
		err = t.insertUnterminated(kw)
	} else {
		err = t.insertTerminated(kw)
	}
	if err != nil {
		return err
	}
	t.size++
	return nil
}

func (t *Trie) insertTerminated(kw *kwfsm.Keyword) error {
	n := t.root
	for i := 0; i < len(kw.Word); i++ {
		c := kw.Word[i]
		j := n.find(c)
		if j < 0 {
			n.entries = append(n.entries, Entry{Letter: c, Child: &Node{}})
			j = len(n.entries) - 1
		}
		n = n.entries[j].Child
	}
	if n.end != nil {
		return fmt.Errorf("%w: %q (ids %d and %d)", kwfsm.ErrDuplicateKeyword, kw.Word, n.end.ID, kw.ID)
	}
	n.end = kw
	n.endPos = len(n.entries)
	return nil
}

func (t *Trie) insertUnterminated(kw *kwfsm.Keyword) error {
	n := t.root
	last := len(kw.Word) - 1
	for i := 0; i < last; i++ {
		c := kw.Word[i]
		j := n.find(c)
		switch {
		case j < 0:
			n.entries = append(n.entries, Entry{Letter: c, Child: &Node{}})
			j = len(n.entries) - 1
		case n.entries[j].Terminal():
			return collision(n.entries[j].Keyword, kw)
		}
		n = n.entries[j].Child
	}

	c := kw.Word[last]
	j := n.find(c)
	if j < 0 {
		n.entries = append(n.entries, Entry{Letter: c, Keyword: kw})
		return nil
	}
	e := n.entries[j]
	if e.Terminal() {
		return fmt.Errorf("%w: %q (ids %d and %d)", kwfsm.ErrDuplicateKeyword, kw.Word, e.Keyword.ID, kw.ID)
	}
	return collision(kw, e.Child.anyKeyword())
}

func collision(prefix, word *kwfsm.Keyword) error {
	return fmt.Errorf("%w: %q (id %d) prefixes %q (id %d)",
		kwfsm.ErrPrefixCollision, prefix.Word, prefix.ID, word.Word, word.ID)
}
