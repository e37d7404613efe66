package fsm

import (
	"fmt"

	"github.com/betterleaks/kwfsm"
)

// Lookup returns the identifier of query, or kwfsm.NotAKeyword. A query with
// any byte outside 'a'..'z' returns kwfsm.ErrInvalidQuery. Lookup does not
// allocate unless it returns an error.
func (tb *Table) Lookup(query string) (int, error) {
	if query == "" {
		return kwfsm.NotAKeyword, nil
	}
	for i := 0; i < len(query); i++ {
		if c := query[i]; c < 'a' || c > 'z' {
			return kwfsm.NotAKeyword, fmt.Errorf("%w: %q has %q at offset %d", kwfsm.ErrInvalidQuery, query, c, i)
		}
	}
	if tb.variant == kwfsm.Unterminated {
		return tb.walkUnterminated(query), nil
	}
	return tb.walkTerminated(query), nil
}

// Contains reports whether query is a keyword. Invalid queries are not.
func (tb *Table) Contains(query string) bool {
	id, err := tb.Lookup(query)
	return err == nil && id != kwfsm.NotAKeyword
}

// walkTerminated follows letter slots to the node spelling query, then reads
// that node's end-of-word slot.
func (tb *Table) walkTerminated(query string) int {
	next := int32(0)
	for i := 0; i < len(query); i++ {
		next = tb.entries[next+int32(query[i]-'a')+1]
		if next <= 0 {
			// letter slots never hold terminals in a valid table
			return kwfsm.NotAKeyword
		}
	}
	if end := tb.entries[next]; end < 0 {
		return int(-end)
	}
	return kwfsm.NotAKeyword
}

// walkUnterminated follows letter slots until it reads a terminal. The match
// only counts if the terminal was read for the last byte of query.
func (tb *Table) walkUnterminated(query string) int {
	next := int32(0)
	last := len(query) - 1
	for i := 0; i <= last; i++ {
		next = tb.entries[next+int32(query[i]-'a')]
		switch {
		case next == 0:
			return kwfsm.NotAKeyword
		case next < 0:
			if i != last {
				// query runs past the end of a keyword
				return kwfsm.NotAKeyword
			}
			return int(-next)
		}
	}
	// query is a strict prefix of a keyword
	return kwfsm.NotAKeyword
}
