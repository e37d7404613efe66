package trie

import (
	"cmp"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/betterleaks/kwfsm"
	"golang.org/x/exp/slices"
)

// Collision is a pair of keywords where Prefix is a strict prefix of Word.
// The unterminated variant cannot encode either keyword of such a pair.
type Collision struct {
	Prefix kwfsm.Keyword
	Word   kwfsm.Keyword
}

// PrefixCollisions reports every strict-prefix pair in words. Identifiers are
// assigned as Build would (words[i] gets i+1). The result is ordered by the
// longer keyword's identifier, then by prefix length.
func PrefixCollisions(words []string) []Collision {
	if len(words) == 0 {
		return nil
	}

	ids := make(map[string]int, len(words))
	for i, w := range words {
		if _, ok := ids[w]; !ok {
			ids[w] = i + 1
		}
	}

	ac := ahocorasick.NewTrieBuilder().AddStrings(words).Build()

	var out []Collision
	for i, w := range words {
		for _, m := range ac.MatchString(w) {
			// only matches anchored at the start and shorter than w
			if m.Pos() != 0 {
				continue
			}
			prefix := m.MatchString()
			if len(prefix) >= len(w) {
				continue
			}
			out = append(out, Collision{
				Prefix: kwfsm.Keyword{Word: prefix, ID: ids[prefix]},
				Word:   kwfsm.Keyword{Word: w, ID: i + 1},
			})
		}
	}

	slices.SortFunc(out, func(a, b Collision) int {
		if c := cmp.Compare(a.Word.ID, b.Word.ID); c != 0 {
			return c
		}
		return cmp.Compare(len(a.Prefix.Word), len(b.Prefix.Word))
	})
	return slices.CompactFunc(out, func(a, b Collision) bool { return a == b })
}
