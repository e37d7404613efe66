package fsm

import (
	"strings"
	"testing"

	"github.com/betterleaks/kwfsm"
	"github.com/lucasjones/reggen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		variant kwfsm.Variant
		words   []string
		queries map[string]int
	}{
		{
			name:    "terminated scenario",
			variant: kwfsm.Terminated,
			words:   []string{"if", "int", "else"},
			queries: map[string]int{
				"if": 1, "int": 2, "else": 3,
				"in": 0, "elsewhere": 0, "i": 0, "": 0, "x": 0, "iff": 0, "intx": 0,
			},
		},
		{
			name:    "terminated sub-keywords",
			variant: kwfsm.Terminated,
			words:   []string{"a", "as"},
			queries: map[string]int{"a": 1, "as": 2, "ass": 0, "s": 0, "": 0},
		},
		{
			name:    "terminated single character",
			variant: kwfsm.Terminated,
			words:   []string{"z"},
			queries: map[string]int{"z": 1, "zz": 0, "a": 0},
		},
		{
			name:    "unterminated scenario",
			variant: kwfsm.Unterminated,
			words:   []string{"cat", "dog"},
			queries: map[string]int{
				"cat": 1, "dog": 2,
				"ca": 0, "catx": 0, "c": 0, "do": 0, "dogs": 0, "": 0, "bat": 0,
			},
		},
		{
			name:    "unterminated single character",
			variant: kwfsm.Unterminated,
			words:   []string{"a", "b"},
			queries: map[string]int{"a": 1, "b": 2, "ab": 0, "c": 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := Compile(tt.variant, tt.words)
			require.NoError(t, err)
			for q, want := range tt.queries {
				got, err := tb.Lookup(q)
				require.NoError(t, err, q)
				assert.Equal(t, want, got, "Lookup(%q)", q)
				assert.Equal(t, want != 0, tb.Contains(q), "Contains(%q)", q)
			}
		})
	}
}

func TestLookupInvalidQuery(t *testing.T) {
	for _, v := range []kwfsm.Variant{kwfsm.Terminated, kwfsm.Unterminated} {
		tb, err := Compile(v, []string{"cat", "dog"})
		require.NoError(t, err)

		for _, q := range []string{"Cat", "cat!", "c4t", "dog ", "catx9", "zz{", "ü", "\x00"} {
			id, err := tb.Lookup(q)
			assert.ErrorIs(t, err, kwfsm.ErrInvalidQuery, "%s %q", v, q)
			assert.Zero(t, id)
			assert.False(t, tb.Contains(q))
		}
	}
}

func TestLookupIdempotent(t *testing.T) {
	tb, err := Compile(kwfsm.Terminated, []string{"if", "int", "else"})
	require.NoError(t, err)
	before := append([]int32(nil), tb.Entries()...)
	for i := 0; i < 3; i++ {
		id, err := tb.Lookup("int")
		require.NoError(t, err)
		assert.Equal(t, 2, id)
	}
	assert.Equal(t, before, tb.Entries())
}

// prefixFree drops duplicates and any word that has another kept word as a
// prefix, keeping input order.
func prefixFree(words []string) []string {
	byLen := append([]string(nil), words...)
	kept := make(map[string]bool, len(words))
	for l := 1; len(kept) < len(words) && l <= 64; l++ {
		for _, w := range byLen {
			if len(w) != l || kept[w] {
				continue
			}
			ok := true
			for i := 1; i < len(w); i++ {
				if kept[w[:i]] {
					ok = false
					break
				}
			}
			if ok {
				kept[w] = true
			}
		}
	}
	out := make([]string, 0, len(kept))
	seen := make(map[string]bool, len(kept))
	for _, w := range words {
		if kept[w] && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func randomWords(t *testing.T, pattern string, n int) []string {
	t.Helper()
	g, err := reggen.NewGenerator(pattern)
	require.NoError(t, err)
	seen := make(map[string]bool, n)
	var out []string
	for len(out) < n {
		w := g.Generate(8)
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func TestLookupRandomLists(t *testing.T) {
	for round := 0; round < 20; round++ {
		words := randomWords(t, "[a-z]{1,7}", 300)
		queries := randomWords(t, "[a-e]{1,4}", 200)

		t.Run("terminated", func(t *testing.T) {
			tb, err := Compile(kwfsm.Terminated, words)
			require.NoError(t, err)
			checkMembers(t, tb, words, queries)
		})
		t.Run("unterminated", func(t *testing.T) {
			free := prefixFree(words)
			tb, err := Compile(kwfsm.Unterminated, free)
			require.NoError(t, err)
			checkMembers(t, tb, free, queries)
		})
	}
}

func checkMembers(t *testing.T, tb *Table, words, queries []string) {
	t.Helper()
	require.NoError(t, tb.Validate())
	ids := make(map[string]int, len(words))
	for i, w := range words {
		ids[w] = i + 1
		got, err := tb.Lookup(w)
		require.NoError(t, err)
		require.Equal(t, i+1, got, "Lookup(%q)", w)
	}
	for _, q := range queries {
		got, err := tb.Lookup(q)
		require.NoError(t, err)
		require.Equal(t, ids[q], got, "Lookup(%q)", q)
	}
	assert.Len(t, tb.Keywords(), len(words))
}

var benchID int

func BenchmarkLookup(b *testing.B) {
	words := strings.Fields("break case chan const continue default defer else fallthrough for func " +
		"go goto if import interface map package range return select struct switch type var")
	tb, err := Compile(kwfsm.Terminated, words)
	require.NoError(b, err)

	cases := []struct {
		name  string
		query string
	}{
		{"Short/Hit", "if"},
		{"Short/Miss", "in"},
		{"Long/Hit", "fallthrough"},
		{"Long/Miss", "fallthroughs"},
		{"Empty", ""},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				benchID, _ = tb.Lookup(tc.query)
			}
		})
	}
}
