package fsm

import (
	"sort"
	"testing"

	"github.com/betterleaks/kwfsm"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sparse builds a table of n entries from the non-zero ones.
func sparse(n int, nonzero map[int]int32) []int32 {
	out := make([]int32, n)
	for i, v := range nonzero {
		out[i] = v
	}
	return out
}

func TestFlattenLayout(t *testing.T) {
	tests := []struct {
		name    string
		variant kwfsm.Variant
		words   []string
		want    []int32
	}{
		{
			name:    "terminated if int else",
			variant: kwfsm.Terminated,
			words:   []string{"if", "int", "else"},
			want: sparse(243, map[int]int32{
				9: 27, 33: 54, 54: -1, 41: 81, 101: 108, 108: -2,
				5: 135, 147: 162, 181: 189, 194: 216, 216: -3,
			}),
		},
		{
			name:    "terminated sub-keyword",
			variant: kwfsm.Terminated,
			words:   []string{"a", "as"},
			want:    sparse(81, map[int]int32{1: 27, 27: -1, 46: 54, 54: -2}),
		},
		{
			name:    "unterminated cat dog",
			variant: kwfsm.Unterminated,
			words:   []string{"cat", "dog"},
			want: sparse(130, map[int]int32{
				2: 26, 26: 52, 71: -1,
				3: 78, 92: 104, 110: -2,
			}),
		},
		{
			name:    "unterminated single letters",
			variant: kwfsm.Unterminated,
			words:   []string{"b", "a"},
			want:    sparse(26, map[int]int32{1: -1, 0: -2}),
		},
		{
			name:    "empty list",
			variant: kwfsm.Terminated,
			want:    make([]int32, 27),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := Compile(tt.variant, tt.words)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, tb.Entries()); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
			assert.Zero(t, tb.Len()%tt.variant.Slots())
			require.NoError(t, tb.Validate())
		})
	}
}

func TestFlattenDeterministic(t *testing.T) {
	words := []string{"break", "case", "chan", "const", "continue", "default", "defer", "else",
		"fallthrough", "for", "func", "go", "goto", "if", "import", "interface", "map",
		"package", "range", "return", "select", "struct", "switch", "type", "var"}
	a, err := Compile(kwfsm.Terminated, words)
	require.NoError(t, err)
	b, err := Compile(kwfsm.Terminated, words)
	require.NoError(t, err)
	assert.Equal(t, a.Entries(), b.Entries())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFlattenOrderChangesLayoutNotResults(t *testing.T) {
	a, err := Compile(kwfsm.Terminated, []string{"if", "int", "else"})
	require.NoError(t, err)
	b, err := Compile(kwfsm.Terminated, []string{"else", "if", "int"})
	require.NoError(t, err)

	assert.NotEqual(t, a.Entries(), b.Entries())
	assert.Equal(t, a.Len(), b.Len())
	for _, q := range []string{"if", "int", "else", "in", "elsewhere"} {
		ida, _ := a.Lookup(q)
		idb, _ := b.Lookup(q)
		assert.Equal(t, ida != 0, idb != 0, q)
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile(kwfsm.Unterminated, []string{"a", "as"})
	assert.ErrorIs(t, err, kwfsm.ErrPrefixCollision)

	_, err = Compile(kwfsm.Terminated, []string{"ok", "Bad"})
	assert.ErrorIs(t, err, kwfsm.ErrInvalidKeyword)
}

func TestValidate(t *testing.T) {
	good := MustNew(kwfsm.Terminated, sparse(81, map[int]int32{1: 27, 27: -1, 46: 54, 54: -2}))
	require.NotNil(t, good)

	tests := []struct {
		name    string
		variant kwfsm.Variant
		entries []int32
		wantMsg string
	}{
		{"empty", kwfsm.Terminated, nil, "0 entries"},
		{"ragged", kwfsm.Terminated, make([]int32, 28), "not a multiple of 27"},
		{"wrong variant", kwfsm.Unterminated, make([]int32, 27), "not a multiple of 26"},
		{"out of bounds", kwfsm.Unterminated, sparse(26, map[int]int32{4: 26}), "points to 26"},
		{"unaligned", kwfsm.Unterminated, sparse(52, map[int]int32{4: 27}), "points to 27"},
		{"root terminal", kwfsm.Terminated, sparse(27, map[int]int32{0: -1}), "root block"},
		{"terminal in letter slot", kwfsm.Terminated, sparse(27, map[int]int32{3: -1}), "letter slot 3"},
		{"transition in end slot", kwfsm.Terminated, sparse(54, map[int]int32{1: 27, 27: 27}), "end-of-word slot 27"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.variant, tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, kwfsm.ErrBadFormat)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	assert.Panics(t, func() { MustNew(kwfsm.Terminated, nil) })
}

func TestKeywordsAndStats(t *testing.T) {
	words := []string{"if", "int", "else", "i"}
	tb, err := Compile(kwfsm.Terminated, words)
	require.NoError(t, err)

	want := []kwfsm.Keyword{{Word: "if", ID: 1}, {Word: "int", ID: 2}, {Word: "else", ID: 3}, {Word: "i", ID: 4}}
	assert.Equal(t, want, tb.Keywords())

	st := tb.Stats()
	assert.Equal(t, kwfsm.Terminated, st.Variant)
	assert.Equal(t, 4, st.Keywords)
	assert.Equal(t, 9, st.Blocks)
	assert.Equal(t, 8, st.Transitions)
	assert.Equal(t, 4, st.MaxDepth)
	assert.Equal(t, tb.Len(), st.Entries)
	assert.Len(t, st.Fingerprint, 16)

	alt, err := Compile(kwfsm.Unterminated, []string{"cat", "dog"})
	require.NoError(t, err)
	assert.Equal(t, []kwfsm.Keyword{{Word: "cat", ID: 1}, {Word: "dog", ID: 2}}, alt.Keywords())
}

func TestFingerprintDependsOnVariant(t *testing.T) {
	// a 26*27 zero table is valid for both variants
	entries := make([]int32, 26*27)
	a := MustNew(kwfsm.Terminated, entries)
	b := MustNew(kwfsm.Unterminated, entries)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestKeywordsRoundTrip(t *testing.T) {
	words := []string{"zeta", "alpha", "beta", "gamma", "delta"}
	tb, err := Compile(kwfsm.Unterminated, words)
	require.NoError(t, err)

	got := tb.Keywords()
	require.Len(t, got, len(words))
	ids := make([]int, 0, len(got))
	for _, kw := range got {
		assert.Equal(t, words[kw.ID-1], kw.Word)
		ids = append(ids, kw.ID)
	}
	assert.True(t, sort.IntsAreSorted(ids))
}
