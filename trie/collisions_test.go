package trie

import (
	"testing"

	"github.com/betterleaks/kwfsm"
	"github.com/stretchr/testify/assert"
)

func TestPrefixCollisions(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  []Collision
	}{
		{
			name:  "none",
			words: []string{"cat", "dog", "at"},
		},
		{
			name:  "empty",
			words: nil,
		},
		{
			name:  "substring is not a prefix",
			words: []string{"scat", "cat"},
		},
		{
			name:  "single pair",
			words: []string{"else", "elsewhere"},
			want: []Collision{
				{Prefix: kwfsm.Keyword{Word: "else", ID: 1}, Word: kwfsm.Keyword{Word: "elsewhere", ID: 2}},
			},
		},
		{
			name:  "chain",
			words: []string{"ask", "a", "as"},
			want: []Collision{
				{Prefix: kwfsm.Keyword{Word: "a", ID: 2}, Word: kwfsm.Keyword{Word: "ask", ID: 1}},
				{Prefix: kwfsm.Keyword{Word: "as", ID: 3}, Word: kwfsm.Keyword{Word: "ask", ID: 1}},
				{Prefix: kwfsm.Keyword{Word: "a", ID: 2}, Word: kwfsm.Keyword{Word: "as", ID: 3}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrefixCollisions(tt.words))
		})
	}
}

// Every list PrefixCollisions accepts must build as unterminated.
func TestPrefixCollisionsAgreesWithInsert(t *testing.T) {
	lists := [][]string{
		{"if", "int", "else"},
		{"in", "int"},
		{"for", "fo"},
		{"cat", "dog", "do"},
	}
	for _, words := range lists {
		_, err := Build(kwfsm.Unterminated, words)
		if len(PrefixCollisions(words)) == 0 {
			assert.NoError(t, err, "%v", words)
		} else {
			assert.ErrorIs(t, err, kwfsm.ErrPrefixCollision, "%v", words)
		}
	}
}
