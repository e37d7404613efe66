package kwfsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKeyword(t *testing.T) {
	assert.NoError(t, ValidateKeyword("a"))
	assert.NoError(t, ValidateKeyword("package"))

	tests := map[string]string{
		"":     "empty keyword",
		"If":   `"If" has 'I' at offset 0`,
		"int8": `"int8" has '8' at offset 3`,
		"a b":  `"a b" has ' ' at offset 1`,
	}
	for in, msg := range tests {
		err := ValidateKeyword(in)
		assert.ErrorIs(t, err, ErrInvalidKeyword, in)
		assert.ErrorContains(t, err, msg, in)
	}
}

func TestIsLowerAlpha(t *testing.T) {
	assert.True(t, IsLowerAlpha("else"))
	assert.False(t, IsLowerAlpha(""))
	assert.False(t, IsLowerAlpha("else_"))
	assert.False(t, IsLowerAlpha("é"))
}

func TestResultMatched(t *testing.T) {
	assert.True(t, Result{Query: "if", ID: 1}.Matched())
	assert.False(t, Result{Query: "in"}.Matched())
	assert.False(t, Result{Query: "In", Invalid: true}.Matched())
}
