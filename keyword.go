package kwfsm

import "fmt"

// NotAKeyword is the identifier returned for strings outside the keyword set.
// Real keywords are numbered from 1.
const NotAKeyword = 0

// Keyword pairs a word with its 1-based identifier.
type Keyword struct {
	Word string `json:"word"`
	ID   int    `json:"id"`
}

// ValidateKeyword reports whether w can be compiled into a table.
func ValidateKeyword(w string) error {
	if w == "" {
		return fmt.Errorf("%w: empty keyword", ErrInvalidKeyword)
	}
	if i := invalidByte(w); i >= 0 {
		return fmt.Errorf("%w: %q has %q at offset %d (only a-z allowed)", ErrInvalidKeyword, w, w[i], i)
	}
	return nil
}

// IsLowerAlpha reports whether s is non-empty and made only of 'a'..'z'.
func IsLowerAlpha(s string) bool {
	return s != "" && invalidByte(s) < 0
}

func invalidByte(s string) int {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 'a' || c > 'z' {
			return i
		}
	}
	return -1
}
