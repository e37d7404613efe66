package kwfsm

import (
	"fmt"
	"strings"
)

// Variant selects the table encoding. Tables built with one variant are never
// valid input to the other variant's walker.
type Variant uint8

const (
	// Terminated reserves slot 0 of every block for an end-of-word marker, so
	// a keyword may be a strict prefix of another keyword.
	Terminated Variant = iota
	// Unterminated stores the terminal directly in the letter slot of the
	// keyword's last character. No keyword may prefix another.
	Unterminated
)

const (
	alphabetSize = 26

	TerminatedSlots   = alphabetSize + 1
	UnterminatedSlots = alphabetSize
)

// Slots returns N, the number of table entries in one node block.
func (v Variant) Slots() int {
	if v == Unterminated {
		return UnterminatedSlots
	}
	return TerminatedSlots
}

// Slot maps a letter 'a'..'z' to its index within a block: 1..26 for
// Terminated, 0..25 for Unterminated. ok is false for any other byte.
func (v Variant) Slot(c byte) (slot int, ok bool) {
	if c < 'a' || c > 'z' {
		return 0, false
	}
	slot = int(c - 'a')
	if v != Unterminated {
		slot++
	}
	return slot, true
}

// Letter is the inverse of Slot.
func (v Variant) Letter(slot int) (byte, bool) {
	if v != Unterminated {
		slot--
	}
	if slot < 0 || slot >= alphabetSize {
		return 0, false
	}
	return byte('a' + slot), true
}

// EndSlot returns the end-of-word slot index. Only Terminated has one.
func (v Variant) EndSlot() (int, bool) {
	if v == Unterminated {
		return 0, false
	}
	return 0, true
}

func (v Variant) String() string {
	switch v {
	case Terminated:
		return "terminated"
	case Unterminated:
		return "unterminated"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant accepts "terminated" (or "27") and "unterminated" (or "26",
// "alt"), case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terminated", "27", "":
		return Terminated, nil
	case "unterminated", "26", "alt":
		return Unterminated, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (expected terminated or unterminated)", s)
	}
}

// VariantForSlots returns the variant whose block size is n.
func VariantForSlots(n int) (Variant, error) {
	switch n {
	case TerminatedSlots:
		return Terminated, nil
	case UnterminatedSlots:
		return Unterminated, nil
	default:
		return 0, fmt.Errorf("%w: no variant uses %d slots per block", ErrBadFormat, n)
	}
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
