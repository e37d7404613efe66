package kwfsm

import "errors"

var (
	// ErrInvalidKeyword is returned for empty keywords or keywords containing
	// bytes outside 'a'..'z'.
	ErrInvalidKeyword = errors.New("kwfsm: invalid keyword")

	// ErrDuplicateKeyword is returned when the same keyword is inserted twice.
	ErrDuplicateKeyword = errors.New("kwfsm: duplicate keyword")

	// ErrPrefixCollision is returned by the unterminated variant when one
	// keyword is a strict prefix of another.
	ErrPrefixCollision = errors.New("kwfsm: keyword is a prefix of another keyword")

	// ErrInvalidQuery is returned by lookups for input outside 'a'..'z'. It is
	// distinct from "not a keyword", which is the zero identifier.
	ErrInvalidQuery = errors.New("kwfsm: invalid query")

	// ErrBadFormat is returned for tables that violate the block layout or
	// persisted data that cannot be decoded.
	ErrBadFormat = errors.New("kwfsm: bad table format")
)
