package kwfsm

// Result is the outcome of looking up one query.
type Result struct {
	Query string `json:"query"`

	// ID is the matched keyword identifier, or NotAKeyword.
	ID int `json:"id"`

	// Invalid is set when the query contains bytes outside 'a'..'z'. ID is
	// always NotAKeyword in that case.
	Invalid bool `json:"invalid,omitempty"`
}

// Matched reports whether the query is a keyword.
func (r Result) Matched() bool {
	return r.ID != NotAKeyword
}

// Occurrence is a keyword found while scanning text.
type Occurrence struct {
	Keyword

	// Path of the scanned resource ("stdin" for standard input).
	Path string `json:"path"`

	// 1-based line and byte column of the first character.
	Line   int `json:"line"`
	Column int `json:"column"`

	// LineText is the full line the keyword was found on.
	LineText string `json:"-"`
}
