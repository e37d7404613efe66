// Package regexp lets keyword-list filters run on either the standard library
// engine or re2.
package regexp

import (
	"fmt"
	stdlib "regexp"

	gore2 "github.com/wasilibs/go-re2"
)

// engine is satisfied by both *stdlib.Regexp and *gore2.Regexp.
type engine interface {
	MatchString(s string) bool
	String() string
}

// Regexp wraps a compiled regular expression.
type Regexp struct{ e engine }

func (r *Regexp) MatchString(s string) bool {
	return r.e.MatchString(s)
}

func (r *Regexp) String() string {
	return r.e.String()
}

var currentEngine = "stdlib"

// Version returns the name of the active regex engine.
func Version() string { return currentEngine }

// SetEngine selects the engine used by subsequent Compile calls.
func SetEngine(name string) error {
	switch name {
	case "stdlib", "re2":
		currentEngine = name
		return nil
	default:
		return fmt.Errorf("regexp: unknown engine %q (expected stdlib or re2)", name)
	}
}

// Compile compiles str with the current engine.
func Compile(str string) (*Regexp, error) {
	var (
		impl engine
		err  error
	)
	if currentEngine == "re2" {
		impl, err = gore2.Compile(str)
	} else {
		impl, err = stdlib.Compile(str)
	}
	if err != nil {
		return nil, err
	}
	return &Regexp{e: impl}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(str string) *Regexp {
	r, err := Compile(str)
	if err != nil {
		panic("regexp: Compile(" + str + "): " + err.Error())
	}
	return r
}

// CompileAll compiles every pattern, naming the first one that fails.
func CompileAll(patterns []string) ([]*Regexp, error) {
	out := make([]*Regexp, 0, len(patterns))
	for _, p := range patterns {
		r, err := Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, r)
	}
	return out, nil
}
