package loader

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned for lines that cannot be parsed.
var ErrMalformed = errors.New("malformed table")

// ParseError reports the line a table failed on.
//
// It matches ErrMalformed via errors.Is.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }
