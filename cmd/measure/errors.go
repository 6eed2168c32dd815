package measure

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks a malformed row or field.
	ErrParse = errors.New("parse error")
	// ErrDataIntegrity marks rows that parse but break the cycle invariants.
	ErrDataIntegrity = errors.New("data integrity error")
	// ErrIO marks a file that could not be opened or read.
	ErrIO = errors.New("io error")
)

var (
	errEmpty         = errors.New("empty field")
	errMissingColumn = errors.New("missing column")
	errNotPair       = errors.New("not a bracketed pair")
	errPairArity     = errors.New("pair must have exactly two elements")
	errTooShort      = errors.New("too short to carry a unit suffix")
)

// ParseError reports the line and column of a field that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// DataIntegrityError reports a row that breaks the sample-order or cycle
// closure invariant. Row is 1-based.
type DataIntegrityError struct {
	Row    int
	Field  string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Row == 0 {
		return "data integrity: " + e.Reason
	}
	return fmt.Sprintf("data integrity: row %d, %s: %s", e.Row, e.Field, e.Reason)
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }

// IOError wraps a failure to open or read a measurement file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }
