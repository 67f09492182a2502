// Package fault defines the error taxonomy shared by every tool in this
// repository. A tool converts any failure into exactly one Error before it
// reaches the host boundary; the Kind tells the caller which stage failed
// without parsing message text.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the pipeline stage that produced it.
type Kind int

const (
	// InputMissing: no file, no query, or no parameters were supplied.
	InputMissing Kind = iota
	// ParseError: the input bytes could not be decoded (bad encoding,
	// corrupt spreadsheet container, zero worksheets).
	ParseError
	// SchemaError: parsed rows violate the declared schema.
	SchemaError
	// ConnectionError: the database could not be reached.
	ConnectionError
	// DatabaseError: a statement failed after the connection succeeded.
	DatabaseError
)

// String returns the stable machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case InputMissing:
		return "input_missing"
	case ParseError:
		return "parse_error"
	case SchemaError:
		return "schema_error"
	case ConnectionError:
		return "connection_error"
	case DatabaseError:
		return "database_error"
	}
	return "unknown"
}

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error renders the message, appending the cause when present.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// New builds an Error without a cause.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an underlying cause.
func Wrap(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, walking the wrap chain. The second
// return reports whether err (or anything it wraps) is a fault.Error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
