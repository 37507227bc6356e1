// Package langerr defines the closed error-kind taxonomy shared by both
// evaluators, the compiler, the serializer, and the host dispatcher.
package langerr

import "fmt"

// Kind is one of the closed set of error kinds in spec §7.
type Kind string

const (
	SyntaxError      Kind = "SyntaxError"
	UndefinedSymbol  Kind = "UndefinedSymbol"
	ArityError       Kind = "ArityError"
	TypeError        Kind = "TypeError"
	ZeroDivision     Kind = "ZeroDivision"
	HostError        Kind = "HostError"
	GasExhausted     Kind = "GasExhausted"
	MemoryExhausted  Kind = "MemoryExhausted"
	TimeExhausted    Kind = "TimeExhausted"
	StackOverflow    Kind = "StackOverflow"
	InvalidProgram   Kind = "InvalidProgram"
	PreludeMismatch  Kind = "PreludeMismatch"
)

// catchable records, per kind, whether try may catch it (spec §7 table).
var catchable = map[Kind]bool{
	SyntaxError:     true,
	UndefinedSymbol: true,
	ArityError:      true,
	TypeError:       true,
	ZeroDivision:    true,
	HostError:       true,
	GasExhausted:    false,
	MemoryExhausted: false,
	TimeExhausted:   false,
	StackOverflow:   false,
	InvalidProgram:  false,
	PreludeMismatch: false,
}

// Error is the single error type raised by every package in this module.
// Details carries kind-specific structured data (e.g. a HostError's
// {type,message,details} envelope fields).
type Error struct {
	Kind    Kind
	Message string
	Details any
}

// New constructs an *Error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured Details to an existing error.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Catchable reports whether this error's kind may be caught by try. Kinds
// not present in the table (should not occur) default to uncatchable.
func (e *Error) Catchable() bool {
	return catchable[e.Kind]
}

// As extracts a *Error from err, mirroring errors.As without importing it
// at every call site.
func As(err error) (*Error, bool) {
	le, ok := err.(*Error)
	return le, ok
}
