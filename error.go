package rdbc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is the single opaque error kind the core contract uses throughout:
// a human-readable message, constructible from any error. Adapters
// stringify foreign errors at their boundary; the core never inspects an
// Error's structure, it only surfaces it to the caller. Unwrap is still
// provided so a caller who already knows an adapter's sentinel errors can
// use errors.Is/errors.As against the wrapped cause.
type Error struct {
	msg   string
	cause error
}

// NewError builds an Error from a message, with no foreign cause: Unwrap
// returns a pkg/errors value carrying the same message and a stack trace.
func NewError(msg string) *Error {
	return &Error{msg: msg, cause: errors.New(msg)}
}

// Errorf builds an Error from a format string, in the manner of
// fmt.Errorf.
func Errorf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{msg: msg, cause: errors.New(msg)}
}

// WrapError builds an Error from any foreign error, attaching a stack trace
// at the point of wrapping via pkg/errors so adapters keep enough context
// to debug a failure without the core parsing it.
func WrapError(err error, context string) *Error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, context)
	return &Error{msg: wrapped.Error(), cause: wrapped}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// ErrAlreadyConsumed and the others below are error messages that callers
// match on literally; adapters construct them with Errorf so every backend
// phrases them the same way.
func ErrAlreadyConsumed(index int) error {
	return Errorf("column %d: already consumed", index)
}

func ErrColumnOutOfRange(index, columnLen int) error {
	return Errorf("column index %d out of range (row has %d columns)", index, columnLen)
}

func ErrConnDrop() error {
	return Errorf("conn is drop")
}

func ErrTimedOut() error {
	return Errorf("timed out in the connection pool")
}
