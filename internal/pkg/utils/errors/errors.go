// Package errors provides error composition helpers used across the project:
// simple constructors, a MultiError container and prefix-based nesting.
package errors

import (
	stderrors "errors"
	"fmt"
)

func New(msg string) error {
	return stderrors.New(msg)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PrefixError wraps err under a prefix message.
// The prefix and the wrapped error are rendered as a bullet list, see Format.
func PrefixError(err error, prefix string) error {
	return &nestedError{main: New(prefix), err: err}
}

func PrefixErrorf(err error, format string, a ...any) error {
	return &nestedError{main: Errorf(format, a...), err: err}
}

// nestedError is a main error with one wrapped sub-error.
type nestedError struct {
	main error
	err  error
}

func (e *nestedError) Error() string {
	return Format(e)
}

func (e *nestedError) MainError() error {
	return e.main
}

func (e *nestedError) WrappedErrors() []error {
	return []error{e.err}
}

func (e *nestedError) Unwrap() error {
	return e.err
}
