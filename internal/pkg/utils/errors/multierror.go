package errors

import (
	"sync"
)

// MultiError is an ordered container for multiple errors.
// The zero value obtained from NewMultiError is ready to use and safe for
// concurrent Append calls.
type MultiError interface {
	error
	Len() int
	Append(errs ...error)
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
	WrappedErrors() []error
	// ErrorOrNil returns nil if the container is empty,
	// the only error if it contains exactly one, otherwise the container.
	ErrorOrNil() error
}

type multiError struct {
	lock   sync.Mutex
	errors []error
}

func NewMultiError() MultiError {
	return &multiError{}
}

func Append(err error, errs ...error) MultiError {
	out := &multiError{}
	if err != nil {
		out.Append(err)
	}
	out.Append(errs...)
	return out
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errors)
}

func (e *multiError) Append(errs ...error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, err := range errs {
		if err == nil {
			continue
		}
		// Flatten nested MultiError
		if v, ok := err.(*multiError); ok {
			e.errors = append(e.errors, v.WrappedErrors()...)
		} else {
			e.errors = append(e.errors, err)
		}
	}
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	e.Append(PrefixError(err, prefix))
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.Append(PrefixErrorf(err, format, a...))
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

func (e *multiError) Unwrap() []error {
	return e.WrappedErrors()
}

func (e *multiError) ErrorOrNil() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	switch len(e.errors) {
	case 0:
		return nil
	case 1:
		return e.errors[0]
	default:
		return e
	}
}

func (e *multiError) Error() string {
	return Format(e)
}
