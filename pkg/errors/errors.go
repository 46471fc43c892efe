// Package errors provides a sentinel error type that can wrap a cause,
// so that status packages may declare matchable constants without
// resorting to fmt.Errorf("%w", err) at every call site.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New builds an Error carrying a fixed message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// Unlike github.com/pkg/errors this wraps errors with errors, not with
// text: the sentinel stays matchable with errors.Is while keeping its
// cause available through Unwrap.
type Error struct {
	msg string
	err error
}

// Error message
func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a cause under this sentinel. The receiver is not mutated: a copy
// is returned, so package-level sentinels stay pristine.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err}
}

// Wrapf wraps a formatted cause under this sentinel.
func (e *Error) Wrapf(format string, args ...interface{}) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is reports whether this error matches target, directly or because
// target is the sentinel this error was derived from with Wrap.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	if o, ok := target.(*Error); ok {
		return e.msg == o.msg
	}
	return false
}

// As finds the first error in err's chain that matches target
// (a shortcut to the standard library errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard library errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
