// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package try provides deferred helpers for folding panics and
// close failures into a function's returned error.
package try

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// PanicError is returned in place of a recovered panic.
type PanicError struct {
	Value any

	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

// Error implements the [error] interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("recovered from panic: %v", e.Value)
}

// Unwrap returns the panic value if it was itself an error.
func (e PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recover must be deferred. A recovered panic is joined with
// whatever error the surrounding function was already returning.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	join(err, PanicError{
		Value: r,
		Stack: debug.Stack(),
	})
}

// CloseError wraps the failure of an [io.Closer].
type CloseError struct {
	Cause error
}

// Error implements the [error] interface.
func (e CloseError) Error() string {
	return fmt.Sprintf("failed to close: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e CloseError) Unwrap() error {
	return e.Cause
}

// Close must be deferred. A failure to close c is joined into err
// as a [CloseError].
func Close(err *error, c io.Closer) {
	CloseWith(err, c, func(cause error) error {
		return CloseError{Cause: cause}
	})
}

// CloseWith is like [Close] but lets wrap describe the failure, so
// callers can keep close failures within their own error types.
func CloseWith(err *error, c io.Closer, wrap func(error) error) {
	if c == nil {
		return
	}

	cerr := c.Close()
	if cerr == nil {
		return
	}
	join(err, wrap(cerr))
}

func join(err *error, e error) {
	if *err == nil {
		*err = e
		return
	}
	*err = errors.Join(*err, e)
}
