// Package errors wraps errors with stack traces so fatal failures can be
// reported with the call site that produced them.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// WithStackTrace wraps err with a stack trace. An error that already
// carries one is returned unchanged. A nil error stays nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}
	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return err
	}
	return goerrors.Wrap(err, 1)
}

// Recover turns a recovered panic value into an error with the stack of the panic.
func Recover(r interface{}) error {
	return goerrors.Wrap(fmt.Errorf("internal panic: %v", r), 2)
}

// ErrorWithStackTrace returns the error message followed by its stack
// trace, or just the message when err carries no stack.
func ErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}
	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return err.Error() + "\n" + string(goErr.Stack())
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
