// Package errs defines the error classes every stage of the pipeline reports.
// All of them abort a run; callers tell them apart with errors.Is.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound reports a missing corpus root, asset or model file.
	ErrNotFound = errors.New("not found")

	// ErrIO reports an unreadable file or a failed write.
	ErrIO = errors.New("i/o failure")

	// ErrData reports an empty corpus, a degenerate split or a bad option.
	ErrData = errors.New("invalid data")
)

// classified carries the error class next to the underlying cause.
type classified struct {
	class error
	cause error
	msg   string
}

func (c *classified) Error() string {
	if c.cause == nil {
		return c.msg + ": " + c.class.Error()
	}
	return c.msg + ": " + c.class.Error() + ": " + c.cause.Error()
}

// Is lets errors.Is match the class sentinel.
func (c *classified) Is(target error) bool {
	return target == c.class
}

// Unwrap exposes the underlying cause.
func (c *classified) Unwrap() error {
	return c.cause
}

// Cause exposes the underlying cause to errors.Cause.
func (c *classified) Cause() error {
	if c.cause == nil {
		return c.class
	}
	return c.cause
}

func classify(class, cause error, format string, args []interface{}) error {
	return errors.WithStack(&classified{
		class: class,
		cause: cause,
		msg:   fmt.Sprintf(format, args...),
	})
}

// NotFound wraps err (which may be nil) as ErrNotFound.
func NotFound(err error, format string, args ...interface{}) error {
	return classify(ErrNotFound, err, format, args)
}

// IO wraps err (which may be nil) as ErrIO.
func IO(err error, format string, args ...interface{}) error {
	return classify(ErrIO, err, format, args)
}

// Data builds an ErrData error.
func Data(format string, args ...interface{}) error {
	return classify(ErrData, nil, format, args)
}
