// Package driver opens isolated browser sessions against the translator and
// exposes the three capabilities the harness needs: navigate, fill the input
// control, and read the page text.
package driver

import (
	"context"
	"errors"
	"fmt"
)

// Driver opens isolated sessions
type Driver interface {
	Open(ctx context.Context) (Session, error)
	Close() error
}

// Session is one isolated browsing context holding a single page
type Session interface {
	Navigate(ctx context.Context, url string) error
	FillInput(ctx context.Context, selector, text string) error
	ReadPageText(ctx context.Context) (string, error)
	Close() error
}

// Operation names carried by Error
const (
	OpOpen     = "open"
	OpNavigate = "navigate"
	OpFill     = "fill"
	OpRead     = "read"
	OpSettle   = "settle"
)

// Error is a navigation, injection or read failure. It is fatal to the case
// that hit it and is reported apart from translation mismatches.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("driver %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as a driver Error for op. Errors that already are driver
// errors are returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsDriverError reports whether err is or wraps a driver Error
func IsDriverError(err error) bool {
	var de *Error
	return errors.As(err, &de)
}
