package psdwriter

import (
	"fmt"

	"github.com/pkg/errors"
)

// argumentError reports that a public call received a value outside the
// range spec.md assigns it. It always maps to StatusInvalidArgument.
type argumentError string

func (e argumentError) Error() string {
	return fmt.Sprintf("psdwriter: invalid argument: %s", string(e))
}

// wrappedError pairs a package sentinel with the underlying cause, so a
// caller can classify the failure with errors.Is(err, ErrFileWrite) while
// still recovering the real error (e.g. a *fs.PathError) via errors.As.
type wrappedError struct {
	sentinel error
	cause    error
}

// wrapSentinel attaches a stack trace to cause and pairs it with sentinel.
func wrapSentinel(sentinel, cause error) error {
	return &wrappedError{sentinel: sentinel, cause: errors.WithStack(cause)}
}

func (e *wrappedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *wrappedError) Unwrap() error { return e.cause }

func (e *wrappedError) Is(target error) bool { return target == e.sentinel }

// clampInt restricts v to [lo, hi] inclusive.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
