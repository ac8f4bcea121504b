// Package guierr defines the error kinds shared by every cegui package.
//
// Errors are ordinary wrapped errors; callers classify them with errors.Is
// against the sentinels below.
package guierr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means the caller violated a precondition.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownObject means a name-based lookup found nothing.
	ErrUnknownObject = errors.New("unknown object")
	// ErrRenderer means the renderer module reported a failure.
	ErrRenderer = errors.New("renderer error")
	// ErrGeneric covers I/O and parse failures in the resource layer.
	ErrGeneric = errors.New("generic error")
)

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

func InvalidRequest(format string, args ...any) error {
	return wrap(ErrInvalidRequest, format, args...)
}

func UnknownObject(format string, args ...any) error {
	return wrap(ErrUnknownObject, format, args...)
}

func Renderer(format string, args ...any) error {
	return wrap(ErrRenderer, format, args...)
}

// Generic wraps cause (which may be nil) as an ErrGeneric failure.
func Generic(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrGeneric, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrGeneric, msg, cause)
}

// KindOf returns the sentinel err was built from, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrInvalidRequest, ErrUnknownObject, ErrRenderer, ErrGeneric} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
