package switcher

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailure means a window-server enumeration call returned an
	// invalid result. It aborts the current refresh.
	ErrQueryFailure = errors.New("window server query failed")

	// ErrBoundsUnavailable means a qualifying window carried no usable bounds.
	ErrBoundsUnavailable = fmt.Errorf("%w: window bounds unavailable", ErrQueryFailure)

	ErrProcessResolution = errors.New("process serial number lookup failed")
	ErrFrontProcess      = errors.New("set front process failed")
	ErrKeyWindow         = errors.New("key window event rejected")

	// ErrUnresolved means the window has no control handle yet. It is
	// transient; a later refresh may resolve it.
	ErrUnresolved = errors.New("window not focusable yet")

	ErrUnknownWindow     = errors.New("window not in inventory")
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrUnsupportedDepth  = errors.New("unsupported icon bit depth")
)

// wrap attaches the OS cause to one of the sentinel kinds above, so that
// errors.Is matches both.
func wrap(kind error, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w: %s: %w", kind, msg, cause)
}
