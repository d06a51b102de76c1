package platform

import "github.com/mj1618/switcheroo/internal/model"

// WindowServer exposes the window-server queries and the low-level process
// and event primitives used to switch focus.
type WindowServer interface {
	// ManagedDisplaySpaces returns every display with its spaces, in the
	// order the window server reports them.
	ManagedDisplaySpaces() ([]ManagedDisplay, error)

	// WindowsOnSpace returns the ids of windows assigned to the space.
	WindowsOnSpace(spaceID uint64, options uint32) ([]uint32, error)

	// ActiveSpace returns the id of the space currently shown on the active display.
	ActiveSpace() uint64

	// OnScreenWindows returns the on-screen window list, desktop elements excluded.
	OnScreenWindows() ([]WindowInfo, error)

	// WindowBounds returns the current frame of a window.
	WindowBounds(windowID uint32) (model.Rect, error)

	ProcessForPID(pid int) (ProcessSerialNumber, error)
	SetFrontProcess(psn ProcessSerialNumber, windowID uint32, options uint32) error
	PostEventRecord(psn ProcessSerialNumber, record []byte) error
	WarpCursor(x, y float64) error
}

// Workspace exposes the running-application list.
type Workspace interface {
	RunningApps() ([]RunningApp, error)

	// AppIcon rasterizes the application's icon at size×size points.
	// It returns nil and no error when the application has no icon.
	AppIcon(pid int, size int) (*Bitmap, error)

	ActivateApp(pid int) error
}

// Accessibility creates accessibility control objects.
type Accessibility interface {
	// ElementForToken creates the element addressed by a remote token.
	// ok is false when no element exists for the token.
	ElementForToken(token []byte) (el Element, ok bool)

	// Trusted reports whether the process may use the accessibility API.
	Trusted() bool

	// SetMessagingTimeout bounds every accessibility call made by the process.
	SetMessagingTimeout(seconds float64) error
}

// Element is a reference-counted accessibility object. Release must be called
// exactly once when the element is no longer needed.
type Element interface {
	WindowID() (uint32, error)
	Subrole() (string, error)
	Raise() error
	Release()
}
