package switcher

import (
	"github.com/mj1618/switcheroo/internal/logger"
	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
)

// frontProcessUserGenerated brings the process forward as if the user had
// clicked it, without making unrelated windows key.
const frontProcessUserGenerated uint32 = 0x200

// Target is a window borrowed from the inventory for one focus operation.
type Target struct {
	Window model.Window
	PID    int
	Handle platform.Element
}

// Focuser brings windows to the foreground. It holds no state between calls.
type Focuser struct {
	ws  platform.WindowServer
	wsp platform.Workspace
	log *logger.Logger
}

// NewFocuser creates a focuser over the given backends.
func NewFocuser(ws platform.WindowServer, wsp platform.Workspace, log *logger.Logger) *Focuser {
	if log == nil {
		log = logger.Nop()
	}
	return &Focuser{ws: ws, wsp: wsp, log: log}
}

// Focus makes the target window key and frontmost, switching space if needed,
// and moves the pointer to its center. It stops at the first failing step and
// does not undo earlier steps.
func (f *Focuser) Focus(t Target) error {
	wid := t.Window.ID
	if t.Handle == nil {
		return wrap(ErrUnresolved, nil, "window %d", wid)
	}

	psn, err := f.ws.ProcessForPID(t.PID)
	if err != nil {
		return wrap(ErrProcessResolution, err, "pid %d", t.PID)
	}

	if err := f.ws.SetFrontProcess(psn, wid, frontProcessUserGenerated); err != nil {
		return wrap(ErrFrontProcess, err, "pid %d window %d", t.PID, wid)
	}

	record := NewKeyWindowRecord(wid)
	if err := f.ws.PostEventRecord(psn, record.Bytes()); err != nil {
		return wrap(ErrKeyWindow, err, "window %d down", wid)
	}
	record.SetFlavor(FlavorUp)
	if err := f.ws.PostEventRecord(psn, record.Bytes()); err != nil {
		return wrap(ErrKeyWindow, err, "window %d up", wid)
	}

	// Activation does not switch spaces; only the accessibility raise does.
	if active := f.ws.ActiveSpace(); active == t.Window.Space.ID {
		if err := f.wsp.ActivateApp(t.PID); err != nil {
			f.log.Warn("activate application failed", err, "pid", t.PID)
		}
	} else {
		if err := t.Handle.Raise(); err != nil {
			f.log.Warn("raise failed", err, "window", wid, "space", t.Window.Space.ID, "active_space", active)
		}
	}

	f.warpTo(t.Window)
	return nil
}

func (f *Focuser) warpTo(w model.Window) {
	bounds, err := f.ws.WindowBounds(w.ID)
	if err != nil || bounds.Empty() {
		bounds = w.Bounds
	}
	x, y := bounds.Center()
	if err := f.ws.WarpCursor(x, y); err != nil {
		f.log.Debug("warp cursor failed", "window", w.ID, "error", err.Error())
	}
}
