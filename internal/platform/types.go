package platform

import (
	"fmt"

	"github.com/mj1618/switcheroo/internal/model"
)

// ActivationPolicy mirrors NSApplicationActivationPolicy.
type ActivationPolicy int

const (
	PolicyRegular ActivationPolicy = iota
	PolicyAccessory
	PolicyProhibited
)

func (p ActivationPolicy) String() string {
	switch p {
	case PolicyRegular:
		return "regular"
	case PolicyAccessory:
		return "accessory"
	case PolicyProhibited:
		return "prohibited"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// RunningApp is one entry of the running-application list.
type RunningApp struct {
	PID        int
	Name       string
	Policy     ActivationPolicy
	Terminated bool
}

// WindowInfo is one entry of the on-screen window list.
// Bounds is nil when the entry carried no usable bounds dictionary.
type WindowInfo struct {
	ID     uint32
	PID    int
	Layer  int
	Title  string
	Bounds *model.Rect
}

// ManagedSpace is a space as reported by the window server.
type ManagedSpace struct {
	ID   uint64
	Type model.SpaceType
}

// ManagedDisplay is a display and the spaces assigned to it.
type ManagedDisplay struct {
	Identifier string
	Spaces     []ManagedSpace
}

// ProcessSerialNumber is the legacy per-process token used by the
// window server's process calls.
type ProcessSerialNumber struct {
	High uint32
	Low  uint32
}

// Bitmap is a rasterized image in whatever layout the OS produced.
type Bitmap struct {
	Width        int
	Height       int
	BitsPerPixel int
	BytesPerRow  int
	Data         []byte
}

// RowStride returns BytesPerRow, or the packed stride when it is unset.
func (b *Bitmap) RowStride() int {
	if b.BytesPerRow > 0 {
		return b.BytesPerRow
	}
	return b.Width * b.BitsPerPixel / 8
}
