//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include "skylight.h"

static uintptr_t sw_ax_create_with_token(uint8_t *bytes, int length) {
    CFDataRef data = CFDataCreate(NULL, bytes, length);
    if (data == NULL) return 0;
    AXUIElementRef el = _AXUIElementCreateWithRemoteToken(data);
    CFRelease(data);
    return (uintptr_t)el;
}

static int sw_ax_window_id(uintptr_t ref, uint32_t *wid) {
    return (int)_AXUIElementGetWindow((AXUIElementRef)ref, wid);
}

static int sw_ax_subrole(uintptr_t ref, char **out) {
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue((AXUIElementRef)ref, kAXSubroleAttribute, &value);
    if (err != kAXErrorSuccess) return (int)err;
    *out = sw_copy_utf8(value);
    if (value != NULL) CFRelease(value);
    return 0;
}

static int sw_ax_raise(uintptr_t ref) {
    return (int)AXUIElementPerformAction((AXUIElementRef)ref, kAXRaiseAction);
}

static void sw_ax_release(uintptr_t ref) {
    if (ref != 0) CFRelease((CFTypeRef)ref);
}

static int sw_ax_trusted(void) {
    return AXIsProcessTrusted() ? 1 : 0;
}

static int sw_ax_set_messaging_timeout(float seconds) {
    AXUIElementRef sys = AXUIElementCreateSystemWide();
    AXError err = AXUIElementSetMessagingTimeout(sys, seconds);
    CFRelease(sys);
    return (int)err;
}
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/mj1618/switcheroo/internal/platform"
	"github.com/pkg/errors"
)

// DarwinAccessibility implements platform.Accessibility using the macOS
// accessibility API.
type DarwinAccessibility struct{}

var _ platform.Accessibility = (*DarwinAccessibility)(nil)

// NewAccessibility creates a new macOS accessibility backend.
func NewAccessibility() *DarwinAccessibility {
	return &DarwinAccessibility{}
}

func (a *DarwinAccessibility) ElementForToken(token []byte) (platform.Element, bool) {
	if len(token) == 0 {
		return nil, false
	}
	ref := C.sw_ax_create_with_token((*C.uint8_t)(unsafe.Pointer(&token[0])), C.int(len(token)))
	if ref == 0 {
		return nil, false
	}
	return &axElement{ref: ref}, true
}

func (a *DarwinAccessibility) Trusted() bool {
	return C.sw_ax_trusted() != 0
}

func (a *DarwinAccessibility) SetMessagingTimeout(seconds float64) error {
	if rc := C.sw_ax_set_messaging_timeout(C.float(seconds)); rc != 0 {
		return errors.Errorf("AXUIElementSetMessagingTimeout: AXError %d", int(rc))
	}
	return nil
}

// axElement owns one retain on an AXUIElementRef.
type axElement struct {
	mu  sync.Mutex
	ref C.uintptr_t
}

var _ platform.Element = (*axElement)(nil)

var errReleased = errors.New("element already released")

func (e *axElement) WindowID() (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ref == 0 {
		return 0, errReleased
	}
	var wid C.uint32_t
	if rc := C.sw_ax_window_id(e.ref, &wid); rc != 0 {
		return 0, errors.Errorf("_AXUIElementGetWindow: AXError %d", int(rc))
	}
	return uint32(wid), nil
}

func (e *axElement) Subrole() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ref == 0 {
		return "", errReleased
	}
	var cstr *C.char
	if rc := C.sw_ax_subrole(e.ref, &cstr); rc != 0 {
		return "", errors.Errorf("AXSubrole: AXError %d", int(rc))
	}
	if cstr == nil {
		return "", nil
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), nil
}

func (e *axElement) Raise() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ref == 0 {
		return errReleased
	}
	if rc := C.sw_ax_raise(e.ref); rc != 0 {
		return errors.Errorf("AXRaise: AXError %d", int(rc))
	}
	return nil
}

func (e *axElement) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ref == 0 {
		return
	}
	C.sw_ax_release(e.ref)
	e.ref = 0
}
