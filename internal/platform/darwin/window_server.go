//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework CoreGraphics -F/System/Library/PrivateFrameworks -framework SkyLight
#include "skylight.h"

typedef struct {
    uint64_t id;
    int type;
} SWSpace;

typedef struct {
    char *identifier;
    SWSpace *spaces;
    int spaceCount;
} SWDisplay;

typedef struct {
    uint32_t id;
    int32_t pid;
    int32_t layer;
    char *title;
    int hasBounds;
    double x, y, width, height;
} SWWindowInfo;

static void sw_free_displays(SWDisplay *displays, int count) {
    if (displays == NULL) return;
    for (int i = 0; i < count; i++) {
        free(displays[i].identifier);
        free(displays[i].spaces);
    }
    free(displays);
}

static int sw_managed_display_spaces(SWDisplay **out, int *count) {
    CFArrayRef displays = SLSCopyManagedDisplaySpaces(SLSMainConnectionID());
    if (displays == NULL) return -1;

    CFIndex n = CFArrayGetCount(displays);
    SWDisplay *res = calloc(n > 0 ? n : 1, sizeof(SWDisplay));
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(displays, i);
        res[i].identifier = sw_copy_utf8(CFDictionaryGetValue(d, CFSTR("Display Identifier")));

        CFArrayRef spaces = (CFArrayRef)CFDictionaryGetValue(d, CFSTR("Spaces"));
        if (spaces == NULL || CFGetTypeID(spaces) != CFArrayGetTypeID()) {
            CFRelease(displays);
            sw_free_displays(res, (int)n);
            return -2;
        }
        CFIndex sn = CFArrayGetCount(spaces);
        res[i].spaces = calloc(sn > 0 ? sn : 1, sizeof(SWSpace));
        res[i].spaceCount = (int)sn;
        for (CFIndex j = 0; j < sn; j++) {
            CFDictionaryRef s = (CFDictionaryRef)CFArrayGetValueAtIndex(spaces, j);
            int64_t id = 0, type = 0;
            if (!sw_number_i64(CFDictionaryGetValue(s, CFSTR("id64")), &id)) {
                CFRelease(displays);
                sw_free_displays(res, (int)n);
                return -3;
            }
            sw_number_i64(CFDictionaryGetValue(s, CFSTR("type")), &type);
            res[i].spaces[j].id = (uint64_t)id;
            res[i].spaces[j].type = (int)type;
        }
    }
    CFRelease(displays);
    *out = res;
    *count = (int)n;
    return 0;
}

static int sw_windows_on_space(uint64_t sid, uint32_t options, uint32_t **out, int *count) {
    int64_t v = (int64_t)sid;
    CFNumberRef num = CFNumberCreate(NULL, kCFNumberSInt64Type, &v);
    CFArrayRef spaces = CFArrayCreate(NULL, (const void **)&num, 1, &kCFTypeArrayCallBacks);
    uint64_t setTags = 0, clearTags = 0;
    CFArrayRef ids = SLSCopyWindowsWithOptionsAndTags(SLSMainConnectionID(), 0, spaces, options, &setTags, &clearTags);
    CFRelease(spaces);
    CFRelease(num);
    if (ids == NULL) return -1;

    CFIndex n = CFArrayGetCount(ids);
    uint32_t *res = calloc(n > 0 ? n : 1, sizeof(uint32_t));
    int k = 0;
    for (CFIndex i = 0; i < n; i++) {
        int64_t wid = 0;
        if (sw_number_i64(CFArrayGetValueAtIndex(ids, i), &wid)) {
            res[k++] = (uint32_t)wid;
        }
    }
    CFRelease(ids);
    *out = res;
    *count = k;
    return 0;
}

static uint64_t sw_active_space(void) {
    return SLSGetActiveSpace(SLSMainConnectionID());
}

static void sw_free_windows(SWWindowInfo *windows, int count) {
    if (windows == NULL) return;
    for (int i = 0; i < count; i++) {
        free(windows[i].title);
    }
    free(windows);
}

static int sw_list_windows(SWWindowInfo **out, int *count) {
    CFArrayRef list = CGWindowListCopyWindowInfo(kCGWindowListExcludeDesktopElements, kCGNullWindowID);
    if (list == NULL) return -1;

    CFIndex n = CFArrayGetCount(list);
    SWWindowInfo *res = calloc(n > 0 ? n : 1, sizeof(SWWindowInfo));
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);
        int64_t layer = 0, pid = 0, number = 0;
        sw_number_i64(CFDictionaryGetValue(d, kCGWindowLayer), &layer);
        sw_number_i64(CFDictionaryGetValue(d, kCGWindowOwnerPID), &pid);
        sw_number_i64(CFDictionaryGetValue(d, kCGWindowNumber), &number);
        res[i].id = (uint32_t)number;
        res[i].pid = (int32_t)pid;
        res[i].layer = (int32_t)layer;
        res[i].title = sw_copy_utf8(CFDictionaryGetValue(d, kCGWindowName));

        CFTypeRef b = CFDictionaryGetValue(d, kCGWindowBounds);
        CGRect r;
        if (b != NULL && CFGetTypeID(b) == CFDictionaryGetTypeID() &&
            CGRectMakeWithDictionaryRepresentation((CFDictionaryRef)b, &r)) {
            res[i].hasBounds = 1;
            res[i].x = r.origin.x;
            res[i].y = r.origin.y;
            res[i].width = r.size.width;
            res[i].height = r.size.height;
        }
    }
    CFRelease(list);
    *out = res;
    *count = (int)n;
    return 0;
}

static int sw_window_bounds(uint32_t wid, double *x, double *y, double *w, double *h) {
    CGRect r;
    CGError err = SLSGetWindowBounds(SLSMainConnectionID(), wid, &r);
    if (err != kCGErrorSuccess) return (int)err;
    *x = r.origin.x;
    *y = r.origin.y;
    *w = r.size.width;
    *h = r.size.height;
    return 0;
}

static int sw_process_for_pid(pid_t pid, uint32_t *high, uint32_t *low) {
    ProcessSerialNumber psn = {0, 0};
    OSStatus st = GetProcessForPID(pid, &psn);
    *high = psn.highLongOfPSN;
    *low = psn.lowLongOfPSN;
    return (int)st;
}

static int sw_set_front_process(uint32_t high, uint32_t low, uint32_t wid, uint32_t options) {
    ProcessSerialNumber psn = {high, low};
    return (int)_SLPSSetFrontProcessWithOptions(&psn, wid, options);
}

static int sw_post_event_record(uint32_t high, uint32_t low, uint8_t *bytes) {
    ProcessSerialNumber psn = {high, low};
    return (int)SLPSPostEventRecordTo(&psn, bytes);
}

static int sw_warp_cursor(double x, double y) {
    return (int)CGWarpMouseCursorPosition(CGPointMake(x, y));
}
*/
import "C"
import (
	"unsafe"

	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
	"github.com/pkg/errors"
)

// DarwinWindowServer implements platform.WindowServer over CoreGraphics and SkyLight.
type DarwinWindowServer struct{}

var _ platform.WindowServer = (*DarwinWindowServer)(nil)

// NewWindowServer creates a new macOS window-server backend.
func NewWindowServer() *DarwinWindowServer {
	return &DarwinWindowServer{}
}

func (s *DarwinWindowServer) ManagedDisplaySpaces() ([]platform.ManagedDisplay, error) {
	var cDisplays *C.SWDisplay
	var cCount C.int
	if rc := C.sw_managed_display_spaces(&cDisplays, &cCount); rc != 0 {
		return nil, errors.Errorf("SLSCopyManagedDisplaySpaces: invalid result (%d)", int(rc))
	}
	defer C.sw_free_displays(cDisplays, cCount)

	count := int(cCount)
	displays := make([]platform.ManagedDisplay, 0, count)
	if count == 0 {
		return displays, nil
	}
	for _, cd := range unsafe.Slice(cDisplays, count) {
		d := platform.ManagedDisplay{Identifier: C.GoString(cd.identifier)}
		if cd.spaceCount > 0 {
			for _, cs := range unsafe.Slice(cd.spaces, int(cd.spaceCount)) {
				d.Spaces = append(d.Spaces, platform.ManagedSpace{
					ID:   uint64(cs.id),
					Type: model.SpaceType(cs._type),
				})
			}
		}
		displays = append(displays, d)
	}
	return displays, nil
}

func (s *DarwinWindowServer) WindowsOnSpace(spaceID uint64, options uint32) ([]uint32, error) {
	var cIDs *C.uint32_t
	var cCount C.int
	if C.sw_windows_on_space(C.uint64_t(spaceID), C.uint32_t(options), &cIDs, &cCount) != 0 {
		return nil, errors.Errorf("SLSCopyWindowsWithOptionsAndTags returned NULL for space %d", spaceID)
	}
	defer C.free(unsafe.Pointer(cIDs))

	count := int(cCount)
	ids := make([]uint32, 0, count)
	if count == 0 {
		return ids, nil
	}
	for _, id := range unsafe.Slice(cIDs, count) {
		ids = append(ids, uint32(id))
	}
	return ids, nil
}

func (s *DarwinWindowServer) ActiveSpace() uint64 {
	return uint64(C.sw_active_space())
}

func (s *DarwinWindowServer) OnScreenWindows() ([]platform.WindowInfo, error) {
	var cWindows *C.SWWindowInfo
	var cCount C.int
	if C.sw_list_windows(&cWindows, &cCount) != 0 {
		return nil, errors.New("CGWindowListCopyWindowInfo returned NULL")
	}
	defer C.sw_free_windows(cWindows, cCount)

	count := int(cCount)
	windows := make([]platform.WindowInfo, 0, count)
	if count == 0 {
		return windows, nil
	}
	for _, cw := range unsafe.Slice(cWindows, count) {
		w := platform.WindowInfo{
			ID:    uint32(cw.id),
			PID:   int(cw.pid),
			Layer: int(cw.layer),
			Title: C.GoString(cw.title),
		}
		if cw.hasBounds != 0 {
			w.Bounds = &model.Rect{
				X:      float64(cw.x),
				Y:      float64(cw.y),
				Width:  float64(cw.width),
				Height: float64(cw.height),
			}
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (s *DarwinWindowServer) WindowBounds(windowID uint32) (model.Rect, error) {
	var x, y, w, h C.double
	if rc := C.sw_window_bounds(C.uint32_t(windowID), &x, &y, &w, &h); rc != 0 {
		return model.Rect{}, errors.Errorf("SLSGetWindowBounds(%d): CGError %d", windowID, int(rc))
	}
	return model.Rect{X: float64(x), Y: float64(y), Width: float64(w), Height: float64(h)}, nil
}

func (s *DarwinWindowServer) ProcessForPID(pid int) (platform.ProcessSerialNumber, error) {
	var high, low C.uint32_t
	if rc := C.sw_process_for_pid(C.pid_t(pid), &high, &low); rc != 0 {
		return platform.ProcessSerialNumber{}, errors.Errorf("GetProcessForPID(%d): OSStatus %d", pid, int(rc))
	}
	return platform.ProcessSerialNumber{High: uint32(high), Low: uint32(low)}, nil
}

func (s *DarwinWindowServer) SetFrontProcess(psn platform.ProcessSerialNumber, windowID uint32, options uint32) error {
	if rc := C.sw_set_front_process(C.uint32_t(psn.High), C.uint32_t(psn.Low), C.uint32_t(windowID), C.uint32_t(options)); rc != 0 {
		return errors.Errorf("_SLPSSetFrontProcessWithOptions: CGError %d", int(rc))
	}
	return nil
}

func (s *DarwinWindowServer) PostEventRecord(psn platform.ProcessSerialNumber, record []byte) error {
	if len(record) == 0 {
		return errors.New("empty event record")
	}
	buf := C.CBytes(record)
	defer C.free(buf)
	if rc := C.sw_post_event_record(C.uint32_t(psn.High), C.uint32_t(psn.Low), (*C.uint8_t)(buf)); rc != 0 {
		return errors.Errorf("SLPSPostEventRecordTo: CGError %d", int(rc))
	}
	return nil
}

func (s *DarwinWindowServer) WarpCursor(x, y float64) error {
	if rc := C.sw_warp_cursor(C.double(x), C.double(y)); rc != 0 {
		return errors.Errorf("CGWarpMouseCursorPosition: CGError %d", int(rc))
	}
	return nil
}
