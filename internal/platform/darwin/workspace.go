//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework AppKit -framework CoreGraphics
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    int32_t pid;
    char *name;
    int policy;
    int terminated;
} SWRunningApp;

static void sw_free_apps(SWRunningApp *apps, int count) {
    if (apps == NULL) return;
    for (int i = 0; i < count; i++) {
        free(apps[i].name);
    }
    free(apps);
}

static int sw_running_apps(SWRunningApp **out, int *count) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        NSUInteger n = [apps count];
        SWRunningApp *res = calloc(n > 0 ? n : 1, sizeof(SWRunningApp));
        for (NSUInteger i = 0; i < n; i++) {
            NSRunningApplication *app = apps[i];
            res[i].pid = (int32_t)[app processIdentifier];
            NSString *name = [app localizedName];
            res[i].name = name ? strdup([name UTF8String]) : NULL;
            res[i].policy = (int)[app activationPolicy];
            res[i].terminated = [app isTerminated] ? 1 : 0;
        }
        *out = res;
        *count = (int)n;
    }
    return 0;
}

// sw_app_icon returns 0 on success, 1 when the app has no icon and a
// negative value on failure.
static int sw_app_icon(int32_t pid, int size, uint8_t **data, int *length,
                       int *width, int *height, int *bpp, int *stride) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) return -1;
        NSImage *icon = [app icon];
        if (icon == nil) return 1;

        NSImage *copy = [icon copy];
        [copy setSize:NSMakeSize(size, size)];
        NSRect rect = NSMakeRect(0, 0, size, size);
        CGImageRef cg = [copy CGImageForProposedRect:&rect context:nil hints:nil];
        if (cg == NULL) {
            [copy release];
            return -2;
        }
        CFDataRef pixels = CGDataProviderCopyData(CGImageGetDataProvider(cg));
        if (pixels == NULL) {
            [copy release];
            return -3;
        }
        CFIndex n = CFDataGetLength(pixels);
        uint8_t *buf = malloc(n > 0 ? n : 1);
        CFDataGetBytes(pixels, CFRangeMake(0, n), buf);

        *data = buf;
        *length = (int)n;
        *width = (int)CGImageGetWidth(cg);
        *height = (int)CGImageGetHeight(cg);
        *bpp = (int)CGImageGetBitsPerPixel(cg);
        *stride = (int)CGImageGetBytesPerRow(cg);

        CFRelease(pixels);
        [copy release];
    }
    return 0;
}

static int sw_activate_app(int32_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -2;
    }
}
*/
import "C"
import (
	"unsafe"

	"github.com/mj1618/switcheroo/internal/platform"
	"github.com/pkg/errors"
)

// DarwinWorkspace implements platform.Workspace over NSWorkspace.
type DarwinWorkspace struct{}

var _ platform.Workspace = (*DarwinWorkspace)(nil)

// NewWorkspace creates a new macOS workspace backend.
func NewWorkspace() *DarwinWorkspace {
	return &DarwinWorkspace{}
}

func (w *DarwinWorkspace) RunningApps() ([]platform.RunningApp, error) {
	var cApps *C.SWRunningApp
	var cCount C.int
	if C.sw_running_apps(&cApps, &cCount) != 0 {
		return nil, errors.New("failed to list running applications")
	}
	defer C.sw_free_apps(cApps, cCount)

	count := int(cCount)
	apps := make([]platform.RunningApp, 0, count)
	if count == 0 {
		return apps, nil
	}
	for _, ca := range unsafe.Slice(cApps, count) {
		apps = append(apps, platform.RunningApp{
			PID:        int(ca.pid),
			Name:       C.GoString(ca.name),
			Policy:     platform.ActivationPolicy(ca.policy),
			Terminated: ca.terminated != 0,
		})
	}
	return apps, nil
}

func (w *DarwinWorkspace) AppIcon(pid int, size int) (*platform.Bitmap, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid icon size %d", size)
	}
	var data *C.uint8_t
	var length, width, height, bpp, stride C.int
	rc := C.sw_app_icon(C.int32_t(pid), C.int(size), &data, &length, &width, &height, &bpp, &stride)
	switch {
	case rc == 1:
		return nil, nil
	case rc != 0:
		return nil, errors.Errorf("failed to rasterize icon for pid %d (%d)", pid, int(rc))
	}
	defer C.free(unsafe.Pointer(data))

	return &platform.Bitmap{
		Width:        int(width),
		Height:       int(height),
		BitsPerPixel: int(bpp),
		BytesPerRow:  int(stride),
		Data:         C.GoBytes(unsafe.Pointer(data), length),
	}, nil
}

func (w *DarwinWorkspace) ActivateApp(pid int) error {
	if rc := C.sw_activate_app(C.int32_t(pid)); rc != 0 {
		return errors.Errorf("failed to activate pid %d (%d)", pid, int(rc))
	}
	return nil
}
