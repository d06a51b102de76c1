package switcher

import (
	"encoding/binary"
	"fmt"

	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/platform"
)

// callLog records the order of side-effecting OS calls across fakes.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...interface{}) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) has(prefix string) bool {
	for _, c := range l.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

type fakeServer struct {
	log *callLog

	displays     []platform.ManagedDisplay
	displaysErr  error
	spaceWindows map[uint64][]uint32
	spaceErr     map[uint64]error
	active       uint64
	windows      []platform.WindowInfo
	windowsErr   error
	bounds       map[uint32]model.Rect

	psnErr   error
	frontErr error
	postErrs []error
	warpErr  error

	posted [][]byte
	warps  [][2]float64
}

var _ platform.WindowServer = (*fakeServer)(nil)

func (s *fakeServer) ManagedDisplaySpaces() ([]platform.ManagedDisplay, error) {
	return s.displays, s.displaysErr
}

func (s *fakeServer) WindowsOnSpace(spaceID uint64, options uint32) ([]uint32, error) {
	if err := s.spaceErr[spaceID]; err != nil {
		return nil, err
	}
	return s.spaceWindows[spaceID], nil
}

func (s *fakeServer) ActiveSpace() uint64 {
	s.log.add("active-space")
	return s.active
}

func (s *fakeServer) OnScreenWindows() ([]platform.WindowInfo, error) {
	return s.windows, s.windowsErr
}

func (s *fakeServer) WindowBounds(windowID uint32) (model.Rect, error) {
	b, ok := s.bounds[windowID]
	if !ok {
		return model.Rect{}, fmt.Errorf("no bounds for %d", windowID)
	}
	return b, nil
}

func (s *fakeServer) ProcessForPID(pid int) (platform.ProcessSerialNumber, error) {
	s.log.add("psn %d", pid)
	if s.psnErr != nil {
		return platform.ProcessSerialNumber{}, s.psnErr
	}
	return platform.ProcessSerialNumber{High: 0, Low: uint32(pid)}, nil
}

func (s *fakeServer) SetFrontProcess(psn platform.ProcessSerialNumber, windowID uint32, options uint32) error {
	s.log.add("front %d %d %#x", psn.Low, windowID, options)
	return s.frontErr
}

func (s *fakeServer) PostEventRecord(psn platform.ProcessSerialNumber, record []byte) error {
	s.log.add("post %d", record[keyRecordOffFlavor])
	s.posted = append(s.posted, append([]byte(nil), record...))
	if n := len(s.posted) - 1; n < len(s.postErrs) {
		return s.postErrs[n]
	}
	return nil
}

func (s *fakeServer) WarpCursor(x, y float64) error {
	s.log.add("warp")
	s.warps = append(s.warps, [2]float64{x, y})
	return s.warpErr
}

type fakeWorkspace struct {
	log *callLog

	apps        []platform.RunningApp
	appsErr     error
	icons       map[int]*platform.Bitmap
	iconCalls   map[int]int
	activateErr error
}

var _ platform.Workspace = (*fakeWorkspace)(nil)

func (w *fakeWorkspace) RunningApps() ([]platform.RunningApp, error) {
	return w.apps, w.appsErr
}

func (w *fakeWorkspace) AppIcon(pid int, size int) (*platform.Bitmap, error) {
	if w.iconCalls == nil {
		w.iconCalls = make(map[int]int)
	}
	w.iconCalls[pid]++
	return w.icons[pid], nil
}

func (w *fakeWorkspace) ActivateApp(pid int) error {
	w.log.add("activate %d", pid)
	return w.activateErr
}

type fakeElement struct {
	log      *callLog
	wid      uint32
	subrole  string
	raiseErr error
	released int
}

var _ platform.Element = (*fakeElement)(nil)

func (e *fakeElement) WindowID() (uint32, error) { return e.wid, nil }
func (e *fakeElement) Subrole() (string, error)  { return e.subrole, nil }

func (e *fakeElement) Raise() error {
	e.log.add("raise %d", e.wid)
	return e.raiseErr
}

func (e *fakeElement) Release() { e.released++ }

// fakeAX serves elements by (pid, index) decoded from the remote token.
type fakeAX struct {
	log      *callLog
	elements map[int]map[uint64]fakeElement
	probes   map[int]int
	created  []*fakeElement
}

var _ platform.Accessibility = (*fakeAX)(nil)

func (a *fakeAX) ElementForToken(token []byte) (platform.Element, bool) {
	pid := int(int32(binary.NativeEndian.Uint32(token[tokenOffPID:])))
	index := binary.NativeEndian.Uint64(token[tokenOffIndex:])
	if a.probes == nil {
		a.probes = make(map[int]int)
	}
	a.probes[pid]++
	tmpl, ok := a.elements[pid][index]
	if !ok {
		return nil, false
	}
	el := tmpl
	el.log = a.log
	a.created = append(a.created, &el)
	return &el, true
}

func (a *fakeAX) Trusted() bool                     { return true }
func (a *fakeAX) SetMessagingTimeout(float64) error { return nil }

// live returns the created elements that were never released.
func (a *fakeAX) live() []*fakeElement {
	var out []*fakeElement
	for _, el := range a.created {
		if el.released == 0 {
			out = append(out, el)
		}
	}
	return out
}

type fixture struct {
	log    *callLog
	server *fakeServer
	ws     *fakeWorkspace
	ax     *fakeAX
}

func (f *fixture) provider() *platform.Provider {
	return &platform.Provider{WindowServer: f.server, Workspace: f.ws, Accessibility: f.ax}
}

func rect(x, y, w, h float64) *model.Rect {
	return &model.Rect{X: x, Y: y, Width: w, Height: h}
}

func solidBitmap(w, h int) *platform.Bitmap {
	data := make([]byte, w*h*4)
	for i := range data {
		data[i] = byte(i)
	}
	return &platform.Bitmap{Width: w, Height: h, BitsPerPixel: 32, BytesPerRow: w * 4, Data: data}
}

// newFixture builds a desktop with two displays:
//
//	display 1: space 10 (user) with windows 101, 102 (Safari) and 201 (Terminal)
//	display 2: space 20 (user) with window 202 (Terminal), 301 (menu, layer 3)
//
// Finder (pid 3) is an accessory app and must never appear.
func newFixture() *fixture {
	log := &callLog{}
	server := &fakeServer{
		log: log,
		displays: []platform.ManagedDisplay{
			{Identifier: "Main", Spaces: []platform.ManagedSpace{{ID: 10, Type: model.SpaceUser}}},
			{Identifier: "Side", Spaces: []platform.ManagedSpace{{ID: 20, Type: model.SpaceUser}}},
		},
		spaceWindows: map[uint64][]uint32{
			10: {101, 102, 201, 401},
			20: {202, 301},
		},
		active: 10,
		windows: []platform.WindowInfo{
			{ID: 101, PID: 1, Layer: 0, Title: "GitHub", Bounds: rect(0, 0, 800, 600)},
			{ID: 102, PID: 1, Layer: 0, Title: "Docs", Bounds: rect(10, 10, 400, 300)},
			{ID: 201, PID: 2, Layer: 0, Title: "zsh", Bounds: rect(100, 100, 200, 100)},
			{ID: 202, PID: 2, Layer: 0, Title: "vim", Bounds: rect(2000, 0, 1000, 500)},
			{ID: 301, PID: 2, Layer: 3, Title: "menu", Bounds: rect(0, 0, 10, 10)},
			{ID: 401, PID: 3, Layer: 0, Title: "Desktop", Bounds: rect(0, 0, 10, 10)},
			{ID: 501, PID: 1, Layer: 0, Title: "offscreen", Bounds: rect(-5000, 0, 10, 10)},
		},
		bounds: map[uint32]model.Rect{},
	}
	ws := &fakeWorkspace{
		log: log,
		apps: []platform.RunningApp{
			{PID: 1, Name: "Safari", Policy: platform.PolicyRegular},
			{PID: 2, Name: "Terminal", Policy: platform.PolicyRegular},
			{PID: 3, Name: "Finder", Policy: platform.PolicyAccessory},
			{PID: 4, Name: "Zombie", Policy: platform.PolicyRegular, Terminated: true},
		},
		icons: map[int]*platform.Bitmap{
			1: solidBitmap(16, 16),
			2: solidBitmap(16, 16),
		},
	}
	ax := &fakeAX{
		log: log,
		elements: map[int]map[uint64]fakeElement{
			1: {
				3:  {wid: 101, subrole: "AXStandardWindow"},
				7:  {wid: 102, subrole: "AXDialog"},
				9:  {wid: 101, subrole: "AXStandardWindow"},
				50: {wid: 501, subrole: "AXStandardWindow"},
			},
			2: {
				0: {wid: 201, subrole: "AXStandardWindow"},
				1: {wid: 202, subrole: "AXStandardWindow"},
			},
		},
	}
	return &fixture{log: log, server: server, ws: ws, ax: ax}
}
