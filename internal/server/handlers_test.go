package server

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/output"
)

type fakeEngine struct {
	apps       []model.App
	spaces     []model.Space
	active     uint64
	icons      map[int]*model.Icon
	refreshErr error
	focusErr   error

	refreshes int
	focused   []uint32
}

func (e *fakeEngine) Refresh() error {
	e.refreshes++
	return e.refreshErr
}

func (e *fakeEngine) Apps() []model.App     { return e.apps }
func (e *fakeEngine) Spaces() []model.Space { return e.spaces }
func (e *fakeEngine) ActiveSpace() uint64   { return e.active }

func (e *fakeEngine) Icon(pid int) (*model.Icon, bool) {
	icon, ok := e.icons[pid]
	return icon, ok
}

func (e *fakeEngine) Focus(id uint32) error {
	e.focused = append(e.focused, id)
	return e.focusErr
}

func newFakeEngine() *fakeEngine {
	space := model.Space{ID: 10, DisplayIndex: 1, DisplayID: "Main", Index: 1}
	return &fakeEngine{
		apps: []model.App{
			{PID: 1, Name: "Safari", HasIcon: true, Windows: []model.Window{
				{ID: 101, PID: 1, Title: "GitHub", Space: space},
			}},
			{PID: 2, Name: "Terminal", Windows: []model.Window{
				{ID: 201, PID: 2, Title: "zsh", Space: space},
				{ID: 202, PID: 2, Title: "vim", Space: space},
			}},
		},
		spaces: []model.Space{space},
		active: 10,
		icons: map[int]*model.Icon{
			1: {Width: 2, Height: 2, RGBA: make([]byte, 16)},
		},
	}
}

func newTestServer(e Engine) *Server {
	return New(e, Config{CacheTTL: 0}, nil)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestHandleListWindows(t *testing.T) {
	e := newFakeEngine()
	s := newTestServer(e)

	res := callTool(t, s.handleListWindows, map[string]interface{}{"app": "term"})
	if res.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, res))
	}
	var got output.ListResult
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(got.Windows))
	}
	// Empty query: app then title order.
	if got.Windows[0].Window.ID != 202 || got.Windows[1].Window.ID != 201 {
		t.Errorf("order = %d, %d", got.Windows[0].Window.ID, got.Windows[1].Window.ID)
	}
	if e.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", e.refreshes)
	}
}

func TestHandleListWindows_Limit(t *testing.T) {
	s := newTestServer(newFakeEngine())
	res := callTool(t, s.handleListWindows, map[string]interface{}{"limit": float64(1)})
	var got output.ListResult
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Windows) != 1 {
		t.Errorf("windows = %d, want 1", len(got.Windows))
	}
}

func TestHandleListWindows_RefreshError(t *testing.T) {
	e := newFakeEngine()
	e.refreshErr = errors.New("window server unavailable")
	s := newTestServer(e)

	res := callTool(t, s.handleListWindows, nil)
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(t, res), "window server unavailable") {
		t.Errorf("text = %q", resultText(t, res))
	}
}

func TestHandleListSpaces(t *testing.T) {
	s := newTestServer(newFakeEngine())
	res := callTool(t, s.handleListSpaces, nil)
	var got output.SpacesResult
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Active != 10 || len(got.Spaces) != 1 || got.Spaces[0].DisplayID != "Main" {
		t.Errorf("got %+v", got)
	}
}

func TestHandleFocusWindow(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		focusErr  error
		wantErr   string
		wantFocus []uint32
	}{
		{name: "by id", args: map[string]interface{}{"window-id": float64(201)}, wantFocus: []uint32{201}},
		{name: "by query", args: map[string]interface{}{"query": "vim"}, wantFocus: []uint32{202}},
		{name: "missing args", args: map[string]interface{}{}, wantErr: "required"},
		{name: "unknown id", args: map[string]interface{}{"window-id": float64(999)}, wantErr: "no window with id 999"},
		{name: "no match", args: map[string]interface{}{"query": "qqqq"}, wantErr: "no window matches"},
		{name: "focus fails", args: map[string]interface{}{"window-id": float64(101)}, focusErr: errors.New("front process failed"), wantErr: "front process failed", wantFocus: []uint32{101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newFakeEngine()
			e.focusErr = tt.focusErr
			s := newTestServer(e)

			res := callTool(t, s.handleFocusWindow, tt.args)
			text := resultText(t, res)
			if tt.wantErr != "" {
				if !res.IsError || !strings.Contains(text, tt.wantErr) {
					t.Errorf("result = %q (IsError=%v), want error containing %q", text, res.IsError, tt.wantErr)
				}
			} else if res.IsError {
				t.Fatalf("unexpected error: %s", text)
			}
			if len(e.focused) != len(tt.wantFocus) {
				t.Fatalf("focused = %v, want %v", e.focused, tt.wantFocus)
			}
			for i := range e.focused {
				if e.focused[i] != tt.wantFocus[i] {
					t.Errorf("focused = %v, want %v", e.focused, tt.wantFocus)
				}
			}
		})
	}
}

func TestHandleFocusWindow_InvalidatesThrottle(t *testing.T) {
	e := newFakeEngine()
	s := New(e, Config{CacheTTL: time.Hour}, nil)

	callTool(t, s.handleListWindows, nil)
	callTool(t, s.handleListWindows, nil)
	if e.refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1 within TTL", e.refreshes)
	}
	callTool(t, s.handleFocusWindow, map[string]interface{}{"window-id": float64(101)})
	callTool(t, s.handleListWindows, nil)
	if e.refreshes != 2 {
		t.Errorf("refreshes = %d, want 2 after focus", e.refreshes)
	}
}

func TestHandleAppIcon(t *testing.T) {
	s := newTestServer(newFakeEngine())

	res := callTool(t, s.handleAppIcon, map[string]interface{}{"pid": float64(1), "size": float64(8)})
	if res.IsError {
		t.Fatalf("unexpected error: %v", res.Content)
	}
	img, ok := res.Content[0].(mcp.ImageContent)
	if !ok {
		t.Fatalf("content is %T, want ImageContent", res.Content[0])
	}
	if img.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", img.MIMEType)
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("payload is not a PNG")
	}

	res = callTool(t, s.handleAppIcon, map[string]interface{}{"pid": float64(2)})
	if !res.IsError || !strings.Contains(resultText(t, res), "no icon for pid 2") {
		t.Errorf("missing icon result = %+v", res)
	}

	res = callTool(t, s.handleAppIcon, map[string]interface{}{})
	if !res.IsError {
		t.Error("expected error without pid")
	}
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{"s": "x", "n": float64(3), "i": 4, "other": true}
	if got := StringParam(params, "s", "d"); got != "x" {
		t.Errorf("StringParam = %q", got)
	}
	if got := StringParam(params, "missing", "d"); got != "d" {
		t.Errorf("StringParam default = %q", got)
	}
	if got := StringParam(params, "n", ""); got != "3" {
		t.Errorf("StringParam numeric = %q", got)
	}
	if got := IntParam(params, "n", 0); got != 3 {
		t.Errorf("IntParam float = %d", got)
	}
	if got := IntParam(params, "i", 0); got != 4 {
		t.Errorf("IntParam int = %d", got)
	}
	if got := IntParam(params, "other", 9); got != 9 {
		t.Errorf("IntParam wrong type = %d", got)
	}
}
