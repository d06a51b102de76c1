package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/switcheroo/internal/output"
	"github.com/mj1618/switcheroo/internal/rank"
)

func yamlResult(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// ranked refreshes if needed and returns the windows matching query and app.
// The caller must hold engineMu.
func (s *Server) ranked(query, app string) ([]rank.Result, error) {
	if err := s.throttle.Ensure(s.engine.Refresh); err != nil {
		return nil, err
	}
	candidates := rank.FilterApp(rank.Candidates(s.engine.Apps()), app)
	return rank.Rank(query, candidates), nil
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	query := StringParam(params, "query", "")
	app := StringParam(params, "app", "")
	limit := IntParam(params, "limit", 0)

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	results, err := s.ranked(query, app)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []rank.Result{}
	}
	return yamlResult(output.ListResult{
		Query:   query,
		TS:      time.Now().Unix(),
		Windows: results,
	}), nil
}

func (s *Server) handleListSpaces(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	if err := s.throttle.Ensure(s.engine.Refresh); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return yamlResult(output.SpacesResult{
		Active: s.engine.ActiveSpace(),
		Spaces: s.engine.Spaces(),
	}), nil
}

func (s *Server) handleFocusWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	windowID := IntParam(params, "window-id", 0)
	query := StringParam(params, "query", "")
	if windowID < 0 || (windowID == 0 && query == "") {
		return mcp.NewToolResultError("window-id or query is required"), nil
	}
	if windowID > 0 {
		query = ""
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	results, err := s.ranked(query, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	target, ok := rank.Pick(results, uint32(windowID))
	if !ok {
		if windowID > 0 {
			return mcp.NewToolResultError(fmt.Sprintf("no window with id %d", windowID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("no window matches %q", query)), nil
	}

	if err := s.engine.Focus(target.Window.ID); err != nil {
		s.log.Warn("focus failed", err, "window_id", target.Window.ID)
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Focusing moves windows between spaces and changes stacking.
	s.throttle.Invalidate()

	return yamlResult(output.FocusResult{
		OK:       true,
		WindowID: target.Window.ID,
		App:      target.App,
		Title:    target.Window.Title,
	}), nil
}

func (s *Server) handleAppIcon(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pid := IntParam(params, "pid", 0)
	size := IntParam(params, "size", 0)
	if pid <= 0 {
		return mcp.NewToolResultError("pid is required"), nil
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	if err := s.throttle.Ensure(s.engine.Refresh); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	icon, ok := s.engine.Icon(pid)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no icon for pid %d", pid)), nil
	}

	var buf bytes.Buffer
	if _, _, err := output.EncodeIconPNG(&buf, icon, size); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}
