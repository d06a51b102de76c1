// Package server exposes the switcher engine as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/switcheroo/internal/logger"
	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/version"
)

// Engine is the part of the switcher manager the tools drive.
type Engine interface {
	Refresh() error
	Apps() []model.App
	Spaces() []model.Space
	ActiveSpace() uint64
	Icon(pid int) (*model.Icon, bool)
	Focus(windowID uint32) error
}

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the engine and its refresh throttle.
type Server struct {
	engine   Engine
	engineMu sync.Mutex
	throttle *RefreshThrottle
	log      *logger.Logger
	mcp      *mcpserver.MCPServer
}

// New creates an MCP server with all switcheroo tools registered.
func New(engine Engine, cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		engine:   engine,
		throttle: NewRefreshThrottle(cfg.CacheTTL),
		log:      log,
	}
	s.mcp = mcpserver.NewMCPServer(
		"switcheroo",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		s.log.Info("serving MCP over HTTP", "port", cfg.Port)
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List switchable windows across all spaces and displays, ranked against an optional fuzzy query"),
			mcp.WithString("query", mcp.Description("Fuzzy query matched against \"<app> <title>\"")),
			mcp.WithString("app", mcp.Description("Filter by application name substring")),
			mcp.WithNumber("limit", mcp.Description("Max windows in output (0 = unlimited)")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_spaces",
			mcp.WithDescription("List displays and their spaces, with the active space id"),
		),
		s.handleListSpaces,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Bring a window to the foreground, switching space if needed, and move the pointer onto it"),
			mcp.WithNumber("window-id", mcp.Description("System window ID")),
			mcp.WithString("query", mcp.Description("Focus the best match for this fuzzy query")),
		),
		s.handleFocusWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("app_icon",
			mcp.WithDescription("Return an application's icon as a PNG image"),
			mcp.WithNumber("pid", mcp.Description("Process ID of the application"), mcp.Required()),
			mcp.WithNumber("size", mcp.Description("Rescale to size x size pixels (0 = native)")),
		),
		s.handleAppIcon,
	)
}
