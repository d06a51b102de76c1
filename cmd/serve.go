package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/switcheroo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing switcheroo tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window listing and
switching as tools. One inventory is kept for the life of the server, so
handles and icons are reused across calls.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  switcheroo serve
  switcheroo serve --transport streamable-http --port 8080
  switcheroo serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", -1, "Refresh throttle in milliseconds (0 to disable, default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	ttl := cfg.CacheTTL()
	if cacheTTLMs >= 0 {
		ttl = time.Duration(cacheTTLMs) * time.Millisecond
	}
	srvCfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  ttl,
	}

	mgr, err := newManager()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer mgr.Close()

	log.Info("starting MCP server", "transport", transport, "cache_ttl", ttl.String())
	return server.New(mgr, srvCfg, log).Serve(srvCfg)
}
