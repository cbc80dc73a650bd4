// Package mcp exposes profile capture and restoration as MCP tools over
// stdio, so agent clients can drive window layouts.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wsaver/internal/config"
	"github.com/1broseidon/wsaver/internal/profile"
)

const (
	ServerName    = "wsaver"
	ServerVersion = "1.0.0"
)

// Server is the MCP server for window layout management.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	store     *profile.Store
	logger    *slog.Logger
}

// NewServer creates an MCP server over the given profile store. Each tool
// call opens and closes its own X11 connection; no windowing state is held
// between calls.
func NewServer(cfg *config.Config, store *profile.Store, logger *slog.Logger) *Server {
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_layout",
		Description: "Capture the geometry, desktop, and state of all open windows into a named profile. Overwrites any existing profile of the same name.",
	}, s.handleSaveLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_layout",
		Description: "Restore a saved window layout. Polls until every saved window is matched by WM class/instance/title or the timeout elapses; late-appearing windows are picked up on later polls. Reports per-window outcomes.",
	}, s.handleRestoreLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_profiles",
		Description: "List the names of all saved window layout profiles.",
	}, s.handleListProfiles)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "delete_profile",
		Description: "Delete a saved window layout profile by name.",
	}, s.handleDeleteProfile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the currently open windows with their WM class, instance, title, geometry, and desktop.",
	}, s.handleListWindows)
}
