// Package mcp exposes a session over the Model Context Protocol so an
// agent can inspect the window tree, drive input and render frames.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/cegui/internal/platform"
)

const (
	ServerName    = "cegui"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for one session.
type Server struct {
	mcpServer *mcpsdk.Server
	log       *slog.Logger

	// mu serialises tool calls; the session is not safe for concurrent use.
	mu      sync.Mutex
	session *platform.Session
}

// NewServer creates a new MCP server driving s.
func NewServer(s *platform.Session, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{session: s, log: logger}
	srv.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	srv.registerTools()
	return srv
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single client over t until the client disconnects.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the window tree under the root in document order with each window's type, look, text, pixel rectangles and state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window",
		Description: "Describe one window by path, including its children and every readable property.",
	}, s.handleGetWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_property",
		Description: "Set a property of a window from its string form and return the value read back.",
	}, s.handleSetProperty)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "eval_dimension",
		Description: "Evaluate a dimension expression against a window and its look, returning pixels.",
	}, s.handleEvalDimension)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "inject_click",
		Description: "Move the pointer to the centre of a window and click the left button.",
	}, s.handleInjectClick)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "navigate",
		Description: "Move keyboard focus with a semantic direction, or press the focused window with Confirm.",
	}, s.handleNavigate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_display_size",
		Description: "Resize the display; windows with relative sizes are laid out again.",
	}, s.handleSetDisplaySize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "step",
		Description: "Advance animations and input timers by a number of seconds.",
	}, s.handleStep)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "render_frame",
		Description: "Render a frame and return it as a PNG image, or write it to a file.",
	}, s.handleRenderFrame)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "load_layout",
		Description: "Replace the root window with a layout file from the default resource group.",
	}, s.handleLoadLayout)
}
