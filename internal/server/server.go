// Package server exposes SAP session automation as MCP tools.
package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"sapconnect/internal/config"
	"sapconnect/internal/version"
)

// Server wraps the MCP server with the automation configuration. Tool
// calls are serialized: the scripting engine tolerates exactly one driver,
// since element identifiers are relative to window focus.
type Server struct {
	cfg *config.Config
	log *log.Logger
	mu  sync.Mutex
	mcp *mcpserver.MCPServer
}

// New creates an MCP server with all sapconnect tools registered.
func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: logger,
		mcp: mcpserver.NewMCPServer("sapconnect", version.Version),
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on the given transport.
func (s *Server) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("connect",
			mcp.WithDescription("Open a new SAP connection to a SAP Logon entry and log in (SSO or password). Starts SAP Logon if needed, handles the login screen and post-login dialogs, and verifies the result."),
			mcp.WithString("system", mcp.Description("SAP Logon entry description (exact, case-sensitive)"), mcp.Required()),
			mcp.WithString("client", mcp.Description("SAP client number, e.g. 100")),
			mcp.WithString("user", mcp.Description("SAP username (password mode only)")),
			mcp.WithString("password", mcp.Description("SAP password (password mode only; never logged)")),
			mcp.WithString("language", mcp.Description("Logon language code (default: EN)")),
			mcp.WithBoolean("sso", mcp.Description("Use single sign-on (default: true)")),
			mcp.WithBoolean("terminate_others", mcp.Description("Answer the multiple-logon dialog by terminating other sessions")),
		),
		s.handleConnect,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_sessions",
			mcp.WithDescription("List the sessions currently open in the running SAP Logon client, with connection/session indices, system, client, user and transaction."),
		),
		s.handleListSessions,
	)

	s.mcp.AddTool(
		mcp.NewTool("classify_screen",
			mcp.WithDescription("Classify what an open SAP session is currently displaying: LOGIN, MENU, or UNKNOWN."),
			mcp.WithNumber("connection", mcp.Description("Connection index (default: 0)")),
			mcp.WithNumber("session", mcp.Description("Session index (default: 0)")),
		),
		s.handleClassifyScreen,
	)
}
