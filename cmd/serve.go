package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sapconnect/internal/config"
	"sapconnect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing sapconnect tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes SAP session
automation as tools (connect, list_sessions, classify_screen), so AI agents
can establish logons without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  sapconnect serve
  sapconnect serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	srv := server.New(cfg, logger)
	if err := srv.Serve(transport, port); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
