// Package mcp exposes generated catalogs to agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/stockgen/pkg/catalog"
	"github.com/gnana997/stockgen/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server implements the stockgen MCP server, exposing read-only catalog
// query tools.
type Server struct {
	mcpServer *server.MCPServer
	query     *catalog.QueryService
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates an MCP server backed by qs. When logger is non-nil,
// every tool call is appended to it.
func NewServer(qs *catalog.QueryService, logger *mcplog.Logger) *Server {
	s := &Server{query: qs, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("stockgen", serverVersion, opts...)

	handlers := map[string]server.ToolHandlerFunc{
		"list_asset_categories": s.handleListAssetCategories,
		"get_asset_items":       s.handleGetAssetItems,
		"list_style_categories": s.handleListStyleCategories,
		"search_text_styles":    s.handleSearchTextStyles,
	}
	for _, tool := range RegisteredTools() {
		s.mcpServer.AddTool(tool, handlers[tool.Name])
	}

	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
