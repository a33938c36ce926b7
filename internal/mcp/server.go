// Package mcp exposes trawl's search engine to AI clients over the Model
// Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trawl-dev/trawl/internal/config"
	"github.com/trawl-dev/trawl/pkg/version"
)

// Server is the MCP server for trawl. Each tool call runs one stateless
// search; there is no index to build or warm up.
type Server struct {
	mcp    *mcp.Server
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates an MCP server with all tools registered.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "trawl",
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools
	)

	s.registerTools()
	return s
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "grep_search",
		Description: "Parallel regex search over a directory tree. Honors gitignore rules, skips binary files, and supports smart case, word boundaries, fixed strings, context lines, inverted matching, and file-type filters. Returns matches as path:line:column plus run statistics.",
	}, s.grepSearchHandler)
	s.logger.Debug("Registered tool", slog.String("name", "grep_search"))

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_file_types",
		Description: "List the file type names accepted by grep_search's types filter, with the extensions each one covers.",
	}, s.listFileTypesHandler)
	s.logger.Debug("Registered tool", slog.String("name", "list_file_types"))

	s.logger.Info("MCP tools registered", slog.Int("count", 2))
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error",
				slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}
