package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/trawl-dev/trawl/internal/logging"
	"github.com/trawl-dev/trawl/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run trawl as a Model Context Protocol server.

Exposes the grep_search and list_file_types tools over stdio so AI
clients can search directory trees on demand. Stdout carries JSON-RPC
exclusively; all diagnostics go to the log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio")

	return cmd
}

func runServe(cmd *cobra.Command, transport string) error {
	// stdout belongs to JSON-RPC, so logging must stay on the file
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		logger = slog.Default()
	} else {
		defer cleanup()
		slog.SetDefault(logger)
	}

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	server := mcp.NewServer(cfg, logger)
	return server.Serve(cmd.Context(), transport)
}
