package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/adapters/driving/mcp"
	"github.com/custodia-labs/sheetpost/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list
pending rows, publish them and manage posts.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve over HTTP instead.

The config file is watched while the server runs, so signing in with
'sheetpost login' in another terminal takes effect without a restart.

Examples:
  # Stdio mode (for desktop assistants)
  sheetpost serve

  # HTTP mode (for MCP Inspector, remote access)
  sheetpost serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "sheetpost": {
        "command": "/path/to/sheetpost",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}

	ports := &mcp.Ports{
		Schedule: scheduleService,
		Settings: settingsService,
		Blog:     blogService,
		Sheet:    sheetService,
		History:  historyService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				if err := seedCredentials(ctx); err != nil {
					logger.Warn("reload credentials: %v", err)
					return
				}
				logger.Info("Configuration reloaded")
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
