package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ycho/wrike-mcp-server/internal/api"
	"github.com/ycho/wrike-mcp-server/internal/config"
	"github.com/ycho/wrike-mcp-server/internal/mcp"
	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

var (
	version = "1.0.0"

	// Global flags
	port     int
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wrike-mcp-server",
		Short:         "Wrike MCP Server - AI assistant integration for Wrike",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Server port for SSE and API modes (overrides WRIKE_PORT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides WRIKE_LOG_LEVEL)")

	// MCP command
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the MCP server in stdio or SSE mode",
		RunE:  runMCP,
	}
	mcpCmd.Flags().Bool("sse", false, "Run in SSE mode instead of stdio")

	// API command
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Start REST API server",
		Long:  "Start the REST API server mirroring the MCP tools",
		RunE:  runAPI,
	}

	rootCmd.AddCommand(mcpCmd, apiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and verifies the token.
func setup(ctx context.Context) (*config.Config, *slog.Logger, *wrike.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if port != 0 {
		cfg.Port = port
	}

	logger := config.NewLogger(os.Stderr, cfg.SlogLevel())
	slog.SetDefault(logger)

	client := cfg.NewClient(logger)
	if err := selfCheck(ctx, client, logger); err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, client, nil
}

// selfCheck fetches the token owner. A rejected token stops startup; any
// other failure is only logged so the server can start while Wrike is down.
func selfCheck(ctx context.Context, client *wrike.Client, logger *slog.Logger) error {
	me, err := client.Me(ctx)
	switch {
	case err == nil:
		logger.Info("Connected to Wrike", "user", me.Name(), "contact_id", me.ID)
		return nil
	case wrike.IsAuthError(err):
		return err
	case errors.Is(err, context.Canceled):
		return err
	default:
		logger.Warn("Wrike self-check failed, continuing", "error", err)
		return nil
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, logger, client, err := setup(ctx)
	if err != nil {
		return err
	}

	sseMode, _ := cmd.Flags().GetBool("sse")

	handlers := mcp.NewToolHandlers(client, mcp.HandlerOptions{
		ReadOnly: cfg.ReadOnly,
		Timeout:  cfg.ToolTimeout,
	}, logger)

	server := mcp.NewServer(mcp.Config{
		Port:    cfg.Port,
		SSEMode: sseMode,
	}, handlers, logger)
	return server.Run(ctx)
}

func runAPI(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, logger, client, err := setup(ctx)
	if err != nil {
		return err
	}

	server := api.NewServer(api.Config{
		Port:     cfg.Port,
		ReadOnly: cfg.ReadOnly,
	}, client, logger)
	return server.Run(ctx)
}
