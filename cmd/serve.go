package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mcpapp/internal/catalog"
	"mcpapp/internal/config"
	"mcpapp/internal/mcpserver"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	serveWatch     bool
	serveDebug     bool
)

// serveCmd runs the MCP server until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Runs the MCP server with the native items, the definitions under the app
directory and, when configured, the dynamic items.

Transports:
  streamable-http  HTTP on <host>:<port>/mcp (default)
  sse              Server-Sent Events on <host>:<port>/sse
  stdio            JSON-RPC over stdin/stdout; logs go to stderr

With --watch, YAML changes under the app directory's tools/, prompts/ and
resources/ are picked up without a restart. A definition that fails to load
keeps the previous set in place.

Flags override config.yaml and the MCP_SERVER_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Server.Transport = serveTransport
	}
	if flags.Changed("host") {
		cfg.Server.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	initLogging(cfg, serveDebug, os.Stderr)

	opts := serverOptions(cfg)
	opts.Stdin = cmd.InOrStdin()
	opts.Stdout = cmd.OutOrStdout()

	srv, err := mcpserver.New(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The watcher has nothing to do once the transport is gone.
		defer cancel()
		return srv.Serve(gctx)
	})

	if serveWatch && cfg.Items.AppDir != "" {
		watcher := catalog.NewWatcher(cfg.Items.AppDir, catalog.DefaultDebounce, srv.Reload)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, mcpserver.ErrPortInUse) {
		return fmt.Errorf(`%w

Find the process using the port:
  lsof -i :%d

Or start on another port:
  export MCP_SERVER_PORT=%d`, err, cfg.Server.Port, cfg.Server.Port+1)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", config.MCPTransportStreamableHTTP, "Transport: streamable-http, sse or stdio")
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Host to bind HTTP transports to")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port for HTTP transports")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload definitions when files under the app directory change")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}
