package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/client"

	"mcpapp/internal/cli"
	"mcpapp/internal/config"
	"mcpapp/internal/dynamic"
	"mcpapp/internal/mcpserver"
	"mcpapp/internal/tools"
	"mcpapp/pkg/logging"
)

// loadConfig reads and validates the configuration under --config-path.
func loadConfig() (config.AppConfig, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogging configures the logger from cfg. debug forces the debug level.
// Logs always go to w, which is stderr in practice so stdout stays clean for
// command output and the stdio transport.
func initLogging(cfg config.AppConfig, debug bool, w io.Writer) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	if debug {
		level = logging.LevelDebug
	}
	logging.Init(level, logging.Format(cfg.Logging.Format), w)
}

// serverOptions turns the configuration into explicit server options.
func serverOptions(cfg config.AppConfig) mcpserver.Options {
	info := tools.ServerInfo{
		Name:      cfg.Server.Name,
		Version:   GetVersion(),
		Transport: cfg.Server.Transport,
	}

	opts := mcpserver.Options{
		Name:                            info.Name,
		Version:                         info.Version,
		AppDir:                          cfg.Items.AppDir,
		LoadNativeItems:                 cfg.Items.LoadNative,
		Native:                          tools.Native(info),
		RegisterDynamicToolsOnStartup:   cfg.Dynamic.RegisterToolsOnStartup,
		RegisterDynamicPromptsOnStartup: cfg.Dynamic.RegisterPromptsOnStartup,
		Transport:                       cfg.Server.Transport,
		Host:                            cfg.Server.Host,
		Port:                            cfg.Server.Port,
	}
	if cfg.Dynamic.Enabled() {
		opts.Dynamic = dynamic.NewClient(cfg.Dynamic.Endpoint, cfg.Dynamic.APIToken)
	}
	return opts
}

// remoteFlags select a running server instead of an in-process one.
type remoteFlags struct {
	URL     string
	Headers []string
}

// parseHeaders turns "Name: value" strings into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", h)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}

// itemClient returns an initialized client for listing items, either to the
// server at remote.URL or to an in-process server built from opts. The
// returned func releases it.
func itemClient(ctx context.Context, opts mcpserver.Options, remote remoteFlags) (client.MCPClient, func(), error) {
	if remote.URL != "" {
		headers, err := parseHeaders(remote.Headers)
		if err != nil {
			return nil, nil, err
		}
		c, err := mcpserver.Connect(ctx, remote.URL, headers)
		if err != nil {
			return nil, nil, cli.ClassifyConnectionError(err, remote.URL)
		}
		return c, func() { _ = c.Close() }, nil
	}

	srv, err := mcpserver.New(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	c, err := srv.Client(ctx)
	if err != nil {
		_ = srv.Close()
		return nil, nil, err
	}
	return c, func() { _ = srv.Close() }, nil
}
