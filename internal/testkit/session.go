package testkit

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"mcpapp/internal/mcpserver"
	"mcpapp/internal/tools"
)

// SessionOption adjusts the server options of an integration session.
type SessionOption func(*mcpserver.Options)

// WithAppDir loads tool, prompt and resource definitions from dir.
func WithAppDir(dir string) SessionOption {
	return func(o *mcpserver.Options) {
		o.AppDir = dir
	}
}

// WithoutNativeItems skips the compiled-in example items.
func WithoutNativeItems() SessionOption {
	return func(o *mcpserver.Options) {
		o.LoadNativeItems = false
	}
}

// WithNativeItems replaces the compiled-in items with items.
func WithNativeItems(items mcpserver.Items) SessionOption {
	return func(o *mcpserver.Options) {
		o.LoadNativeItems = true
		o.Native = items
	}
}

// Session is an MCP server with an initialized in-process client.
type Session struct {
	Server *mcpserver.Server
	Client *client.Client
}

// NewIntegrationSession starts a server with the native items and no dynamic
// registration, so nothing leaves the process. The session is closed when
// the test ends.
func NewIntegrationSession(t testing.TB, opts ...SessionOption) *Session {
	t.Helper()

	ctx := context.Background()
	info := tools.ServerInfo{Name: "mcpapp-test", Version: "test", Transport: mcpserver.TransportStdio}

	options := mcpserver.Options{
		Name:            info.Name,
		Version:         info.Version,
		LoadNativeItems: true,
		Native:          tools.Native(info),
		Transport:       info.Transport,
	}
	for _, opt := range opts {
		opt(&options)
	}
	options.RegisterDynamicToolsOnStartup = false
	options.RegisterDynamicPromptsOnStartup = false
	options.Dynamic = nil

	srv, err := mcpserver.New(ctx, options)
	require.NoError(t, err, "failed to create server")

	c, err := srv.Client(ctx)
	require.NoError(t, err, "failed to connect in-process client")

	t.Cleanup(func() {
		_ = srv.Close()
	})

	return &Session{Server: srv, Client: c}
}

// ListToolNames returns the names of the listed tools.
func (s *Session) ListToolNames(ctx context.Context) ([]string, error) {
	result, err := s.Client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// CallTool invokes name with args through the session client.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return s.Client.CallTool(ctx, req)
}

// ResultText joins the text content of a tool result.
func ResultText(result *mcp.CallToolResult) string {
	var text string
	for _, content := range result.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			text += tc.Text
		}
	}
	return text
}
