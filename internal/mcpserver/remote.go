package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"

	"mcpapp/pkg/logging"
)

// Connect opens an initialized client session to a running MCP server.
// URLs ending in /sse use the SSE transport, everything else streamable HTTP.
// headers are sent with every request, for example an Authorization header.
func Connect(ctx context.Context, url string, headers map[string]string) (*client.Client, error) {
	var (
		c   *client.Client
		err error
	)

	if strings.HasSuffix(strings.TrimRight(url, "/"), "/sse") {
		logging.Debug("MCPClient", "Creating SSE client for URL: %s", url)
		c, err = client.NewSSEMCPClient(url, transport.WithHeaders(headers))
	} else {
		logging.Debug("MCPClient", "Creating streamable HTTP client for URL: %s", url)
		c, err = client.NewStreamableHttpClient(url, transport.WithHTTPHeaders(headers))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", url, err)
	}

	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	initResult, err := c.Initialize(ctx, initializeRequest("mcpapp", "dev"))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP protocol with %s: %w", url, err)
	}

	logging.Debug("MCPClient", "Connected to %s %s at %s",
		initResult.ServerInfo.Name, initResult.ServerInfo.Version, url)
	return c, nil
}
