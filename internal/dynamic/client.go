package dynamic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/oauth2"
	"sigs.k8s.io/yaml"

	"mcpapp/internal/catalog"
	"mcpapp/pkg/logging"
)

const defaultTimeout = 30 * time.Second

// maxResponseSize caps how much of a catalog or tool response is read.
const maxResponseSize = 10 << 20

// Client talks to a remote item catalog.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for endpoint. A non-empty token is sent as a
// bearer token on every request.
func NewClient(endpoint, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: defaultTimeout})
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	} else {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: httpClient,
	}
}

// Endpoint returns the catalog base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchTools returns the tool definitions listed at <endpoint>/tools.
func (c *Client) FetchTools(ctx context.Context) ([]catalog.ToolDefinition, error) {
	var defs []catalog.ToolDefinition
	if err := c.fetch(ctx, "tools", &defs); err != nil {
		return nil, err
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid tool %q from %s: %w", d.Name, c.endpoint, err)
		}
	}
	logging.Info("DynamicClient", "Fetched %d tools from %s", len(defs), c.endpoint)
	return defs, nil
}

// FetchPrompts returns the prompt definitions listed at <endpoint>/prompts.
func (c *Client) FetchPrompts(ctx context.Context) ([]catalog.PromptDefinition, error) {
	var defs []catalog.PromptDefinition
	if err := c.fetch(ctx, "prompts", &defs); err != nil {
		return nil, err
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid prompt %q from %s: %w", d.Name, c.endpoint, err)
		}
	}
	logging.Info("DynamicClient", "Fetched %d prompts from %s", len(defs), c.endpoint)
	return defs, nil
}

// fetch decodes a JSON or YAML document into v.
func (c *Client) fetch(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", req.URL, err)
	}
	return nil
}

// ToolHandler forwards calls of the named tool to <endpoint>/tools/<name>/invoke.
// Remote failures become tool errors so the calling model can see them.
func (c *Client) ToolHandler(name string) server.ToolHandlerFunc {
	invokeURL := c.endpoint + "/tools/" + url.PathEscape(name) + "/invoke"

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		payload, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to encode arguments for %s: %w", name, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, invokeURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		body, err := c.do(req)
		if err != nil {
			logging.Warn("DynamicClient", "Tool %s failed: %v", name, err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", req.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// StatusError reports a non-2xx response from the catalog.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s returned %d %s: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}
