package lineage

import (
	"context"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClientSource lists items through an initialized MCP client session.
// It works for in-process servers as well as remote ones.
type ClientSource struct {
	Client client.MCPClient
}

// NewClientSource wraps an initialized client.
func NewClientSource(c client.MCPClient) *ClientSource {
	return &ClientSource{Client: c}
}

// GetTools returns the listed tools keyed by name.
func (s *ClientSource) GetTools(ctx context.Context) (map[string]mcp.Tool, error) {
	result, err := s.Client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	tools := make(map[string]mcp.Tool, len(result.Tools))
	for _, t := range result.Tools {
		tools[t.Name] = t
	}
	return tools, nil
}

// GetPrompts returns the listed prompts keyed by name.
func (s *ClientSource) GetPrompts(ctx context.Context) (map[string]mcp.Prompt, error) {
	result, err := s.Client.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, err
	}
	prompts := make(map[string]mcp.Prompt, len(result.Prompts))
	for _, p := range result.Prompts {
		prompts[p.Name] = p
	}
	return prompts, nil
}

// GetResources returns the listed resources keyed by URI.
func (s *ClientSource) GetResources(ctx context.Context) (map[string]mcp.Resource, error) {
	result, err := s.Client.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, err
	}
	resources := make(map[string]mcp.Resource, len(result.Resources))
	for _, r := range result.Resources {
		resources[r.URI] = r
	}
	return resources, nil
}
