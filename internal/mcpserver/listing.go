package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"mcpapp/internal/lineage"
)

// Client returns an initialized in-process client connected to the server.
// The same client is returned on every call; Close releases it.
func (s *Server) Client(ctx context.Context) (*client.Client, error) {
	s.clientOnce.Do(func() {
		c, err := client.NewInProcessClient(s.mcp)
		if err != nil {
			s.clientErr = fmt.Errorf("failed to create in-process client: %w", err)
			return
		}
		if err := c.Start(ctx); err != nil {
			s.clientErr = fmt.Errorf("failed to start in-process client: %w", err)
			return
		}
		if _, err := c.Initialize(ctx, initializeRequest("mcpapp-inprocess", s.opts.Version)); err != nil {
			c.Close()
			s.clientErr = fmt.Errorf("failed to initialize in-process client: %w", err)
			return
		}
		s.client = c
	})
	return s.client, s.clientErr
}

// GetTools lists the registered tools keyed by name.
func (s *Server) GetTools(ctx context.Context) (map[string]mcp.Tool, error) {
	src, err := s.source(ctx)
	if err != nil {
		return nil, err
	}
	return src.GetTools(ctx)
}

// GetPrompts lists the registered prompts keyed by name.
func (s *Server) GetPrompts(ctx context.Context) (map[string]mcp.Prompt, error) {
	src, err := s.source(ctx)
	if err != nil {
		return nil, err
	}
	return src.GetPrompts(ctx)
}

// GetResources lists the registered resources keyed by URI.
func (s *Server) GetResources(ctx context.Context) (map[string]mcp.Resource, error) {
	src, err := s.source(ctx)
	if err != nil {
		return nil, err
	}
	return src.GetResources(ctx)
}

func (s *Server) source(ctx context.Context) (*lineage.ClientSource, error) {
	c, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}
	return lineage.NewClientSource(c), nil
}

// Close releases the in-process client.
func (s *Server) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func initializeRequest(name, version string) mcp.InitializeRequest {
	var req mcp.InitializeRequest
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: name, Version: version}
	return req
}
