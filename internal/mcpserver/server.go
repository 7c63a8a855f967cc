package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/server"

	"mcpapp/internal/dynamic"
	"mcpapp/pkg/logging"
)

// Options are the explicit inputs of New. Nothing in this package reads the
// environment.
type Options struct {
	Name    string
	Version string

	// AppDir holds the tools/, prompts/ and resources/ definition directories.
	// Empty disables directory loading.
	AppDir string

	// LoadNativeItems registers Native. Native items are compiled in.
	LoadNativeItems bool
	Native          Items

	RegisterDynamicToolsOnStartup   bool
	RegisterDynamicPromptsOnStartup bool
	Dynamic                         *dynamic.Client

	Transport string
	Host      string
	Port      int

	// Stdin and Stdout default to the process streams for the stdio transport.
	Stdin  io.Reader
	Stdout io.Writer
}

// source tags where a registered item came from, so a reload only replaces
// directory items.
type source int

const (
	sourceNative source = iota
	sourceDirectory
	sourceDynamic
)

func (s source) String() string {
	switch s {
	case sourceNative:
		return "native"
	case sourceDirectory:
		return "directory"
	case sourceDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Server wraps an mcp-go server with category-aware registration.
type Server struct {
	opts Options
	mcp  *server.MCPServer

	mu        sync.Mutex
	tools     map[string]source
	prompts   map[string]source
	resources map[string]source
	bySource  map[source]Items

	clientOnce sync.Once
	client     *client.Client
	clientErr  error

	// Transport state, see transport.go.
	transportMu sync.Mutex
	running     *runningTransport
}

// New builds a server and registers native, directory and dynamic items in
// that order. Any registration failure is returned.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Name == "" {
		opts.Name = "mcpapp"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		opts: opts,
		mcp: server.NewMCPServer(
			opts.Name,
			opts.Version,
			server.WithToolCapabilities(true),
			server.WithPromptCapabilities(true),
			server.WithResourceCapabilities(false, true),
			server.WithRecovery(),
		),
		tools:     make(map[string]source),
		prompts:   make(map[string]source),
		resources: make(map[string]source),
		bySource:  make(map[source]Items),
	}

	if opts.LoadNativeItems {
		if err := s.register(opts.Native, sourceNative); err != nil {
			return nil, fmt.Errorf("failed to register native items: %w", err)
		}
	}

	if opts.AppDir != "" {
		items, err := LoadDirectoryItems(opts.AppDir)
		if err != nil {
			return nil, err
		}
		if err := s.register(items, sourceDirectory); err != nil {
			return nil, fmt.Errorf("failed to register items from %s: %w", opts.AppDir, err)
		}
	}

	if opts.RegisterDynamicToolsOnStartup || opts.RegisterDynamicPromptsOnStartup {
		if opts.Dynamic == nil {
			return nil, errors.New("dynamic registration requested without a dynamic client")
		}
		items, err := fetchDynamicItems(ctx, opts.Dynamic, opts.RegisterDynamicToolsOnStartup, opts.RegisterDynamicPromptsOnStartup)
		if err != nil {
			return nil, err
		}
		if err := s.register(items, sourceDynamic); err != nil {
			return nil, fmt.Errorf("failed to register dynamic items: %w", err)
		}
	}

	logging.Info("MCPServer", "Server %s ready with %d tools, %d prompts, %d resources",
		opts.Name, len(s.tools), len(s.prompts), len(s.resources))
	return s, nil
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Options returns the options the server was built with.
func (s *Server) Options() Options {
	return s.opts
}

// AddTool registers a native tool.
func (s *Server) AddTool(t Tool) error {
	return s.register(Items{Tools: []Tool{t}}, sourceNative)
}

// AddPrompt registers a native prompt.
func (s *Server) AddPrompt(p Prompt) error {
	return s.register(Items{Prompts: []Prompt{p}}, sourceNative)
}

// AddResource registers a native resource.
func (s *Server) AddResource(r Resource) error {
	return s.register(Items{Resources: []Resource{r}}, sourceNative)
}

// register validates every item first and only then touches the server, so a
// bad item leaves the registry unchanged.
func (s *Server) register(items Items, src source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerLocked(items, src)
}

func (s *Server) registerLocked(items Items, src source) error {
	tools := make([]server.ServerTool, 0, len(items.Tools))
	prompts := make([]server.ServerPrompt, 0, len(items.Prompts))
	resources := make([]server.ServerResource, 0, len(items.Resources))

	seen := make(map[string]bool)
	claim := func(kind, key string, registered map[string]source) error {
		if owner, ok := registered[key]; ok {
			return fmt.Errorf("%w: %s %q is already registered by a %s source", ErrInvalidItem, kind, key, owner)
		}
		if seen[kind+"/"+key] {
			return fmt.Errorf("%w: %s %q is defined twice", ErrInvalidItem, kind, key)
		}
		seen[kind+"/"+key] = true
		return nil
	}

	for _, t := range items.Tools {
		st, err := t.serverTool()
		if err != nil {
			return err
		}
		if err := claim("tool", st.Tool.Name, s.tools); err != nil {
			return err
		}
		tools = append(tools, st)
	}
	for _, p := range items.Prompts {
		sp, err := p.serverPrompt()
		if err != nil {
			return err
		}
		if err := claim("prompt", sp.Prompt.Name, s.prompts); err != nil {
			return err
		}
		prompts = append(prompts, sp)
	}
	for _, r := range items.Resources {
		sr, err := r.serverResource()
		if err != nil {
			return err
		}
		if err := claim("resource", sr.Resource.URI, s.resources); err != nil {
			return err
		}
		resources = append(resources, sr)
	}

	if len(tools) > 0 {
		s.mcp.AddTools(tools...)
	}
	if len(prompts) > 0 {
		s.mcp.AddPrompts(prompts...)
	}
	if len(resources) > 0 {
		s.mcp.AddResources(resources...)
	}
	for _, t := range tools {
		s.tools[t.Tool.Name] = src
	}
	for _, p := range prompts {
		s.prompts[p.Prompt.Name] = src
	}
	for _, r := range resources {
		s.resources[r.Resource.URI] = src
	}
	owned := s.bySource[src]
	owned.Tools = append(owned.Tools, items.Tools...)
	owned.Prompts = append(owned.Prompts, items.Prompts...)
	owned.Resources = append(owned.Resources, items.Resources...)
	s.bySource[src] = owned

	logging.Debug("MCPServer", "Registered %d tools, %d prompts, %d resources from %s source",
		len(tools), len(prompts), len(resources), src)
	return nil
}

// Reload replaces the directory items with the current content of AppDir.
// When the directory cannot be loaded the previous items stay registered.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.AppDir == "" {
		return nil
	}

	items, err := LoadDirectoryItems(s.opts.AppDir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.unregisterLocked(sourceDirectory)
	if err := s.registerLocked(items, sourceDirectory); err != nil {
		// Put the previous items back so a bad edit does not empty the server.
		if restoreErr := s.registerLocked(removed, sourceDirectory); restoreErr != nil {
			logging.Error("MCPServer", restoreErr, "Failed to restore directory items")
		}
		return err
	}

	logging.Info("MCPServer", "Reloaded %d tools, %d prompts, %d resources from %s",
		len(items.Tools), len(items.Prompts), len(items.Resources), s.opts.AppDir)
	return nil
}

// unregisterLocked removes every item of src and returns them.
func (s *Server) unregisterLocked(src source) Items {
	removed := s.bySource[src]
	delete(s.bySource, src)

	var toolNames, promptNames, uris []string
	for _, t := range removed.Tools {
		toolNames = append(toolNames, t.Definition.Name)
		delete(s.tools, t.Definition.Name)
	}
	for _, p := range removed.Prompts {
		promptNames = append(promptNames, p.Definition.Name)
		delete(s.prompts, p.Definition.Name)
	}
	for _, r := range removed.Resources {
		uris = append(uris, r.Definition.URI)
		delete(s.resources, r.Definition.URI)
	}

	if len(toolNames) > 0 {
		s.mcp.DeleteTools(toolNames...)
	}
	if len(promptNames) > 0 {
		s.mcp.DeletePrompts(promptNames...)
	}
	if len(uris) > 0 {
		s.mcp.DeleteResources(uris...)
	}
	return removed
}
