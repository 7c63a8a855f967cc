package mcpserver

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpapp/internal/lineage"
)

// ErrInvalidItem is returned when an item cannot be registered.
var ErrInvalidItem = errors.New("invalid item")

// Tool is a tool together with the category recorded in its metadata.
type Tool struct {
	Definition mcp.Tool
	Category   string
	Handler    server.ToolHandlerFunc
}

// Prompt is a prompt together with the category recorded in its metadata.
type Prompt struct {
	Definition mcp.Prompt
	Category   string
	Handler    server.PromptHandlerFunc
}

// Resource is a resource together with the category recorded in its metadata.
type Resource struct {
	Definition mcp.Resource
	Category   string
	Handler    server.ResourceHandlerFunc
}

// Items groups items registered from one source.
type Items struct {
	Tools     []Tool
	Prompts   []Prompt
	Resources []Resource
}

func (t Tool) serverTool() (server.ServerTool, error) {
	if err := checkItem("tool", t.Definition.Name, t.Category, t.Handler == nil); err != nil {
		return server.ServerTool{}, err
	}
	def := t.Definition
	def.Meta = withCategory(def.Meta, lineage.ToolCategoryKey, t.Category)
	return server.ServerTool{Tool: def, Handler: t.Handler}, nil
}

func (p Prompt) serverPrompt() (server.ServerPrompt, error) {
	if err := checkItem("prompt", p.Definition.Name, p.Category, p.Handler == nil); err != nil {
		return server.ServerPrompt{}, err
	}
	def := p.Definition
	def.Meta = withCategory(def.Meta, lineage.PromptCategoryKey, p.Category)
	return server.ServerPrompt{Prompt: def, Handler: p.Handler}, nil
}

func (r Resource) serverResource() (server.ServerResource, error) {
	if err := checkItem("resource", r.Definition.Name, r.Category, r.Handler == nil); err != nil {
		return server.ServerResource{}, err
	}
	if strings.TrimSpace(r.Definition.URI) == "" {
		return server.ServerResource{}, fmt.Errorf("%w: resource %q has no uri", ErrInvalidItem, r.Definition.Name)
	}
	def := r.Definition
	def.Meta = withCategory(def.Meta, lineage.ResourceCategoryKey, r.Category)
	return server.ServerResource{Resource: def, Handler: r.Handler}, nil
}

func checkItem(kind, name, category string, noHandler bool) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: %s without a name", ErrInvalidItem, kind)
	case strings.TrimSpace(category) == "":
		return fmt.Errorf("%w: %s %q has no category", ErrInvalidItem, kind, name)
	case noHandler:
		return fmt.Errorf("%w: %s %q has no handler", ErrInvalidItem, kind, name)
	}
	return nil
}

// withCategory returns a copy of meta with key set. The caller's meta is not modified.
func withCategory(meta *mcp.Meta, key, category string) *mcp.Meta {
	fields := map[string]any{}
	var progressToken mcp.ProgressToken
	if meta != nil {
		maps.Copy(fields, meta.AdditionalFields)
		progressToken = meta.ProgressToken
	}
	fields[key] = category
	return &mcp.Meta{ProgressToken: progressToken, AdditionalFields: fields}
}
