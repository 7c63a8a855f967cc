package lineage

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
)

// Metadata keys under an item's _meta object that carry its category.
const (
	ToolCategoryKey     = "tool_category"
	PromptCategoryKey   = "prompt_category"
	ResourceCategoryKey = "resource_category"
)

// ErrMissingCategory is returned when an item carries no usable category tag.
var ErrMissingCategory = errors.New("missing category")

// ToolMetadata is the lineage record for a registered tool.
type ToolMetadata struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// PromptMetadata is the lineage record for a registered prompt.
type PromptMetadata struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ResourceMetadata is the lineage record for a registered resource.
type ResourceMetadata struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	URI  string `yaml:"uri"`
}

// ToolMetadataFromTool extracts the lineage record of a tool.
func ToolMetadataFromTool(tool mcp.Tool) (ToolMetadata, error) {
	category, err := category(tool.Meta, ToolCategoryKey)
	if err != nil {
		return ToolMetadata{}, fmt.Errorf("tool %q: %w", tool.Name, err)
	}
	return ToolMetadata{Name: tool.Name, Type: category}, nil
}

// PromptMetadataFromPrompt extracts the lineage record of a prompt.
func PromptMetadataFromPrompt(prompt mcp.Prompt) (PromptMetadata, error) {
	category, err := category(prompt.Meta, PromptCategoryKey)
	if err != nil {
		return PromptMetadata{}, fmt.Errorf("prompt %q: %w", prompt.Name, err)
	}
	return PromptMetadata{Name: prompt.Name, Type: category}, nil
}

// ResourceMetadataFromResource extracts the lineage record of a resource.
// The URI is stored in its canonical string form.
func ResourceMetadataFromResource(resource mcp.Resource) (ResourceMetadata, error) {
	category, err := category(resource.Meta, ResourceCategoryKey)
	if err != nil {
		return ResourceMetadata{}, fmt.Errorf("resource %q: %w", resource.Name, err)
	}
	uri, err := canonicalURI(resource.URI)
	if err != nil {
		return ResourceMetadata{}, fmt.Errorf("resource %q: %w", resource.Name, err)
	}
	return ResourceMetadata{Name: resource.Name, Type: category, URI: uri}, nil
}

func category(meta *mcp.Meta, key string) (string, error) {
	if meta == nil {
		return "", fmt.Errorf("%w: no _meta, expected key %q", ErrMissingCategory, key)
	}
	raw, ok := meta.AdditionalFields[key]
	if !ok {
		return "", fmt.Errorf("%w: key %q not found in _meta", ErrMissingCategory, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q is %T, not a string", ErrMissingCategory, key, raw)
	}
	if value == "" {
		return "", fmt.Errorf("%w: key %q is empty", ErrMissingCategory, key)
	}
	return value, nil
}

func canonicalURI(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid uri %q: %w", raw, err)
	}
	return u.String(), nil
}
