package lineage

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ItemSource lists the items registered with an MCP server.
// Each map is keyed by an identifier that the export ignores.
type ItemSource interface {
	GetTools(ctx context.Context) (map[string]mcp.Tool, error)
	GetPrompts(ctx context.Context) (map[string]mcp.Prompt, error)
	GetResources(ctx context.Context) (map[string]mcp.Resource, error)
}

// CollectTools fetches the tools of source and extracts their records.
func CollectTools(ctx context.Context, source ItemSource) (Set[ToolMetadata], error) {
	tools, err := source.GetTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tools: %w", err)
	}
	return collect(tools, ToolMetadataFromTool)
}

// CollectPrompts fetches the prompts of source and extracts their records.
func CollectPrompts(ctx context.Context, source ItemSource) (Set[PromptMetadata], error) {
	prompts, err := source.GetPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompts: %w", err)
	}
	return collect(prompts, PromptMetadataFromPrompt)
}

// CollectResources fetches the resources of source and extracts their records.
func CollectResources(ctx context.Context, source ItemSource) (Set[ResourceMetadata], error) {
	resources, err := source.GetResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get resources: %w", err)
	}
	return collect(resources, ResourceMetadataFromResource)
}

func collect[I any, R comparable](items map[string]I, extract func(I) (R, error)) (Set[R], error) {
	records := make(Set[R], len(items))
	for _, item := range items {
		r, err := extract(item)
		if err != nil {
			return nil, err
		}
		records.Add(r)
	}
	return records, nil
}

// LoadAndSaveTools exports the tool metadata of source to path.
func LoadAndSaveTools(ctx context.Context, source ItemSource, path string) error {
	tools, err := CollectTools(ctx, source)
	if err != nil {
		return err
	}
	return SaveTools(path, tools)
}

// LoadAndSavePrompts exports the prompt metadata of source to path.
func LoadAndSavePrompts(ctx context.Context, source ItemSource, path string) error {
	prompts, err := CollectPrompts(ctx, source)
	if err != nil {
		return err
	}
	return SavePrompts(path, prompts)
}

// LoadAndSaveResources exports the resource metadata of source to path.
func LoadAndSaveResources(ctx context.Context, source ItemSource, path string) error {
	resources, err := CollectResources(ctx, source)
	if err != nil {
		return err
	}
	return SaveResources(path, resources)
}

// LoadAndSaveAll exports tools, then prompts, then resources. The first failure
// stops the run; files written by earlier steps are left in place.
func LoadAndSaveAll(ctx context.Context, source ItemSource, paths Paths) error {
	if err := LoadAndSaveTools(ctx, source, paths.ToolsFile()); err != nil {
		return err
	}
	if err := LoadAndSavePrompts(ctx, source, paths.PromptsFile()); err != nil {
		return err
	}
	return LoadAndSaveResources(ctx, source, paths.ResourcesFile())
}
