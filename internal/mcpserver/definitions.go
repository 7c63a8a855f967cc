package mcpserver

import (
	"context"
	"fmt"

	"mcpapp/internal/catalog"
	"mcpapp/internal/dynamic"
)

// LoadDirectoryItems turns the definitions under appDir into registrable items.
func LoadDirectoryItems(appDir string) (Items, error) {
	cat, err := catalog.Load(appDir)
	if err != nil {
		return Items{}, fmt.Errorf("failed to load definitions from %s: %w", appDir, err)
	}

	var items Items
	for _, d := range cat.Tools {
		items.Tools = append(items.Tools, Tool{Definition: d.MCPTool(), Category: d.Category, Handler: d.Handler()})
	}
	for _, d := range cat.Prompts {
		items.Prompts = append(items.Prompts, Prompt{Definition: d.MCPPrompt(), Category: d.Category, Handler: d.Handler()})
	}
	for _, d := range cat.Resources {
		items.Resources = append(items.Resources, Resource{Definition: d.MCPResource(), Category: d.Category, Handler: d.Handler()})
	}
	return items, nil
}

// fetchDynamicItems asks the remote catalog for its definitions. Dynamic tools
// run remotely; dynamic prompts are rendered locally.
func fetchDynamicItems(ctx context.Context, dc *dynamic.Client, tools, prompts bool) (Items, error) {
	var items Items

	if tools {
		defs, err := dc.FetchTools(ctx)
		if err != nil {
			return Items{}, fmt.Errorf("failed to fetch dynamic tools: %w", err)
		}
		for _, d := range defs {
			items.Tools = append(items.Tools, Tool{Definition: d.MCPTool(), Category: d.Category, Handler: dc.ToolHandler(d.Name)})
		}
	}

	if prompts {
		defs, err := dc.FetchPrompts(ctx)
		if err != nil {
			return Items{}, fmt.Errorf("failed to fetch dynamic prompts: %w", err)
		}
		for _, d := range defs {
			items.Prompts = append(items.Prompts, Prompt{Definition: d.MCPPrompt(), Category: d.Category, Handler: d.Handler()})
		}
	}

	return items, nil
}
