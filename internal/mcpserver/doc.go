// Package mcpserver builds the MCP server and owns item registration.
//
// Every tool, prompt and resource is registered together with a category.
// Registration rejects items without one (ErrInvalidItem) and writes the
// category into the item's _meta under the key the lineage export reads:
//
//	tool_category, prompt_category, resource_category
//
// Items come from three sources, registered in this order by New:
//
//   - native items compiled into the binary (Options.Native)
//   - YAML definitions under Options.AppDir (see package catalog)
//   - a remote catalog, when dynamic registration is enabled
//
// Only directory items are replaced by Reload.
//
// Listing goes through an in-process MCP client, so GetTools, GetPrompts and
// GetResources return exactly what a connected client would see.
package mcpserver
