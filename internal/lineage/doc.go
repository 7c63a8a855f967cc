// Package lineage exports the metadata of the items registered with an MCP
// server so downstream tooling can track which tools, prompts and resources
// a deployment exposes.
//
// Each item carries its category under a well-known key of its _meta object.
// The export writes one YAML file per kind, sorted by name:
//
//	lineage/mcp_item_metadata/mcp_tools.yaml
//	lineage/mcp_item_metadata/mcp_prompts.yaml
//	lineage/mcp_item_metadata/mcp_resources.yaml
package lineage
