// Package cli provides the output layer of the mcpapp command-line interface.
//
// # Listing
//
// ToolRows, PromptRows and ResourceRows turn MCP list results into rows that
// carry the category read from each item's _meta. FormatItems prints them as:
//   - table: kubectl-style plain columns, easy to pipe into grep or awk
//   - wide: the table plus argument counts or MIME types
//   - json and yaml: for programmatic consumption
//
// # Lineage drift
//
// FormatDrift renders the records a lineage check found added or removed as a
// rounded go-pretty table. NewDriftError turns a non-empty drift into a
// DriftError, which carries exit code 2 so CI jobs can tell a stale export
// apart from a failure.
//
// # Progress and errors
//
// RunWithSpinner wraps slow operations such as a metadata export in a
// terminal spinner. ClassifyConnectionError categorizes failures to reach a
// remote server given with --url.
package cli
