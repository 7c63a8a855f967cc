// Package dynamic registers items served by a remote catalog.
//
// The catalog exposes
//
//	GET  <endpoint>/tools                a list of tool definitions
//	GET  <endpoint>/prompts              a list of prompt definitions
//	POST <endpoint>/tools/<name>/invoke  runs a tool with a JSON object of arguments
//
// Definitions use the same fields as the YAML files read by package catalog
// and may be sent as JSON or YAML.
package dynamic
