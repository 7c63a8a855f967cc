// Package config loads mcpapp configuration.
//
// Configuration is read from config.yaml inside a single directory. The default
// directory is ~/.config/mcpapp; the --config-path flag selects another one.
// A missing file means defaults.
//
// After the file is applied, the MCP_* environment variables override individual
// values:
//
//	MCP_SERVER_NAME, MCP_SERVER_HOST, MCP_SERVER_PORT, MCP_SERVER_TRANSPORT
//	MCP_APP_DIR, MCP_PROJECT_ROOT
//	MCP_SERVER_REGISTER_DYNAMIC_TOOLS_ON_STARTUP
//	MCP_SERVER_REGISTER_DYNAMIC_PROMPTS_ON_STARTUP
//	MCP_DYNAMIC_ENDPOINT, MCP_API_TOKEN
//	MCP_LOG_LEVEL, MCP_LOG_FORMAT
//
// The environment is read once, when the command starts. Everything downstream
// receives explicit values.
//
// # Example config.yaml
//
//	server:
//	  name: my-tools
//	  transport: stdio
//	items:
//	  appDir: ./app
//	  loadNative: true
//	dynamic:
//	  endpoint: https://catalog.example.com/api/v1
//	  registerToolsOnStartup: true
//	lineage:
//	  projectRoot: .
package config
