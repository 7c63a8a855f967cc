package config

// AppConfig is the top-level configuration structure for mcpapp.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Items   ItemsConfig   `yaml:"items"`
	Dynamic DynamicConfig `yaml:"dynamic"`
	Lineage LineageConfig `yaml:"lineage"`
	Logging LoggingConfig `yaml:"logging"`
}

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

// ServerConfig defines how the MCP server identifies itself and where it listens.
type ServerConfig struct {
	Name      string `yaml:"name,omitempty" env:"MCP_SERVER_NAME"`           // Server name reported on initialize (default: mcpapp)
	Host      string `yaml:"host,omitempty" env:"MCP_SERVER_HOST"`           // Host to bind to (default: localhost)
	Port      int    `yaml:"port,omitempty" env:"MCP_SERVER_PORT,strict"`    // Port for HTTP transports (default: 8080)
	Transport string `yaml:"transport,omitempty" env:"MCP_SERVER_TRANSPORT"` // Transport to use (default: streamable-http)
}

// ItemsConfig controls which statically defined items are registered.
type ItemsConfig struct {
	// AppDir holds the tools/, prompts/ and resources/ definition directories.
	AppDir     string `yaml:"appDir,omitempty" env:"MCP_APP_DIR"`
	LoadNative bool   `yaml:"loadNative"`
}

// DynamicConfig controls registration of items served by a remote catalog.
type DynamicConfig struct {
	Endpoint                 string `yaml:"endpoint,omitempty" env:"MCP_DYNAMIC_ENDPOINT"`
	APIToken                 string `yaml:"-" env:"MCP_API_TOKEN"`
	RegisterToolsOnStartup   bool   `yaml:"registerToolsOnStartup" env:"MCP_SERVER_REGISTER_DYNAMIC_TOOLS_ON_STARTUP"`
	RegisterPromptsOnStartup bool   `yaml:"registerPromptsOnStartup" env:"MCP_SERVER_REGISTER_DYNAMIC_PROMPTS_ON_STARTUP"`
}

// Enabled reports whether any dynamic registration is requested.
func (d DynamicConfig) Enabled() bool {
	return d.RegisterToolsOnStartup || d.RegisterPromptsOnStartup
}

// LineageConfig locates the exported metadata files.
type LineageConfig struct {
	// ProjectRoot is the directory lineage/mcp_item_metadata is resolved against.
	ProjectRoot string `yaml:"projectRoot,omitempty" env:"MCP_PROJECT_ROOT"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" env:"MCP_LOG_LEVEL"`
	Format string `yaml:"format,omitempty" env:"MCP_LOG_FORMAT"`
}
