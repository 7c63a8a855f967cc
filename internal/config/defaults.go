package config

const (
	DefaultServerName  = "mcpapp"
	DefaultHost        = "localhost"
	DefaultPort        = 8080
	DefaultAppDir      = "app"
	DefaultProjectRoot = "."
)

// GetDefaultConfig returns the configuration used when no config.yaml exists.
func GetDefaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Name:      DefaultServerName,
			Host:      DefaultHost,
			Port:      DefaultPort,
			Transport: MCPTransportStreamableHTTP,
		},
		Items: ItemsConfig{
			AppDir:     DefaultAppDir,
			LoadNative: true,
		},
		Lineage: LineageConfig{
			ProjectRoot: DefaultProjectRoot,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
