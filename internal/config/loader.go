package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"mcpapp/pkg/logging"
)

const (
	userConfigDir  = ".config/mcpapp"
	configFileName = "config.yaml"
)

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from configPath on top of the defaults and then
// applies environment overrides. A missing file is not an error.
func LoadConfig(configPath string) (AppConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return AppConfig{}, NewConfigurationError(configFilePath, configFileName, "user", "config", "io", err.Error())
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return AppConfig{}, NewConfigurationErrorWithDetails(
				configFilePath, configFileName, "user", "config", "parse",
				"malformed config.yaml", err.Error(),
				[]string{"Check the YAML syntax", "Remove the file to fall back to defaults"},
			)
		}
		logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	if err := ApplyEnvOverrides(&config); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// ApplyEnvOverrides replaces config values with the MCP_* environment
// variables that are set. Unset variables leave the value untouched.
func ApplyEnvOverrides(config *AppConfig) error {
	err := envdecode.Decode(config)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return nil
}
