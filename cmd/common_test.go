package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpapp/internal/config"
)

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"Authorization: Bearer abc", "X-Empty:"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Authorization": "Bearer abc", "X-Empty": ""}, headers)

	_, err = parseHeaders([]string{": value"})
	assert.Error(t, err)
}

func TestServerOptions(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Dynamic.Endpoint = "http://catalog.example.com"
	cfg.Dynamic.RegisterToolsOnStartup = true

	opts := serverOptions(cfg)

	assert.Equal(t, config.DefaultServerName, opts.Name)
	assert.Equal(t, config.DefaultAppDir, opts.AppDir)
	assert.True(t, opts.LoadNativeItems)
	assert.Len(t, opts.Native.Tools, 2)
	assert.True(t, opts.RegisterDynamicToolsOnStartup)
	assert.False(t, opts.RegisterDynamicPromptsOnStartup)
	require.NotNil(t, opts.Dynamic)
	assert.Equal(t, "http://catalog.example.com", opts.Dynamic.Endpoint())

	cfg.Dynamic = config.DynamicConfig{}
	assert.Nil(t, serverOptions(cfg).Dynamic)
}
