package testkit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntegrationSession(t *testing.T) {
	ctx := context.Background()
	session := NewIntegrationSession(t)

	names, err := session.ListToolNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "user_tool_smoke_test")
	assert.Contains(t, names, "user_tool_example")

	result, err := session.CallTool(ctx, "user_tool_smoke_test", map[string]any{"argument1": "test"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, ResultText(result), "user tool smoke test")
}

func TestNewIntegrationSession_AppDir(t *testing.T) {
	ctx := context.Background()
	appDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(appDir, "tools"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "tools", "greet.yaml"), []byte(`
name: greet
description: Says hello
category: demo
response: hello
`), 0644))

	session := NewIntegrationSession(t, WithoutNativeItems(), WithAppDir(appDir))

	names, err := session.ListToolNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greet"}, names)

	result, err := session.CallTool(ctx, "greet", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", ResultText(result))
}
