package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mcpapp/internal/lineage"
)

// testProject is a project root with an empty lineage directory and an app
// directory for definitions. The environment points mcpapp at both.
type testProject struct {
	root      string
	appDir    string
	configDir string
	paths     lineage.Paths
}

func newTestProject(t *testing.T) testProject {
	t.Helper()

	p := testProject{
		root:      t.TempDir(),
		appDir:    t.TempDir(),
		configDir: t.TempDir(),
	}
	p.paths = lineage.NewPaths(p.root)
	require.NoError(t, os.MkdirAll(p.paths.Dir, 0755))

	t.Setenv("MCP_PROJECT_ROOT", p.root)
	t.Setenv("MCP_APP_DIR", p.appDir)
	t.Setenv("MCP_SERVER_REGISTER_DYNAMIC_TOOLS_ON_STARTUP", "false")
	t.Setenv("MCP_SERVER_REGISTER_DYNAMIC_PROMPTS_ON_STARTUP", "false")
	return p
}

func (p testProject) writeDefinition(t *testing.T, kind, name, content string) {
	t.Helper()
	dir := filepath.Join(p.appDir, kind)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr.
func executeCommand(t *testing.T, p testProject, args ...string) (string, string, error) {
	t.Helper()

	listOutputFormat = "table"
	listNoHeaders = false
	listRemote = remoteFlags{}
	lineageRemote = remoteFlags{}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config-path", p.configDir}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
