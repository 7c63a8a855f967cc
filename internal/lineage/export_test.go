package lineage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource records the order in which item kinds are requested.
type fakeSource struct {
	tools     map[string]mcp.Tool
	prompts   map[string]mcp.Prompt
	resources map[string]mcp.Resource

	toolsErr     error
	promptsErr   error
	resourcesErr error

	calls []string
}

func (f *fakeSource) GetTools(ctx context.Context) (map[string]mcp.Tool, error) {
	f.calls = append(f.calls, "tools")
	return f.tools, f.toolsErr
}

func (f *fakeSource) GetPrompts(ctx context.Context) (map[string]mcp.Prompt, error) {
	f.calls = append(f.calls, "prompts")
	return f.prompts, f.promptsErr
}

func (f *fakeSource) GetResources(ctx context.Context) (map[string]mcp.Resource, error) {
	f.calls = append(f.calls, "resources")
	return f.resources, f.resourcesErr
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tools: map[string]mcp.Tool{
			"sadfa": {Name: "sadfa", Meta: mcp.NewMetaFromMap(map[string]any{ToolCategoryKey: "dafad"})},
		},
		prompts: map[string]mcp.Prompt{
			"sadfa": {Name: "sadfa", Meta: mcp.NewMetaFromMap(map[string]any{PromptCategoryKey: "dafad"})},
		},
		resources: map[string]mcp.Resource{
			"uri://sadfa": {URI: "uri://sadfa", Name: "sadfa", Meta: mcp.NewMetaFromMap(map[string]any{ResourceCategoryKey: "dafad"})},
		},
	}
}

func TestLoadAndSaveTools(t *testing.T) {
	src := newFakeSource()
	path := filepath.Join(t.TempDir(), "mcp_tools.yaml")

	require.NoError(t, LoadAndSaveTools(context.Background(), src, path))

	got, err := ReadTools(path)
	require.NoError(t, err)
	want := NewSet(ToolMetadata{Name: "sadfa", Type: "dafad"})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tools mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"tools"}, src.calls)
}

func TestLoadAndSavePrompts(t *testing.T) {
	src := newFakeSource()
	path := filepath.Join(t.TempDir(), "mcp_prompts.yaml")

	require.NoError(t, LoadAndSavePrompts(context.Background(), src, path))

	got, err := ReadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, NewSet(PromptMetadata{Name: "sadfa", Type: "dafad"}), got)
}

func TestLoadAndSaveResources(t *testing.T) {
	src := newFakeSource()
	path := filepath.Join(t.TempDir(), "mcp_resources.yaml")

	require.NoError(t, LoadAndSaveResources(context.Background(), src, path))

	got, err := ReadResources(path)
	require.NoError(t, err)
	assert.Equal(t, NewSet(ResourceMetadata{Name: "sadfa", Type: "dafad", URI: "uri://sadfa"}), got)
}

func TestLoadAndSaveAll(t *testing.T) {
	src := newFakeSource()
	paths := Paths{Dir: t.TempDir()}

	require.NoError(t, LoadAndSaveAll(context.Background(), src, paths))

	assert.Equal(t, []string{"tools", "prompts", "resources"}, src.calls)
	assert.FileExists(t, paths.ToolsFile())
	assert.FileExists(t, paths.PromptsFile())
	assert.FileExists(t, paths.ResourcesFile())
}

func TestLoadAndSaveAllStopsOnFirstError(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*fakeSource)
		wantCalls []string
		wantFiles []func(Paths) string
	}{
		{
			name:      "tools listing fails",
			mutate:    func(f *fakeSource) { f.toolsErr = errors.New("boom") },
			wantCalls: []string{"tools"},
		},
		{
			name: "tool without category",
			mutate: func(f *fakeSource) {
				f.tools["bare"] = mcp.Tool{Name: "bare"}
			},
			wantCalls: []string{"tools"},
		},
		{
			name:      "prompts listing fails",
			mutate:    func(f *fakeSource) { f.promptsErr = errors.New("boom") },
			wantCalls: []string{"tools", "prompts"},
			wantFiles: []func(Paths) string{Paths.ToolsFile},
		},
		{
			name: "resource without category",
			mutate: func(f *fakeSource) {
				f.resources["uri://bare"] = mcp.Resource{URI: "uri://bare", Name: "bare"}
			},
			wantCalls: []string{"tools", "prompts", "resources"},
			wantFiles: []func(Paths) string{Paths.ToolsFile, Paths.PromptsFile},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			tt.mutate(src)
			paths := Paths{Dir: t.TempDir()}

			err := LoadAndSaveAll(context.Background(), src, paths)
			require.Error(t, err)
			assert.Equal(t, tt.wantCalls, src.calls)

			entries, readErr := os.ReadDir(paths.Dir)
			require.NoError(t, readErr)
			assert.Len(t, entries, len(tt.wantFiles))
			for _, file := range tt.wantFiles {
				assert.FileExists(t, file(paths))
			}
		})
	}
}

func TestLoadAndSaveAllMissingCategoryLeavesNoToolsFile(t *testing.T) {
	src := newFakeSource()
	src.tools["bare"] = mcp.Tool{Name: "bare"}
	paths := Paths{Dir: t.TempDir()}

	err := LoadAndSaveAll(context.Background(), src, paths)
	assert.ErrorIs(t, err, ErrMissingCategory)
	assert.NoFileExists(t, paths.ToolsFile())
}

func TestClientSource(t *testing.T) {
	srv := mcptest.NewUnstartedServer(t)
	defer srv.Close()

	tool := mcp.NewTool("aaa", mcp.WithDescription("first tool"))
	tool.Meta = mcp.NewMetaFromMap(map[string]any{ToolCategoryKey: "example"})
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	prompt := mcp.NewPrompt("greeting", mcp.WithPromptDescription("say hello"))
	prompt.Meta = mcp.NewMetaFromMap(map[string]any{PromptCategoryKey: "onboarding"})
	srv.AddPrompts(server.ServerPrompt{
		Prompt: prompt,
		Handler: func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult("hello", nil), nil
		},
	})

	resource := mcp.NewResource("app://info", "info", mcp.WithMIMEType("text/plain"))
	resource.Meta = mcp.NewMetaFromMap(map[string]any{ResourceCategoryKey: "docs"})
	srv.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{mcp.TextResourceContents{URI: "app://info", Text: "info"}}, nil
	})

	require.NoError(t, srv.Start(context.Background()))

	paths := Paths{Dir: t.TempDir()}
	src := NewClientSource(srv.Client())
	require.NoError(t, LoadAndSaveAll(context.Background(), src, paths))

	tools, err := ReadTools(paths.ToolsFile())
	require.NoError(t, err)
	assert.Equal(t, NewSet(ToolMetadata{Name: "aaa", Type: "example"}), tools)

	prompts, err := ReadPrompts(paths.PromptsFile())
	require.NoError(t, err)
	assert.Equal(t, NewSet(PromptMetadata{Name: "greeting", Type: "onboarding"}), prompts)

	resources, err := ReadResources(paths.ResourcesFile())
	require.NoError(t, err)
	assert.Equal(t, NewSet(ResourceMetadata{Name: "info", Type: "docs", URI: "app://info"}), resources)
}
