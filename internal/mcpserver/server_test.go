package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpapp/internal/dynamic"
	"mcpapp/internal/lineage"
)

func echoTool(name, category string) Tool {
	return Tool{
		Definition: mcp.NewTool(name, mcp.WithDescription("echo")),
		Category:   category,
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(name), nil
		},
	}
}

func staticPrompt(name, category string) Prompt {
	return Prompt{
		Definition: mcp.NewPrompt(name),
		Category:   category,
		Handler: func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult(name, nil), nil
		},
	}
}

func staticResource(uri, name, category string) Resource {
	return Resource{
		Definition: mcp.NewResource(uri, name),
		Category:   category,
		Handler: func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{mcp.TextResourceContents{URI: uri, Text: name}}, nil
		},
	}
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_NativeItems(t *testing.T) {
	native := Items{
		Tools:     []Tool{echoTool("bbb", "dafad"), echoTool("aaa", "dafad")},
		Prompts:   []Prompt{staticPrompt("greeting", "onboarding")},
		Resources: []Resource{staticResource("uri://bbb", "bbb", "docs")},
	}

	s := newTestServer(t, Options{LoadNativeItems: true, Native: native})
	ctx := context.Background()

	tools, err := s.GetTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "dafad", tools["aaa"].Meta.AdditionalFields[lineage.ToolCategoryKey])

	prompts, err := s.GetPrompts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "onboarding", prompts["greeting"].Meta.AdditionalFields[lineage.PromptCategoryKey])

	resources, err := s.GetResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, "docs", resources["uri://bbb"].Meta.AdditionalFields[lineage.ResourceCategoryKey])
}

func TestNew_NativeItemsDisabled(t *testing.T) {
	s := newTestServer(t, Options{
		LoadNativeItems: false,
		Native:          Items{Tools: []Tool{echoTool("aaa", "x")}},
	})

	tools, err := s.GetTools(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestAddTool_Validation(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name string
		tool Tool
	}{
		{name: "no category", tool: echoTool("aaa", "")},
		{name: "blank category", tool: echoTool("aaa", "  ")},
		{name: "no name", tool: echoTool("", "x")},
		{name: "no handler", tool: Tool{Definition: mcp.NewTool("aaa"), Category: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddTool(tt.tool)
			assert.ErrorIs(t, err, ErrInvalidItem)
		})
	}

	tools, err := s.GetTools(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestAddTool_Duplicate(t *testing.T) {
	s := newTestServer(t, Options{})

	require.NoError(t, s.AddTool(echoTool("aaa", "x")))
	err := s.AddTool(echoTool("aaa", "y"))
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestAddResource_RequiresURI(t *testing.T) {
	s := newTestServer(t, Options{})

	err := s.AddResource(staticResource("", "nouri", "x"))
	assert.ErrorIs(t, err, ErrInvalidItem)
	require.NoError(t, s.AddResource(staticResource("uri://ok", "ok", "x")))
}

func TestAddTool_KeepsExistingMeta(t *testing.T) {
	s := newTestServer(t, Options{})

	tool := echoTool("aaa", "x")
	tool.Definition.Meta = mcp.NewMetaFromMap(map[string]any{"owner": "team-a"})
	require.NoError(t, s.AddTool(tool))

	tools, err := s.GetTools(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "team-a", tools["aaa"].Meta.AdditionalFields["owner"])
	assert.Equal(t, "x", tools["aaa"].Meta.AdditionalFields[lineage.ToolCategoryKey])
	assert.NotContains(t, tool.Definition.Meta.AdditionalFields, lineage.ToolCategoryKey)
}

func writeDefinition(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNew_DirectoryItemsAndReload(t *testing.T) {
	appDir := t.TempDir()
	writeDefinition(t, filepath.Join(appDir, "tools", "greet.yaml"), `
name: greet
category: example
arguments:
  - name: who
    required: true
response: "Hello {{ .who }}"
`)
	writeDefinition(t, filepath.Join(appDir, "resources", "readme.yaml"), `
uri: docs://readme
name: readme
category: docs
text: read me
`)

	s := newTestServer(t, Options{
		AppDir:          appDir,
		LoadNativeItems: true,
		Native:          Items{Tools: []Tool{echoTool("native", "x")}},
	})
	ctx := context.Background()

	c, err := s.Client(ctx)
	require.NoError(t, err)
	var req mcp.CallToolRequest
	req.Params.Name = "greet"
	req.Params.Arguments = map[string]any{"who": "gopher"}
	result, err := c.CallTool(ctx, req)
	require.NoError(t, err)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Equal(t, "Hello gopher", text.Text)

	require.NoError(t, os.Remove(filepath.Join(appDir, "tools", "greet.yaml")))
	writeDefinition(t, filepath.Join(appDir, "tools", "bye.yaml"), "name: bye\ncategory: example\nresponse: bye\n")
	require.NoError(t, s.Reload(ctx))

	tools, err := s.GetTools(ctx)
	require.NoError(t, err)
	assert.Contains(t, tools, "bye")
	assert.Contains(t, tools, "native")
	assert.NotContains(t, tools, "greet")

	// A broken edit keeps the previous items.
	writeDefinition(t, filepath.Join(appDir, "tools", "broken.yaml"), "name: broken\n")
	assert.Error(t, s.Reload(ctx))
	tools, err = s.GetTools(ctx)
	require.NoError(t, err)
	assert.Contains(t, tools, "bye")

	// A directory item may not shadow a native one.
	require.NoError(t, os.Remove(filepath.Join(appDir, "tools", "broken.yaml")))
	writeDefinition(t, filepath.Join(appDir, "tools", "native.yaml"), "name: native\ncategory: example\n")
	err = s.Reload(ctx)
	assert.ErrorIs(t, err, ErrInvalidItem)
	tools, err = s.GetTools(ctx)
	require.NoError(t, err)
	assert.Contains(t, tools, "bye")
}

func TestNew_InvalidDirectory(t *testing.T) {
	appDir := t.TempDir()
	writeDefinition(t, filepath.Join(appDir, "prompts", "p.yaml"), "name: p\n")

	_, err := New(context.Background(), Options{AppDir: appDir})
	assert.Error(t, err)
}

func TestNew_DynamicItems(t *testing.T) {
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tools":
			_, _ = w.Write([]byte(`[{"name":"remote_tool","category":"remote"}]`))
		case "/prompts":
			_, _ = w.Write([]byte(`[{"name":"remote_prompt","category":"remote","messages":[{"role":"user","content":"hi"}]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer catalogSrv.Close()

	s := newTestServer(t, Options{
		RegisterDynamicToolsOnStartup:   true,
		RegisterDynamicPromptsOnStartup: false,
		Dynamic:                         dynamic.NewClient(catalogSrv.URL, ""),
	})

	tools, err := s.GetTools(context.Background())
	require.NoError(t, err)
	assert.Contains(t, tools, "remote_tool")

	prompts, err := s.GetPrompts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestNew_DynamicWithoutClient(t *testing.T) {
	_, err := New(context.Background(), Options{RegisterDynamicToolsOnStartup: true})
	assert.Error(t, err)
}

func TestNew_DynamicFetchFails(t *testing.T) {
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer catalogSrv.Close()

	_, err := New(context.Background(), Options{
		RegisterDynamicPromptsOnStartup: true,
		Dynamic:                         dynamic.NewClient(catalogSrv.URL, ""),
	})
	require.Error(t, err)

	var statusErr *dynamic.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestServer_LineageExport(t *testing.T) {
	s := newTestServer(t, Options{
		LoadNativeItems: true,
		Native: Items{
			Tools:     []Tool{echoTool("bbb", "dafad"), echoTool("aaa", "dafad")},
			Prompts:   []Prompt{staticPrompt("greeting", "onboarding")},
			Resources: []Resource{staticResource("uri://bbb", "bbb", "docs")},
		},
	})

	paths := lineage.Paths{Dir: t.TempDir()}
	require.NoError(t, lineage.LoadAndSaveAll(context.Background(), s, paths))

	data, err := os.ReadFile(paths.ToolsFile())
	require.NoError(t, err)
	assert.Equal(t, "- name: aaa\n  type: dafad\n- name: bbb\n  type: dafad\n", string(data))

	data, err = os.ReadFile(paths.ResourcesFile())
	require.NoError(t, err)
	assert.Equal(t, "- name: bbb\n  type: docs\n  uri: uri://bbb\n", string(data))
}
