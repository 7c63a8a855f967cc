package catalog

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, d ToolDefinition, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = d.Name
	req.Params.Arguments = args
	result, err := d.Handler()(context.Background(), req)
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestToolDefinition(t *testing.T) {
	d := ToolDefinition{
		Name:        "greet",
		Description: "Say hello",
		Category:    "example",
		Arguments: []Argument{
			{Name: "who", Description: "Who to greet", Required: true},
			{Name: "punctuation"},
		},
		Response: "Hello {{ .who }}{{ .punctuation }}",
	}

	tool := d.MCPTool()
	assert.Equal(t, "greet", tool.Name)
	assert.Equal(t, "Say hello", tool.Description)
	assert.Equal(t, []string{"who"}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, "punctuation")

	result := callTool(t, d, map[string]any{"who": "world", "punctuation": "!"})
	assert.False(t, result.IsError)
	assert.Equal(t, "Hello world!", resultText(t, result))

	result = callTool(t, d, map[string]any{"who": "world"})
	assert.Equal(t, "Hello world", resultText(t, result))

	result = callTool(t, d, map[string]any{})
	assert.True(t, result.IsError)

	result = callTool(t, d, map[string]any{"who": "   "})
	assert.True(t, result.IsError)
}

func TestPromptDefinition(t *testing.T) {
	d := PromptDefinition{
		Name:        "summarize",
		Description: "Summarize a topic",
		Category:    "writing",
		Arguments:   []Argument{{Name: "topic", Required: true}, {Name: "tone"}},
		Messages: []PromptMessage{
			{Role: "user", Content: "Summarize {{ .topic }} {{ .tone }}"},
			{Role: "assistant", Content: "Sure."},
		},
	}

	prompt := d.MCPPrompt()
	require.Len(t, prompt.Arguments, 2)
	assert.True(t, prompt.Arguments[0].Required)

	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"topic": "go"}
	result, err := d.Handler()(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	text, ok := mcp.AsTextContent(result.Messages[0].Content)
	require.True(t, ok)
	assert.Equal(t, "Summarize go ", text.Text)

	req.Params.Arguments = nil
	_, err = d.Handler()(context.Background(), req)
	assert.Error(t, err)
}

func TestResourceDefinition(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte("# Guide"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.bin"), []byte{0, 1, 2}, 0644))

	tests := []struct {
		name     string
		def      ResourceDefinition
		wantMIME string
		wantText string
		wantBlob []byte
	}{
		{
			name:     "inline text",
			def:      ResourceDefinition{URI: "x://a", Name: "a", Text: "hello"},
			wantMIME: "text/plain",
			wantText: "hello",
		},
		{
			name:     "text file",
			def:      ResourceDefinition{URI: "x://b", Name: "b", File: filepath.Join(dir, "guide.md"), MIMEType: "text/markdown"},
			wantMIME: "text/markdown",
			wantText: "# Guide",
		},
		{
			name:     "binary file",
			def:      ResourceDefinition{URI: "x://c", Name: "c", File: filepath.Join(dir, "logo.bin")},
			wantMIME: "application/octet-stream",
			wantBlob: []byte{0, 1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource := tt.def.MCPResource()
			assert.Equal(t, tt.def.URI, resource.URI)
			assert.Equal(t, tt.wantMIME, resource.MIMEType)

			contents, err := tt.def.Handler()(context.Background(), mcp.ReadResourceRequest{})
			require.NoError(t, err)
			require.Len(t, contents, 1)

			if tt.wantBlob != nil {
				blob, ok := contents[0].(mcp.BlobResourceContents)
				require.True(t, ok)
				assert.Equal(t, base64.StdEncoding.EncodeToString(tt.wantBlob), blob.Blob)
				return
			}
			text, ok := contents[0].(mcp.TextResourceContents)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, text.Text)
		})
	}
}

func TestResourceDefinition_MissingFile(t *testing.T) {
	d := ResourceDefinition{URI: "x://gone", Name: "gone", File: filepath.Join(t.TempDir(), "gone.txt")}

	_, err := d.Handler()(context.Background(), mcp.ReadResourceRequest{})
	assert.Error(t, err)
}
