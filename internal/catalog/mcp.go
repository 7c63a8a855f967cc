package catalog

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPTool returns the protocol description of the tool.
func (d ToolDefinition) MCPTool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, a := range d.Arguments {
		propOpts := []mcp.PropertyOption{mcp.Description(a.Description)}
		if a.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(a.Name, propOpts...))
	}
	return mcp.NewTool(d.Name, opts...)
}

// Handler renders the response template with the call arguments.
// Missing required arguments are reported as a tool error, not a protocol error.
func (d ToolDefinition) Handler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data := make(map[string]any)
		for k, v := range req.GetArguments() {
			data[k] = v
		}
		for _, a := range d.Arguments {
			v, ok := data[a.Name]
			if !ok || v == nil {
				if a.Required {
					return mcp.NewToolResultErrorf("argument %q is required", a.Name), nil
				}
				data[a.Name] = ""
				continue
			}
			if a.Required && strings.TrimSpace(fmt.Sprint(v)) == "" {
				return mcp.NewToolResultErrorf("argument %q must not be blank", a.Name), nil
			}
		}

		text, err := Render(d.Name, d.Response, data)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// MCPPrompt returns the protocol description of the prompt.
func (d PromptDefinition) MCPPrompt() mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(d.Description)}
	for _, a := range d.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.Description)}
		if a.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(a.Name, argOpts...))
	}
	return mcp.NewPrompt(d.Name, opts...)
}

// Handler renders every message with the prompt arguments.
func (d PromptDefinition) Handler() server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		data := make(map[string]any, len(req.Params.Arguments))
		for k, v := range req.Params.Arguments {
			data[k] = v
		}
		for _, a := range d.Arguments {
			if _, ok := data[a.Name]; !ok {
				if a.Required {
					return nil, fmt.Errorf("prompt %q: argument %q is required", d.Name, a.Name)
				}
				data[a.Name] = ""
			}
		}

		messages := make([]mcp.PromptMessage, 0, len(d.Messages))
		for i, m := range d.Messages {
			text, err := Render(fmt.Sprintf("%s[%d]", d.Name, i), m.Content, data)
			if err != nil {
				return nil, err
			}
			messages = append(messages, mcp.NewPromptMessage(mcp.Role(m.Role), mcp.NewTextContent(text)))
		}
		return mcp.NewGetPromptResult(d.Description, messages), nil
	}
}

// MCPResource returns the protocol description of the resource.
func (d ResourceDefinition) MCPResource() mcp.Resource {
	return mcp.NewResource(d.URI, d.Name,
		mcp.WithResourceDescription(d.Description),
		mcp.WithMIMEType(d.mimeType()),
	)
}

// Handler returns the inline text or the current content of the referenced file.
func (d ResourceDefinition) Handler() server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		mimeType := d.mimeType()
		if d.File == "" {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: d.URI, MIMEType: mimeType, Text: d.Text},
			}, nil
		}

		data, err := os.ReadFile(d.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read resource %s: %w", d.URI, err)
		}
		if isTextMIME(mimeType) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: d.URI, MIMEType: mimeType, Text: string(data)},
			}, nil
		}
		return []mcp.ResourceContents{
			mcp.BlobResourceContents{URI: d.URI, MIMEType: mimeType, Blob: base64.StdEncoding.EncodeToString(data)},
		}, nil
	}
}

func (d ResourceDefinition) mimeType() string {
	if d.MIMEType != "" {
		return d.MIMEType
	}
	if d.File != "" {
		if t := mime.TypeByExtension(filepath.Ext(d.File)); t != "" {
			return t
		}
		return "application/octet-stream"
	}
	return "text/plain"
}

func isTextMIME(t string) bool {
	base, _, _ := strings.Cut(t, ";")
	switch {
	case strings.HasPrefix(base, "text/"):
		return true
	case base == "application/json", base == "application/yaml", base == "application/x-yaml":
		return true
	}
	return false
}
