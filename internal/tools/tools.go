// Package tools holds the items compiled into mcpapp. They double as examples
// for writing new native tools, prompts and resources.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"mcpapp/internal/mcpserver"
	"mcpapp/pkg/logging"
)

// ServerInfo is what the app://info resource reports.
type ServerInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Transport string `json:"transport,omitempty"`
}

// Native returns every compiled-in item.
func Native(info ServerInfo) mcpserver.Items {
	return mcpserver.Items{
		Tools:     []mcpserver.Tool{UserToolExample(), UserToolSmokeTest()},
		Prompts:   []mcpserver.Prompt{UserPromptExample()},
		Resources: []mcpserver.Resource{InfoResource(info)},
	}
}

// UserToolExample is a template for writing new tools.
func UserToolExample() mcpserver.Tool {
	return mcpserver.Tool{
		Definition: mcp.NewTool("user_tool_example",
			mcp.WithDescription("A user tool example description."),
			mcp.WithString("argument1",
				mcp.Required(),
				mcp.Description("A user tool example argument."),
			),
		),
		Category: "example",
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			argument1 := request.GetString("argument1", "")
			if strings.TrimSpace(argument1) == "" {
				return mcp.NewToolResultError("Argument validation error: 'argument1' cannot be empty."), nil
			}

			logging.Info("UserTools", "User tool example called with argument: %s", argument1)
			return mcp.NewToolResultStructured(
				map[string]any{"message": "user tool example"},
				`{"message":"user tool example"}`,
			), nil
		},
	}
}

// UserToolSmokeTest checks that user tools are wired end to end.
func UserToolSmokeTest() mcpserver.Tool {
	return mcpserver.Tool{
		Definition: mcp.NewTool("user_tool_smoke_test",
			mcp.WithDescription("A user tool used for a smoke test on user tools functionality."),
			mcp.WithString("argument1", mcp.Description("A smoke test argument.")),
		),
		Category: "smoke-test",
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("user tool smoke test"), nil
		},
	}
}

// UserPromptExample is a template for writing new prompts.
func UserPromptExample() mcpserver.Prompt {
	return mcpserver.Prompt{
		Definition: mcp.NewPrompt("user_prompt_example",
			mcp.WithPromptDescription("Ask for a short explanation of a topic."),
			mcp.WithArgument("topic",
				mcp.ArgumentDescription("The topic to explain."),
				mcp.RequiredArgument(),
			),
		),
		Category: "example",
		Handler: func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			topic := strings.TrimSpace(request.Params.Arguments["topic"])
			if topic == "" {
				return nil, fmt.Errorf("argument 'topic' cannot be empty")
			}
			return mcp.NewGetPromptResult(
				"Explain a topic",
				[]mcp.PromptMessage{
					mcp.NewPromptMessage(mcp.RoleUser,
						mcp.NewTextContent(fmt.Sprintf("Explain %s in three sentences.", topic))),
				},
			), nil
		},
	}
}

// InfoResource describes the running server as JSON.
func InfoResource(info ServerInfo) mcpserver.Resource {
	return mcpserver.Resource{
		Definition: mcp.NewResource("app://info", "server_info",
			mcp.WithResourceDescription("Name and version of this MCP server."),
			mcp.WithMIMEType("application/json"),
		),
		Category: "info",
		Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			data, err := json.Marshal(info)
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: "app://info", MIMEType: "application/json", Text: string(data)},
			}, nil
		},
	}
}
