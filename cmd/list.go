package cmd

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"mcpapp/internal/cli"
)

var (
	listOutputFormat string
	listNoHeaders    bool
	listRemote       remoteFlags
)

// listKinds maps accepted arguments to the singular item kind.
var listKinds = map[string]string{
	"tool":      "tool",
	"tools":     "tool",
	"prompt":    "prompt",
	"prompts":   "prompt",
	"resource":  "resource",
	"resources": "resource",
}

// listCmd prints the registered items of one kind with their categories.
var listCmd = &cobra.Command{
	Use:   "list <tools|prompts|resources>",
	Short: "List registered tools, prompts or resources with their categories",
	Long: `Lists the items an MCP server registers, with the category each one carries
in its _meta.

Without --url an in-process server is built from the configuration, so the
output matches what "mcpapp serve" would expose.

Examples:
  mcpapp list tools
  mcpapp list resources -o yaml
  mcpapp list prompts --url http://localhost:8080/mcp`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tools", "prompts", "resources"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	kind, ok := listKinds[args[0]]
	if !ok {
		return fmt.Errorf("unknown item kind %q (valid: tools, prompts, resources)", args[0])
	}
	if err := cli.ValidateOutputFormat(listOutputFormat); err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg, false, cmd.ErrOrStderr())

	c, release, err := itemClient(ctx, serverOptions(cfg), listRemote)
	if err != nil {
		return err
	}
	defer release()

	var rows []cli.ItemRow
	switch kind {
	case "tool":
		result, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		if err != nil {
			return fmt.Errorf("failed to list tools: %w", err)
		}
		rows = cli.ToolRows(result.Tools)
	case "prompt":
		result, err := c.ListPrompts(ctx, mcp.ListPromptsRequest{})
		if err != nil {
			return fmt.Errorf("failed to list prompts: %w", err)
		}
		rows = cli.PromptRows(result.Prompts)
	case "resource":
		result, err := c.ListResources(ctx, mcp.ListResourcesRequest{})
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		rows = cli.ResourceRows(result.Resources)
	}

	return cli.FormatItems(cmd.OutOrStdout(), kind, rows, cli.OutputFormat(listOutputFormat), listNoHeaders)
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml)")
	listCmd.Flags().BoolVar(&listNoHeaders, "no-headers", false, "Suppress header row in table output")
	listCmd.Flags().StringVar(&listRemote.URL, "url", "", "URL of a running MCP server (streamable HTTP, or SSE when it ends in /sse)")
	listCmd.Flags().StringArrayVarP(&listRemote.Headers, "header", "H", nil, `Header sent to --url, as "Name: value" (repeatable)`)
}
