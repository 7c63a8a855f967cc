package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"mcpapp/internal/cli"
	"mcpapp/internal/lineage"
	"mcpapp/internal/mcpserver"
)

// loadAndSaveCmd exports the lineage metadata of every registered item.
var loadAndSaveCmd = &cobra.Command{
	Use:   "load-and-save-mcp-item-metadata",
	Short: "Write the name and category of every registered item to lineage/mcp_item_metadata",
	Long: `Builds the MCP server with its native items, the definitions under the app
directory and, when configured, the dynamic items. It then lists the tools,
prompts and resources and writes one YAML file per kind:

  lineage/mcp_item_metadata/mcp_tools.yaml
  lineage/mcp_item_metadata/mcp_prompts.yaml
  lineage/mcp_item_metadata/mcp_resources.yaml

Records are sorted by name. Tools are written first, then prompts, then
resources; the first failure stops the run, for example an item without a
category. The lineage directory must exist.`,
	Args: cobra.NoArgs,
	RunE: runLoadAndSave,
}

func runLoadAndSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg, false, cmd.ErrOrStderr())

	opts := serverOptions(cfg)
	opts.LoadNativeItems = true

	srv, err := mcpserver.New(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer srv.Close()

	paths := lineage.NewPaths(cfg.Lineage.ProjectRoot)
	err = cli.RunWithSpinner(cmd.ErrOrStderr(), false, "Exporting MCP item metadata", func() error {
		return lineage.LoadAndSaveAll(ctx, srv, paths)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved MCP item metadata to %s\n", text.FgGreen.Sprint("✅"), paths.Dir)
	return nil
}

var lineageRemote remoteFlags

// lineageCmd groups lineage helpers.
var lineageCmd = &cobra.Command{
	Use:   "lineage",
	Short: "Inspect exported lineage metadata",
}

// lineageDiffCmd is a drift check for CI.
var lineageDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the lineage files with the items the server registers now",
	Long: `Lists the items of the server and compares them with the files under
lineage/mcp_item_metadata without writing anything. Exits with code 2 when they
differ, so a CI job can require the export to be refreshed.

By default an in-process server is built from the configuration. Use --url to
check a running server instead.`,
	Args: cobra.NoArgs,
	RunE: runLineageDiff,
}

func runLineageDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	initLogging(cfg, false, cmd.ErrOrStderr())

	// Match what load-and-save-mcp-item-metadata exports.
	opts := serverOptions(cfg)
	opts.LoadNativeItems = true

	c, release, err := itemClient(ctx, opts, lineageRemote)
	if err != nil {
		return err
	}
	defer release()

	drift, err := lineage.Compare(ctx, lineage.NewClientSource(c), lineage.NewPaths(cfg.Lineage.ProjectRoot))
	if err != nil {
		return err
	}

	cli.FormatDrift(cmd.OutOrStdout(), drift)
	return cli.NewDriftError(drift)
}

func init() {
	rootCmd.AddCommand(loadAndSaveCmd)
	rootCmd.AddCommand(lineageCmd)
	lineageCmd.AddCommand(lineageDiffCmd)

	lineageDiffCmd.Flags().StringVar(&lineageRemote.URL, "url", "", "URL of a running MCP server (streamable HTTP, or SSE when it ends in /sse)")
	lineageDiffCmd.Flags().StringArrayVarP(&lineageRemote.Headers, "header", "H", nil, `Header sent to --url, as "Name: value" (repeatable)`)
}
