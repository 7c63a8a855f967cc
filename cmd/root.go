package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcpapp/internal/cli"
	"mcpapp/internal/config"
)

// configPath is the directory holding config.yaml. Shared by every command.
var configPath string

// rootCmd represents the base command for the mcpapp application.
var rootCmd = &cobra.Command{
	Use:   "mcpapp",
	Short: "Serve MCP tools, prompts and resources and export their lineage metadata",
	Long: `mcpapp runs an MCP server exposing tools, prompts and resources. Items come
from three places: the ones compiled into the binary, YAML definitions under the
app directory and, when enabled, a remote catalog.

Every item carries a category. The load-and-save-mcp-item-metadata command writes
the name and category of every registered item to lineage/mcp_item_metadata so
changes to the served surface show up in code review.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits with a code describing the outcome.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcpapp version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode maps an error to the process exit code. Errors that know their
// own code, such as a lineage drift, report it.
func getExitCode(err error) int {
	if err == nil {
		return cli.ExitCodeSuccess
	}

	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}

	return cli.ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory containing config.yaml")
}
