package cmd

import (
	"encoding/json"
	"os"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
	"github.com/ricardoamaro/aider/internal/ui"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	jsonFlag  bool

	projectRoot string
	cfgManager  *mcpconfig.Manager
)

var rootCmd = &cobra.Command{
	Use:   "aider",
	Short: "MCP integration for AI pair programming",
	Long: `aider - MCP integration for AI pair programming

Connects to Model Context Protocol servers described by layered
configuration files, collects the tools and resources they expose, and
injects a summary into the context sent to a language model. Also ships
a built-in MCP server with local developer tools.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.DebugEnabled = debugFlag
		projectRoot = findProjectRoot()
		cfgManager = mcpconfig.NewManager(projectRoot, ui.Sink{})
	},
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printJSON is a helper that marshals v to JSON and prints it.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
