package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
	"github.com/ricardoamaro/aider/internal/toolserver"
	"github.com/ricardoamaro/aider/internal/ui"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP servers and configuration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the built-in aider-tools MCP server on stdio",
	Long: `Starts the built-in Model Context Protocol (MCP) server on stdio,
exposing local developer tools.

Available tools:
  analyze_file     Analyze a source file for complexity and issues
  run_command      Execute a shell command
  search_codebase  Search for a regex pattern in the codebase
  repo_structure   Get the repository structure as a tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		return toolserver.New(cwd).Run()
	},
}

var mcpListReload bool

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the resolved MCP configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgManager.Load(mcpListReload)

		if jsonFlag {
			printJSON(cfg)
			return nil
		}

		s := cfg.Settings
		ui.SectionHeader("Settings")
		ui.PrintKeyValue("enabled", fmt.Sprintf("%v", s.GetEnabled()))
		ui.PrintKeyValue("timeout", fmt.Sprintf("%ds", s.GetTimeout()))
		ui.PrintKeyValue("max_retries", fmt.Sprintf("%d", s.GetMaxRetries()))
		ui.PrintKeyValue("context_limit", fmt.Sprintf("%d chars", s.GetContextLimit()))
		ui.PrintKeyValue("cache_ttl", fmt.Sprintf("%ds", s.GetCacheTTL()))
		ui.PrintKeyValue("log_level", s.GetLogLevel())

		fmt.Println()
		ui.SectionHeader(fmt.Sprintf("Servers (%d)", len(cfg.Servers)))
		for _, srv := range cfg.Servers {
			state := ui.GreenText("enabled")
			if !srv.IsEnabled() {
				state = ui.DimText("disabled")
			}
			target := srv.URL
			if srv.Transport == mcpconfig.TransportStdio {
				target = strings.Join(srv.Command, " ")
			}
			ui.PrintKeyValue(srv.Name,
				fmt.Sprintf("%s  %s  [%s]", srv.Transport, ui.Truncate(target, 60), state))
		}
		if len(cfg.Servers) == 0 {
			ui.Hint("  No servers configured. Run 'aider mcp init' to create a starter config.")
		}

		if issues := mcpconfig.Validate(cfg); len(issues) > 0 {
			fmt.Println()
			for _, issue := range issues {
				ui.LogWarn(issue)
			}
		}
		return nil
	},
}

var mcpValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the resolved MCP configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgManager.Load(true)
		issues := mcpconfig.Validate(cfg)

		if jsonFlag {
			printJSON(map[string]any{"issues": issues})
		} else {
			for _, issue := range issues {
				ui.LogWarn(issue)
			}
		}
		if len(issues) > 0 {
			return fmt.Errorf("configuration has %d issue(s)", len(issues))
		}
		if !jsonFlag {
			ui.LogSuccess("Configuration is valid")
		}
		return nil
	},
}

var (
	mcpInitScope string
	mcpInitForce bool
)

var mcpInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example MCP configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := cfgManager.Paths()
		target := map[string]string{
			mcpconfig.ScopeGlobal:  paths.Global,
			mcpconfig.ScopeProject: paths.Project,
			mcpconfig.ScopeLocal:   paths.Local,
		}[mcpInitScope]
		if target != "" && !mcpInitForce {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
		}

		path, err := cfgManager.Save(mcpconfig.Example(), mcpInitScope)
		if err != nil {
			return err
		}
		ui.LogSuccess("Wrote example configuration to " + ui.ShortenHome(path, homeDir()))
		ui.Hint("Edit the file to point at real servers, then run 'aider mcp list'.")
		return nil
	},
}

func init() {
	mcpListCmd.Flags().BoolVar(&mcpListReload, "reload", false, "Bypass the configuration cache")
	mcpInitCmd.Flags().StringVar(&mcpInitScope, "scope", mcpconfig.ScopeLocal, "Where to write: global, project, or local")
	mcpInitCmd.Flags().BoolVar(&mcpInitForce, "force", false, "Overwrite an existing file")

	mcpCmd.AddCommand(mcpServeCmd)
	mcpCmd.AddCommand(mcpListCmd)
	mcpCmd.AddCommand(mcpValidateCmd)
	mcpCmd.AddCommand(mcpInitCmd)
	rootCmd.AddCommand(mcpCmd)
}
