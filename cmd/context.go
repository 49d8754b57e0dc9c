package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ricardoamaro/aider/internal/cliconf"
	"github.com/ricardoamaro/aider/internal/mcpclient"
	"github.com/ricardoamaro/aider/internal/mcpconfig"
	"github.com/ricardoamaro/aider/internal/modelctx"
	"github.com/ricardoamaro/aider/internal/ui"
	"github.com/spf13/cobra"
)

var (
	mcpContextServers    []string
	mcpContextConfigFile string
	mcpContextAiderTools bool
)

var mcpContextCmd = &cobra.Command{
	Use:   "context [query]",
	Short: "Connect to MCP servers and print the model context block",
	Long: `Connects to the configured MCP servers, collects their tools and the
resources relevant to the query, and prints the context block that would
be injected into a model's input. The server set is the resolved
configuration plus any --mcp-config file and --mcp-server specs
(name:transport:payload).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		cfg := cfgManager.Load(false)
		if !cfg.Settings.GetEnabled() {
			ui.LogWarn("MCP integration is disabled in settings")
			return nil
		}

		defs, err := buildServerSet(*cfg)
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			ui.Hint("No MCP servers configured.")
			return nil
		}

		manager := mcpclient.NewManager(ui.Sink{})
		defer manager.DisconnectAll()

		timeout := time.Duration(cfg.Settings.GetTimeout()) * time.Second
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if !manager.Connect(ctx, defs) {
			return fmt.Errorf("no MCP servers could be connected")
		}
		ui.LogInfo(fmt.Sprintf("MCP integration enabled with %d servers", manager.Sessions()))

		mc := manager.Context(ctx, query)
		if jsonFlag {
			printJSON(mc)
			return nil
		}

		block := renderContext(mc, cfg.Settings.GetContextLimit())
		if block == "" {
			ui.Hint("No MCP context available.")
			return nil
		}
		fmt.Println(block)
		return nil
	},
}

// buildServerSet combines the resolved configuration with CLI input:
// flag values take precedence over .aider.conf.yml defaults, and
// CLI-sourced servers override resolved ones by name.
func buildServerSet(cfg mcpconfig.Configuration) ([]mcpconfig.ServerDefinition, error) {
	conf, err := cliconf.Load(projectRoot)
	if err != nil {
		return nil, err
	}

	configFile := mcpContextConfigFile
	if configFile == "" {
		configFile = conf.MCPConfig
	}
	specs := mcpContextServers
	if len(specs) == 0 {
		specs = conf.MCPServers
	}
	aiderTools := mcpContextAiderTools || conf.EnableAiderTools

	var extra []mcpconfig.ServerDefinition
	if configFile != "" {
		servers, err := mcpconfig.LoadServersFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", configFile, err)
		}
		extra = append(extra, servers...)
	}

	for _, spec := range specs {
		def := mcpconfig.ParseServerSpec(spec)
		if def == nil {
			ui.LogError("Invalid MCP server specification: " + spec)
			continue
		}
		extra = append(extra, *def)
	}

	if aiderTools {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locating aider binary: %w", err)
		}
		extra = append(extra, mcpconfig.ServerDefinition{
			Name:      "aider-tools",
			Transport: mcpconfig.TransportStdio,
			Command:   []string{self, "mcp", "serve"},
		})
	}

	combined := mcpconfig.ApplyCLIServers(cfg, extra)
	return combined.Servers, nil
}

func renderContext(mc mcpclient.ModelContext, limit int) string {
	return strings.TrimSpace(modelctx.Render(mc, limit))
}

func init() {
	mcpContextCmd.Flags().StringArrayVar(&mcpContextServers, "mcp-server", nil,
		"Additional server spec name:transport:payload (repeatable)")
	mcpContextCmd.Flags().StringVar(&mcpContextConfigFile, "mcp-config", "",
		"Additional MCP config file whose servers are overlaid by name")
	mcpContextCmd.Flags().BoolVar(&mcpContextAiderTools, "enable-aider-tools", false,
		"Also start the built-in aider-tools server")

	mcpCmd.AddCommand(mcpContextCmd)
}
