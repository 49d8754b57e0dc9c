package mcpconfig

import (
	"os"
	"path/filepath"
)

// EnvConfigVar names the environment variable that can point at an extra,
// highest-precedence configuration file.
const EnvConfigVar = "AIDER_MCP_CONFIG"

// configFileName is the fixed filename for project and local scopes.
const configFileName = ".aider.mcp.json"

// Paths holds the layered configuration file locations, lowest precedence
// first. Empty entries mean the layer is unavailable.
type Paths struct {
	Global  string // <home>/.aider/mcp-config.json
	Project string // <project-root>/.aider.mcp.json, empty without a project root
	Local   string // <cwd>/.aider.mcp.json
	Env     string // $AIDER_MCP_CONFIG, empty when unset
}

// DefaultPaths builds the standard layer locations. projectRoot may be
// empty when no project root is known.
func DefaultPaths(projectRoot string) Paths {
	p := Paths{
		Global: filepath.Join(os.Getenv("HOME"), ".aider", "mcp-config.json"),
		Env:    os.Getenv(EnvConfigVar),
	}
	if projectRoot != "" {
		p.Project = filepath.Join(projectRoot, configFileName)
	}
	if cwd, err := os.Getwd(); err == nil {
		p.Local = filepath.Join(cwd, configFileName)
	}
	return p
}

// ordered returns the layer paths lowest to highest precedence, skipping
// unavailable layers.
func (p Paths) ordered() []string {
	out := make([]string, 0, 4)
	for _, path := range []string{p.Global, p.Project, p.Local, p.Env} {
		if path != "" {
			out = append(out, path)
		}
	}
	return out
}
