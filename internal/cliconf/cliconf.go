// Package cliconf reads MCP-related flag defaults from .aider.conf.yml,
// searched in the current directory, the project root, then the user's
// home directory. Flags given on the command line always win.
package cliconf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const confFileName = ".aider.conf.yml"

// Conf holds the MCP flag defaults an .aider.conf.yml may set.
type Conf struct {
	MCPConfig        string   `yaml:"mcp-config"`
	MCPServers       []string `yaml:"mcp-servers"`
	EnableAiderTools bool     `yaml:"enable-aider-tools"`
}

// Load reads the first .aider.conf.yml found in cwd, projectRoot, or the
// home directory. A missing file yields an empty Conf, not an error.
func Load(projectRoot string) (*Conf, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, confFileName))
	}
	if projectRoot != "" {
		candidates = append(candidates, filepath.Join(projectRoot, confFileName))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, confFileName))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		conf := &Conf{}
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return conf, nil
	}
	return &Conf{}, nil
}
