package cliconf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	content := `mcp-config: /etc/aider/mcp.json
mcp-servers:
  - "fs:stdio:mcp-server-filesystem /tmp"
enable-aider-tools: true
`
	if err := os.WriteFile(filepath.Join(home, ".aider.conf.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if conf.MCPConfig != "/etc/aider/mcp.json" {
		t.Errorf("MCPConfig = %q", conf.MCPConfig)
	}
	if len(conf.MCPServers) != 1 {
		t.Errorf("MCPServers = %v, want 1 spec", conf.MCPServers)
	}
	if !conf.EnableAiderTools {
		t.Error("EnableAiderTools should be true")
	}
}

func TestLoadCwdWinsOverHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cwd := t.TempDir()
	t.Chdir(cwd)

	os.WriteFile(filepath.Join(home, ".aider.conf.yml"), []byte("mcp-config: /from-home\n"), 0o644)
	os.WriteFile(filepath.Join(cwd, ".aider.conf.yml"), []byte("mcp-config: /from-cwd\n"), 0o644)

	conf, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.MCPConfig != "/from-cwd" {
		t.Errorf("MCPConfig = %q, want /from-cwd", conf.MCPConfig)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	conf, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if conf.MCPConfig != "" || len(conf.MCPServers) != 0 || conf.EnableAiderTools {
		t.Errorf("missing file should yield zero conf, got %+v", conf)
	}
}

func TestLoadBadYAML(t *testing.T) {
	cwd := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(cwd)

	os.WriteFile(filepath.Join(cwd, ".aider.conf.yml"), []byte("mcp-servers: [unclosed\n"), 0o644)
	if _, err := Load(""); err == nil {
		t.Error("malformed YAML should error")
	}
}
