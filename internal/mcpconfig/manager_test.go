package mcpconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// recordingSink captures notices for assertions.
type recordingSink struct {
	infos    []string
	warnings []string
	errs     []string
}

func (r *recordingSink) Info(msg string)    { r.infos = append(r.infos, msg) }
func (r *recordingSink) Warning(msg string) { r.warnings = append(r.warnings, msg) }
func (r *recordingSink) Error(msg string)   { r.errs = append(r.errs, msg) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testPaths(dir string) Paths {
	return Paths{
		Global:  filepath.Join(dir, "home", ".aider", "mcp-config.json"),
		Project: filepath.Join(dir, "project", ".aider.mcp.json"),
		Local:   filepath.Join(dir, "local", ".aider.mcp.json"),
	}
}

func TestLoadLocalOnly(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"servers":[{"name":"s1","transport":"stdio","command":["echo","hi"]}]}`)

	m := NewManagerWithPaths(paths, nil)
	cfg := m.Load(false)

	if len(cfg.Servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(cfg.Servers))
	}
	srv := cfg.Servers[0]
	if srv.Name != "s1" {
		t.Errorf("name = %q, want s1", srv.Name)
	}
	if srv.Transport != TransportStdio {
		t.Errorf("transport = %q, want stdio", srv.Transport)
	}
	if !srv.IsEnabled() {
		t.Error("enabled should default to true")
	}
}

func TestLoadNoSourcesYieldsDefaults(t *testing.T) {
	sink := &recordingSink{}
	m := NewManagerWithPaths(testPaths(t.TempDir()), sink)

	cfg := m.Load(false)
	if len(cfg.Servers) != 0 {
		t.Errorf("got %d servers, want 0", len(cfg.Servers))
	}
	if got := cfg.Settings.GetTimeout(); got != 30 {
		t.Errorf("timeout = %d, want default 30", got)
	}
	if len(sink.warnings) != 0 {
		t.Errorf("missing files should not warn, got %v", sink.warnings)
	}
}

func TestLoadLayerPrecedence(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Global, `{
		"settings": {"timeout": 10, "max_retries": 7},
		"servers": [{"name":"global-srv","transport":"stdio","command":["g"]}]
	}`)
	writeFile(t, paths.Project, `{"settings": {"timeout": 20}}`)
	writeFile(t, paths.Local, `{
		"servers": [{"name":"local-srv","transport":"stdio","command":["l"]}]
	}`)

	m := NewManagerWithPaths(paths, nil)
	cfg := m.Load(false)

	// Project layer overrides timeout, global's max_retries survives.
	if got := cfg.Settings.GetTimeout(); got != 20 {
		t.Errorf("timeout = %d, want 20", got)
	}
	if got := cfg.Settings.GetMaxRetries(); got != 7 {
		t.Errorf("max_retries = %d, want 7", got)
	}
	// Local layer's server list replaces global's wholesale.
	if len(cfg.Servers) != 1 || cfg.Servers[0].Name != "local-srv" {
		t.Errorf("servers = %+v, want only local-srv", cfg.Servers)
	}
}

func TestLoadEnvLayerHighestPrecedence(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir)
	writeFile(t, paths.Local, `{"settings": {"log_level": "INFO"}}`)

	envPath := filepath.Join(dir, "env-config.json")
	writeFile(t, envPath, `{"settings": {"log_level": "debug"}}`)
	paths.Env = envPath

	m := NewManagerWithPaths(paths, nil)
	cfg := m.Load(false)
	if got := cfg.Settings.GetLogLevel(); got != "DEBUG" {
		t.Errorf("log_level = %q, want DEBUG from env layer", got)
	}
}

func TestLoadSkipsMalformedLayer(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Global, `{not json`)
	writeFile(t, paths.Local, `{"servers":[{"name":"ok","transport":"stdio","command":["c"]}]}`)

	sink := &recordingSink{}
	m := NewManagerWithPaths(paths, sink)
	cfg := m.Load(false)

	if len(sink.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(sink.warnings), sink.warnings)
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].Name != "ok" {
		t.Errorf("servers = %+v, want the good layer's server", cfg.Servers)
	}
}

func TestLoadSkipsLayerWithBadLogLevel(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"settings": {"log_level": "verbose", "timeout": 60}}`)

	sink := &recordingSink{}
	m := NewManagerWithPaths(paths, sink)
	cfg := m.Load(false)

	if len(sink.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(sink.warnings), sink.warnings)
	}
	// The whole layer is skipped, not just the bad field.
	if got := cfg.Settings.GetTimeout(); got != 30 {
		t.Errorf("timeout = %d, want default 30", got)
	}
}

func TestLoadCachesUntilSourceChanges(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"settings": {"timeout": 11}}`)

	m := NewManagerWithPaths(paths, nil)
	first := m.Load(false)
	second := m.Load(false)
	if first != second {
		t.Error("unchanged sources should return the cached snapshot")
	}

	// Rewrite with a strictly newer mtime.
	writeFile(t, paths.Local, `{"settings": {"timeout": 22}}`)
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(paths.Local, future, future); err != nil {
		t.Fatal(err)
	}

	third := m.Load(false)
	if got := third.Settings.GetTimeout(); got != 22 {
		t.Errorf("timeout = %d, want 22 after source change", got)
	}
}

func TestLoadForceReload(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"settings": {"timeout": 11}}`)

	m := NewManagerWithPaths(paths, nil)
	first := m.Load(false)
	forced := m.Load(true)
	if first == forced {
		t.Error("forceReload should bypass the cache")
	}
}

func TestInvalidate(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"settings": {"timeout": 11}}`)

	m := NewManagerWithPaths(paths, nil)
	first := m.Load(false)
	m.Invalidate()
	second := m.Load(false)
	if first == second {
		t.Error("Invalidate should force a fresh load")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	paths := testPaths(t.TempDir())
	m := NewManagerWithPaths(paths, nil)

	cfg := &Configuration{
		Settings: Settings{Timeout: ptr(45), LogLevel: ptr("ERROR")},
		Servers: []ServerDefinition{
			{Name: "fs", Transport: TransportStdio, Command: []string{"mcp-server-filesystem", "/tmp"}, Enabled: ptr(true)},
		},
	}

	path, err := m.Save(cfg, ScopeGlobal)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if path != paths.Global {
		t.Errorf("Save path = %q, want %q", path, paths.Global)
	}

	loaded := m.Load(false)
	if got := loaded.Settings.GetTimeout(); got != 45 {
		t.Errorf("timeout = %d, want 45", got)
	}
	if got := loaded.Settings.GetLogLevel(); got != "ERROR" {
		t.Errorf("log_level = %q, want ERROR", got)
	}
	if len(loaded.Servers) != 1 || loaded.Servers[0].Name != "fs" {
		t.Fatalf("servers = %+v, want the saved server", loaded.Servers)
	}
	if got := loaded.Servers[0].Command; len(got) != 2 || got[0] != "mcp-server-filesystem" {
		t.Errorf("command = %v, want saved command", got)
	}
}

func TestSaveInvalidatesCache(t *testing.T) {
	paths := testPaths(t.TempDir())
	writeFile(t, paths.Local, `{"settings": {"timeout": 11}}`)

	m := NewManagerWithPaths(paths, nil)
	m.Load(false)

	if _, err := m.Save(&Configuration{Settings: Settings{Timeout: ptr(77)}}, ScopeLocal); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cfg := m.Load(false)
	if got := cfg.Settings.GetTimeout(); got != 77 {
		t.Errorf("timeout = %d, want 77 from the just-saved file", got)
	}
}

func TestSaveProjectWithoutRoot(t *testing.T) {
	paths := testPaths(t.TempDir())
	paths.Project = ""

	m := NewManagerWithPaths(paths, nil)
	_, err := m.Save(Default(), ScopeProject)
	if !errors.Is(err, ErrInvalidScope) {
		t.Errorf("Save project without root: err = %v, want ErrInvalidScope", err)
	}
	if _, statErr := os.Stat(paths.Global); statErr == nil {
		t.Error("nothing should be written on invalid scope")
	}
}

func TestSaveUnknownScope(t *testing.T) {
	m := NewManagerWithPaths(testPaths(t.TempDir()), nil)
	if _, err := m.Save(Default(), "galactic"); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("err = %v, want ErrInvalidScope", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigVar, "/etc/aider/mcp.json")

	p := DefaultPaths("/work/project")

	if want := filepath.Join(home, ".aider", "mcp-config.json"); p.Global != want {
		t.Errorf("Global = %q, want %q", p.Global, want)
	}
	if want := filepath.Join("/work/project", ".aider.mcp.json"); p.Project != want {
		t.Errorf("Project = %q, want %q", p.Project, want)
	}
	if p.Env != "/etc/aider/mcp.json" {
		t.Errorf("Env = %q, want /etc/aider/mcp.json", p.Env)
	}
	if filepath.Base(p.Local) != ".aider.mcp.json" {
		t.Errorf("Local = %q, want .aider.mcp.json under cwd", p.Local)
	}
}

func TestDefaultPathsNoProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigVar, "")

	p := DefaultPaths("")
	if p.Project != "" {
		t.Errorf("Project = %q, want empty without a project root", p.Project)
	}
	if p.Env != "" {
		t.Errorf("Env = %q, want empty when unset", p.Env)
	}
}

func TestLoadServersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	writeFile(t, path, `{"servers":[
		{"name":"fs","transport":"stdio","command":["mcp-server-filesystem","/tmp"]},
		{"name":"ws","transport":"websocket","url":"ws://localhost:8765"}
	]}`)

	servers, err := LoadServersFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(servers))
	}
	if servers[0].Name != "fs" || servers[1].Name != "ws" {
		t.Errorf("names = %q, %q", servers[0].Name, servers[1].Name)
	}

	if _, err := LoadServersFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}
