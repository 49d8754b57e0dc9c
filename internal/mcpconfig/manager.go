package mcpconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// Save scopes.
const (
	ScopeGlobal  = "global"
	ScopeProject = "project"
	ScopeLocal   = "local"
)

// ErrInvalidScope is returned by Save when the requested scope has no
// resolvable path.
var ErrInvalidScope = errors.New("invalid scope")

// Sink receives leveled human-readable notices. Callers that don't care
// pass nil and get a no-op sink.
type Sink interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

type nopSink struct{}

func (nopSink) Info(string)    {}
func (nopSink) Warning(string) {}
func (nopSink) Error(string)   {}

// Manager resolves the layered MCP configuration into one snapshot and
// caches it until a source file changes.
//
// A Manager is not safe for concurrent use; the host serializes access.
type Manager struct {
	paths Paths
	sink  Sink

	cache     *Configuration
	cacheTime time.Time
}

// NewManager creates a manager using the standard file locations.
// projectRoot may be empty when no project root is known.
func NewManager(projectRoot string, sink Sink) *Manager {
	return NewManagerWithPaths(DefaultPaths(projectRoot), sink)
}

// NewManagerWithPaths creates a manager with explicit layer locations.
func NewManagerWithPaths(paths Paths, sink Sink) *Manager {
	if sink == nil {
		sink = nopSink{}
	}
	return &Manager{paths: paths, sink: sink}
}

// Paths returns the layer locations the manager resolves from.
func (m *Manager) Paths() Paths {
	return m.paths
}

// Load resolves the configuration from all layers, lowest precedence
// first. When forceReload is false and no source file has changed since
// the last load, the cached snapshot is returned unchanged.
//
// A missing layer contributes nothing. A layer that fails to parse or
// fails schema validation is skipped with a warning; the remaining layers
// still produce a usable configuration.
func (m *Manager) Load(forceReload bool) *Configuration {
	if !forceReload && m.cache != nil && m.cacheValid() {
		return m.cache
	}

	cfg := Default()
	for _, path := range m.paths.ordered() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		layer, err := loadFile(path)
		if err != nil {
			m.sink.Warning(fmt.Sprintf("Failed to load MCP config from %s: %v", path, err))
			continue
		}
		merged := Merge(*cfg, *layer)
		cfg = &merged
	}

	m.cache = cfg
	m.cacheTime = m.newestSourceTime()
	return cfg
}

// Invalidate drops the cached snapshot so the next Load rereads every
// source file.
func (m *Manager) Invalidate() {
	m.cache = nil
	m.cacheTime = time.Time{}
}

// cacheValid reports whether no source file is newer than the cached
// snapshot. Any stat failure other than "does not exist", or having no
// source files at all, counts as invalid: fail toward freshness.
func (m *Manager) cacheValid() bool {
	newest, ok := m.newestSource()
	if !ok {
		return false
	}
	return !newest.After(m.cacheTime)
}

// newestSource returns the newest modification time among existing source
// files. ok is false when no file exists or a stat fails unexpectedly.
func (m *Manager) newestSource() (time.Time, bool) {
	var newest time.Time
	found := false
	for _, path := range m.paths.ordered() {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return time.Time{}, false
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		found = true
	}
	return newest, found
}

func (m *Manager) newestSourceTime() time.Time {
	newest, _ := m.newestSource()
	return newest
}

// loadFile reads and decodes a single layer.
func loadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Configuration{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServersFile reads the server definitions from an arbitrary
// configuration file outside the layered resolution, for callers that
// accept an explicit config path.
func LoadServersFile(path string) ([]ServerDefinition, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.Servers, nil
}

// Merge combines two configurations, override taking precedence. Settings
// merge field by field: a field the override layer left unset inherits the
// base value. The server list is layer-scoped, not additive: if the
// override defines any servers its list replaces the base list wholesale.
// Neither input is mutated.
func Merge(base, override Configuration) Configuration {
	merged := base.Clone()
	src := override.Clone()
	// mergo with WithOverride replaces every field the override set
	// (non-nil pointers, non-empty slices) and inherits the rest.
	// WithoutDereference keeps pointers atomic so an explicit false or
	// zero still overrides.
	if err := mergo.Merge(&merged, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		// Only reachable with invalid arguments, which two struct
		// values are not.
		return base.Clone()
	}
	return merged
}

// Save serializes the configuration to the given scope's fixed path,
// creating parent directories as needed, and returns the path written.
// Project scope requires a known project root. The in-memory cache is
// invalidated so the next Load reflects the just-written file.
func (m *Manager) Save(cfg *Configuration, scope string) (string, error) {
	var path string
	switch scope {
	case ScopeGlobal:
		path = m.paths.Global
	case ScopeProject:
		if m.paths.Project == "" {
			return "", fmt.Errorf("%w: project scope requires a project root", ErrInvalidScope)
		}
		path = m.paths.Project
	case ScopeLocal:
		path = m.paths.Local
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	if path == "" {
		return "", fmt.Errorf("%w: no path for scope %q", ErrInvalidScope, scope)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding configuration: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	m.Invalidate()
	return path, nil
}
