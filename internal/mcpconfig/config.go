// Package mcpconfig loads, merges, validates, and persists the MCP server
// configuration from its layered sources (global, project, local, and an
// environment-pointed file).
package mcpconfig

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Supported transports for server definitions.
const (
	TransportStdio     = "stdio"
	TransportWebSocket = "websocket"
)

// Defaults applied when a settings field is absent from every layer.
const (
	DefaultTimeout      = 30
	DefaultMaxRetries   = 3
	DefaultContextLimit = 10000
	DefaultCacheTTL     = 300
	DefaultLogLevel     = "INFO"
)

// logLevels are the accepted log_level values after uppercasing.
var logLevels = map[string]bool{
	"DEBUG":    true,
	"INFO":     true,
	"WARNING":  true,
	"ERROR":    true,
	"CRITICAL": true,
}

// ServerDefinition describes one MCP server: how to reach it and whether
// it should be connected.
type ServerDefinition struct {
	Name      string            `json:"name"`
	Transport string            `json:"transport"`
	Command   []string          `json:"command,omitempty"`
	URL       string            `json:"url,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	Enabled   *bool             `json:"enabled,omitempty"`
}

// IsEnabled reports whether the server should be connected. Definitions
// default to enabled.
func (s ServerDefinition) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Settings holds the global MCP behavior knobs. Fields are pointers so a
// layer that leaves a field unset inherits the value from lower layers;
// use the getters for effective values.
type Settings struct {
	Enabled      *bool   `json:"enabled,omitempty"`
	Timeout      *int    `json:"timeout,omitempty"`
	MaxRetries   *int    `json:"max_retries,omitempty"`
	ContextLimit *int    `json:"context_limit,omitempty"`
	CacheTTL     *int    `json:"cache_ttl,omitempty"`
	LogLevel     *string `json:"log_level,omitempty"`
}

// GetEnabled returns whether MCP integration is enabled (default true).
func (s Settings) GetEnabled() bool {
	if s.Enabled != nil {
		return *s.Enabled
	}
	return true
}

// GetTimeout returns the connection timeout in seconds (default 30).
func (s Settings) GetTimeout() int {
	if s.Timeout != nil {
		return *s.Timeout
	}
	return DefaultTimeout
}

// GetMaxRetries returns the retry limit for collaborators (default 3).
func (s Settings) GetMaxRetries() int {
	if s.MaxRetries != nil {
		return *s.MaxRetries
	}
	return DefaultMaxRetries
}

// GetContextLimit returns the maximum number of characters of MCP context
// injected into model input (default 10000).
func (s Settings) GetContextLimit() int {
	if s.ContextLimit != nil {
		return *s.ContextLimit
	}
	return DefaultContextLimit
}

// GetCacheTTL returns the cache TTL in seconds (default 300).
func (s Settings) GetCacheTTL() int {
	if s.CacheTTL != nil {
		return *s.CacheTTL
	}
	return DefaultCacheTTL
}

// GetLogLevel returns the normalized log level (default "INFO").
func (s Settings) GetLogLevel() string {
	if s.LogLevel != nil {
		return strings.ToUpper(*s.LogLevel)
	}
	return DefaultLogLevel
}

// MarshalJSON writes effective values for every field, so saved files are
// complete and survive a load/save round trip unchanged.
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Enabled      bool   `json:"enabled"`
		Timeout      int    `json:"timeout"`
		MaxRetries   int    `json:"max_retries"`
		ContextLimit int    `json:"context_limit"`
		CacheTTL     int    `json:"cache_ttl"`
		LogLevel     string `json:"log_level"`
	}{
		Enabled:      s.GetEnabled(),
		Timeout:      s.GetTimeout(),
		MaxRetries:   s.GetMaxRetries(),
		ContextLimit: s.GetContextLimit(),
		CacheTTL:     s.GetCacheTTL(),
		LogLevel:     s.GetLogLevel(),
	})
}

// Configuration is the resolved whole: settings plus the server list in
// merge-resolution order.
type Configuration struct {
	Settings Settings           `json:"settings"`
	Servers  []ServerDefinition `json:"servers"`
}

// Default returns an empty configuration: settings at their defaults and
// no servers.
func Default() *Configuration {
	return &Configuration{}
}

// Clone returns a deep copy. Merging and caching hand out copies so no two
// callers share server slices or env maps.
func (c Configuration) Clone() Configuration {
	out := Configuration{Settings: c.Settings.clone()}
	if c.Servers != nil {
		out.Servers = make([]ServerDefinition, len(c.Servers))
		for i, srv := range c.Servers {
			out.Servers[i] = srv.clone()
		}
	}
	return out
}

func (s Settings) clone() Settings {
	out := Settings{}
	if s.Enabled != nil {
		out.Enabled = ptr(*s.Enabled)
	}
	if s.Timeout != nil {
		out.Timeout = ptr(*s.Timeout)
	}
	if s.MaxRetries != nil {
		out.MaxRetries = ptr(*s.MaxRetries)
	}
	if s.ContextLimit != nil {
		out.ContextLimit = ptr(*s.ContextLimit)
	}
	if s.CacheTTL != nil {
		out.CacheTTL = ptr(*s.CacheTTL)
	}
	if s.LogLevel != nil {
		out.LogLevel = ptr(*s.LogLevel)
	}
	return out
}

func (s ServerDefinition) clone() ServerDefinition {
	out := s
	if s.Command != nil {
		out.Command = append([]string(nil), s.Command...)
	}
	if s.Env != nil {
		out.Env = make(map[string]string, len(s.Env))
		for k, v := range s.Env {
			out.Env[k] = v
		}
	}
	if s.Enabled != nil {
		out.Enabled = ptr(*s.Enabled)
	}
	return out
}

// normalize uppercases the log level and rejects unknown values. A bad
// log level makes the whole source file a schema failure, matching the
// load-time validation the file format has always had.
func (c *Configuration) normalize() error {
	if c.Settings.LogLevel != nil {
		level := strings.ToUpper(*c.Settings.LogLevel)
		if !logLevels[level] {
			return fmt.Errorf("log_level must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL, got %q", *c.Settings.LogLevel)
		}
		c.Settings.LogLevel = &level
	}
	return nil
}

// Example returns a starter configuration with common servers, used by
// "aider mcp init".
func Example() *Configuration {
	return &Configuration{
		Settings: Settings{
			Enabled:      ptr(true),
			Timeout:      ptr(DefaultTimeout),
			MaxRetries:   ptr(DefaultMaxRetries),
			ContextLimit: ptr(DefaultContextLimit),
			CacheTTL:     ptr(DefaultCacheTTL),
			LogLevel:     ptr(DefaultLogLevel),
		},
		Servers: []ServerDefinition{
			{
				Name:      "filesystem",
				Transport: TransportStdio,
				Command:   []string{"mcp-server-filesystem", "/path/to/allowed/directory"},
				Enabled:   ptr(true),
			},
			{
				Name:      "web-search",
				Transport: TransportStdio,
				Command:   []string{"mcp-server-brave-search"},
				Env:       map[string]string{"BRAVE_API_KEY": "your-api-key-here"},
				Enabled:   ptr(false),
			},
			{
				Name:      "database",
				Transport: TransportWebSocket,
				URL:       "ws://localhost:9000/mcp",
				Enabled:   ptr(false),
			},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
