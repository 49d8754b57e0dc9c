package mcpconfig

import (
	"strings"
	"testing"
)

func TestValidateCleanConfig(t *testing.T) {
	cfg := &Configuration{
		Servers: []ServerDefinition{
			{Name: "fs", Transport: TransportStdio, Command: []string{"mcp-server-filesystem", "/tmp"}},
			{Name: "db", Transport: TransportWebSocket, URL: "wss://localhost:9000/mcp"},
		},
	}
	if issues := Validate(cfg); len(issues) != 0 {
		t.Errorf("Validate() = %v, want no issues", issues)
	}
}

func TestValidateServers(t *testing.T) {
	tests := []struct {
		name   string
		server ServerDefinition
		want   []string // substrings expected, one per issue
	}{
		{
			name:   "stdio without command",
			server: ServerDefinition{Name: "x", Transport: TransportStdio},
			want:   []string{"stdio transport requires command"},
		},
		{
			name:   "websocket without url",
			server: ServerDefinition{Name: "x", Transport: TransportWebSocket},
			want:   []string{"websocket transport requires url"},
		},
		{
			name:   "websocket with http url",
			server: ServerDefinition{Name: "x", Transport: TransportWebSocket, URL: "http://bad"},
			want:   []string{"must start with ws:// or wss://"},
		},
		{
			name:   "unsupported transport",
			server: ServerDefinition{Name: "x", Transport: "carrier-pigeon"},
			want:   []string{"unsupported transport"},
		},
		{
			name:   "blank name",
			server: ServerDefinition{Name: "   ", Transport: TransportStdio, Command: []string{"cmd"}},
			want:   []string{"name cannot be empty"},
		},
		{
			name:   "empty everything",
			server: ServerDefinition{},
			want:   []string{"unsupported transport", "name cannot be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Configuration{Servers: []ServerDefinition{tt.server}}
			issues := Validate(cfg)
			if len(issues) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %d issue(s)", issues, len(tt.want))
			}
			for i, substr := range tt.want {
				if !strings.Contains(issues[i], substr) {
					t.Errorf("issue %d = %q, want substring %q", i, issues[i], substr)
				}
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	cfg := &Configuration{
		Settings: Settings{
			Timeout:      ptr(0),
			MaxRetries:   ptr(-1),
			ContextLimit: ptr(-5),
		},
	}

	issues := Validate(cfg)
	if len(issues) != 3 {
		t.Fatalf("Validate() = %v, want 3 issues", issues)
	}
	wants := []string{
		"timeout must be positive",
		"max_retries cannot be negative",
		"context_limit must be positive",
	}
	for i, substr := range wants {
		if !strings.Contains(issues[i], substr) {
			t.Errorf("issue %d = %q, want substring %q", i, issues[i], substr)
		}
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := &Configuration{
		Servers: []ServerDefinition{{Name: "x", Transport: "bogus"}},
	}
	Validate(cfg)
	if cfg.Servers[0].Transport != "bogus" {
		t.Error("Validate mutated the configuration")
	}
}
