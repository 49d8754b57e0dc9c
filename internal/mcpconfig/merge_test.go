package mcpconfig

import "testing"

func TestMergeSettingsFieldLevel(t *testing.T) {
	base := Configuration{
		Settings: Settings{
			Timeout:      ptr(10),
			MaxRetries:   ptr(5),
			ContextLimit: ptr(5000),
		},
	}
	override := Configuration{
		Settings: Settings{
			Timeout:  ptr(60),
			LogLevel: ptr("DEBUG"),
		},
	}

	merged := Merge(base, override)

	// Fields the override set win.
	if got := merged.Settings.GetTimeout(); got != 60 {
		t.Errorf("timeout = %d, want 60", got)
	}
	if got := merged.Settings.GetLogLevel(); got != "DEBUG" {
		t.Errorf("log_level = %q, want DEBUG", got)
	}
	// Fields the override left unset inherit from base.
	if got := merged.Settings.GetMaxRetries(); got != 5 {
		t.Errorf("max_retries = %d, want 5", got)
	}
	if got := merged.Settings.GetContextLimit(); got != 5000 {
		t.Errorf("context_limit = %d, want 5000", got)
	}
}

func TestMergeExplicitFalseOverrides(t *testing.T) {
	base := Configuration{Settings: Settings{Enabled: ptr(true)}}
	override := Configuration{Settings: Settings{Enabled: ptr(false)}}

	merged := Merge(base, override)
	if merged.Settings.GetEnabled() {
		t.Error("explicitly set false should override base true")
	}
}

func TestMergeServersReplaceWholesale(t *testing.T) {
	base := Configuration{
		Servers: []ServerDefinition{
			{Name: "a", Transport: TransportStdio, Command: []string{"a"}},
			{Name: "b", Transport: TransportStdio, Command: []string{"b"}},
		},
	}
	override := Configuration{
		Servers: []ServerDefinition{
			{Name: "c", Transport: TransportWebSocket, URL: "ws://localhost:1/mcp"},
		},
	}

	merged := Merge(base, override)
	if len(merged.Servers) != 1 || merged.Servers[0].Name != "c" {
		t.Errorf("server list = %+v, want exactly the override's list", merged.Servers)
	}
}

func TestMergeEmptyOverrideKeepsBaseServers(t *testing.T) {
	base := Configuration{
		Servers: []ServerDefinition{
			{Name: "a", Transport: TransportStdio, Command: []string{"a"}},
		},
	}

	merged := Merge(base, Configuration{})
	if len(merged.Servers) != 1 || merged.Servers[0].Name != "a" {
		t.Errorf("server list = %+v, want base's list", merged.Servers)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Configuration{
		Settings: Settings{Timeout: ptr(10)},
		Servers:  []ServerDefinition{{Name: "a", Transport: TransportStdio, Command: []string{"a"}}},
	}
	override := Configuration{
		Settings: Settings{Timeout: ptr(60)},
		Servers:  []ServerDefinition{{Name: "b", Transport: TransportStdio, Command: []string{"b"}}},
	}

	merged := Merge(base, override)
	merged.Servers[0].Name = "mutated"
	*merged.Settings.Timeout = 99

	if *base.Settings.Timeout != 10 || *override.Settings.Timeout != 60 {
		t.Error("Merge mutated an input's settings")
	}
	if base.Servers[0].Name != "a" || override.Servers[0].Name != "b" {
		t.Error("Merge mutated an input's servers")
	}
}
