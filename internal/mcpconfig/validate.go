package mcpconfig

import (
	"fmt"
	"strings"
)

// Validate checks a configuration for semantic problems and returns them
// as human-readable issues. It never mutates the configuration and an
// empty result means no problems were found. Validation does not gate
// use: callers decide whether to warn, block, or proceed.
func Validate(cfg *Configuration) []string {
	var issues []string

	for i, srv := range cfg.Servers {
		issues = append(issues, validateServer(srv, i)...)
	}

	if cfg.Settings.GetTimeout() <= 0 {
		issues = append(issues, "Settings: timeout must be positive")
	}
	if cfg.Settings.GetMaxRetries() < 0 {
		issues = append(issues, "Settings: max_retries cannot be negative")
	}
	if cfg.Settings.GetContextLimit() <= 0 {
		issues = append(issues, "Settings: context_limit must be positive")
	}

	return issues
}

func validateServer(srv ServerDefinition, index int) []string {
	var issues []string
	prefix := fmt.Sprintf("Server %d (%s)", index, srv.Name)

	switch srv.Transport {
	case TransportStdio:
		if len(srv.Command) == 0 {
			issues = append(issues, prefix+": stdio transport requires command")
		}
	case TransportWebSocket:
		if srv.URL == "" {
			issues = append(issues, prefix+": websocket transport requires url")
		} else if !strings.HasPrefix(srv.URL, "ws://") && !strings.HasPrefix(srv.URL, "wss://") {
			issues = append(issues, prefix+": websocket url must start with ws:// or wss://")
		}
	default:
		issues = append(issues, fmt.Sprintf("%s: unsupported transport %q", prefix, srv.Transport))
	}

	if strings.TrimSpace(srv.Name) == "" {
		issues = append(issues, prefix+": name cannot be empty")
	}

	return issues
}
