package mcpconfig

import "strings"

// ParseServerSpec parses a CLI server specification of the form
// "name:transport:payload". For stdio the payload is a whitespace-split
// command line; for websocket it is the URL verbatim. Malformed specs
// (too few parts, unknown transport, missing payload) yield nil rather
// than an error; the caller reports dropped specs.
//
//	filesystem:stdio:mcp-server-filesystem /path
//	web:websocket:ws://localhost:8000/mcp
func ParseServerSpec(spec string) *ServerDefinition {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return nil
	}
	name, transport := parts[0], parts[1]

	switch transport {
	case TransportStdio:
		if len(parts) < 3 {
			return nil
		}
		return &ServerDefinition{
			Name:      name,
			Transport: transport,
			Command:   strings.Fields(parts[2]),
		}
	case TransportWebSocket:
		if len(parts) < 3 {
			return nil
		}
		return &ServerDefinition{
			Name:      name,
			Transport: transport,
			URL:       parts[2],
		}
	default:
		return nil
	}
}

// ApplyCLIServers overlays CLI-supplied server definitions onto a
// resolved configuration: a definition whose name matches an existing
// entry replaces it in place, anything else is appended. This finer,
// name-keyed rule applies only to CLI input; layer merging replaces the
// server list wholesale (see Merge). Returns a new configuration.
func ApplyCLIServers(cfg Configuration, extra []ServerDefinition) Configuration {
	out := cfg.Clone()
	for _, srv := range extra {
		replaced := false
		for i, existing := range out.Servers {
			if existing.Name == srv.Name {
				out.Servers[i] = srv.clone()
				replaced = true
				break
			}
		}
		if !replaced {
			out.Servers = append(out.Servers, srv.clone())
		}
	}
	return out
}
