// Package mcpclient manages client sessions to configured MCP servers and
// aggregates the tools and resources they expose.
package mcpclient

import (
	"context"
	"fmt"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
)

// Tool describes one tool exposed by a connected server.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Server      string `json:"server"`
}

// Resource describes one resource exposed by a connected server.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Server      string `json:"server"`
}

// Session is one live connection to an MCP server. Implementations own
// the transport; the manager owns the lifecycle.
type Session interface {
	Connect(ctx context.Context) error
	ListTools(ctx context.Context) ([]Tool, error)
	ListResources(ctx context.Context) ([]Resource, error)
	ReadResource(ctx context.Context, uri string) (string, error)
	Close() error
}

// NewSession builds an unconnected session for a server definition,
// selecting the transport implementation. The definition's transport and
// fields must agree (stdio needs a command, websocket needs a url).
func NewSession(def mcpconfig.ServerDefinition) (Session, error) {
	switch {
	case def.Transport == mcpconfig.TransportStdio && len(def.Command) > 0:
		return newStdioSession(def), nil
	case def.Transport == mcpconfig.TransportWebSocket && def.URL != "":
		return newWebSocketSession(def), nil
	default:
		return nil, fmt.Errorf(
			"invalid transport configuration for %s: transport=%s, command=%v, url=%s",
			def.Name, def.Transport, def.Command, def.URL)
	}
}
