package mcpclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
)

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

// ResourceContent is one resource read from a connected server, collected
// for model context.
type ResourceContent struct {
	URI     string `json:"uri"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Server  string `json:"server"`
}

// ModelContext aggregates what connected servers offer a model: tool
// descriptions and the content of relevant resources.
type ModelContext struct {
	Tools     []Tool
	Resources []ResourceContent
}

// Empty reports whether there is nothing to inject.
func (c ModelContext) Empty() bool {
	return len(c.Tools) == 0 && len(c.Resources) == 0
}

// Manager holds the client sessions to configured MCP servers and the
// aggregated view of their capabilities.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	sink Sink

	sessions  map[string]Session
	tools     []Tool
	resources []Resource
	connected bool

	// dial builds a session for a definition; swapped in tests.
	dial func(def mcpconfig.ServerDefinition) (Session, error)
}

// NewManager creates a manager that reports through sink (nil for silent).
func NewManager(sink Sink) *Manager {
	if sink == nil {
		sink = nopSink{}
	}
	return &Manager{
		sink:     sink,
		sessions: make(map[string]Session),
		dial:     NewSession,
	}
}

// Connect establishes sessions to the enabled definitions. A definition
// that fails to connect is reported and skipped; one bad server never
// prevents the others from connecting. Returns true when at least one
// session is live.
func (m *Manager) Connect(ctx context.Context, defs []mcpconfig.ServerDefinition) bool {
	for _, def := range defs {
		if !def.IsEnabled() {
			continue
		}

		m.sink.Info("Connecting to MCP server: " + def.Name)

		session, err := m.dial(def)
		if err != nil {
			m.sink.Error(err.Error())
			continue
		}
		if err := session.Connect(ctx); err != nil {
			m.sink.Error(fmt.Sprintf("Failed to connect to %s: %v", def.Name, err))
			continue
		}
		m.sessions[def.Name] = session

		// Listing capabilities can fail without invalidating the
		// connection itself.
		tools, terr := session.ListTools(ctx)
		resources, rerr := session.ListResources(ctx)
		if terr != nil || rerr != nil {
			err := terr
			if err == nil {
				err = rerr
			}
			m.sink.Warning(fmt.Sprintf("Could not list capabilities for %s: %v", def.Name, err))
			continue
		}

		m.tools = append(m.tools, tools...)
		m.resources = append(m.resources, resources...)
		m.sink.Info(fmt.Sprintf("Connected to %s: %d tools, %d resources",
			def.Name, len(tools), len(resources)))
	}

	m.connected = len(m.sessions) > 0
	return m.connected
}

// IsConnected reports whether any session is live.
func (m *Manager) IsConnected() bool {
	return m.connected
}

// Sessions returns the number of live sessions.
func (m *Manager) Sessions() int {
	return len(m.sessions)
}

// Tools returns the aggregated tool list across all connected servers.
func (m *Manager) Tools() []Tool {
	return m.tools
}

// Context collects model context from the connected servers: every
// aggregated tool, plus the content of resources relevant to the query.
// An empty query matches every resource. Per-resource read failures are
// reported and skipped.
func (m *Manager) Context(ctx context.Context, query string) ModelContext {
	if !m.connected {
		return ModelContext{}
	}

	out := ModelContext{Tools: m.tools}

	for name, session := range m.sessions {
		resources, err := session.ListResources(ctx)
		if err != nil {
			m.sink.Warning(fmt.Sprintf("Error getting MCP resources from %s: %v", name, err))
			continue
		}
		for _, res := range resources {
			if !isRelevant(res, query) {
				continue
			}
			content, err := session.ReadResource(ctx, res.URI)
			if err != nil {
				m.sink.Warning(fmt.Sprintf("Error reading resource %s: %v", res.URI, err))
				continue
			}
			out.Resources = append(out.Resources, ResourceContent{
				URI:     res.URI,
				Name:    res.Name,
				Content: content,
				Server:  name,
			})
		}
	}

	return out
}

// isRelevant is a simple substring relevance check on resource name and
// description.
func isRelevant(res Resource, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(res.Name), q) ||
		strings.Contains(strings.ToLower(res.Description), q)
}

// DisconnectAll closes every session and resets the aggregated state.
// Close failures are ignored; the sessions are gone either way.
func (m *Manager) DisconnectAll() {
	for _, session := range m.sessions {
		_ = session.Close()
	}
	m.sessions = make(map[string]Session)
	m.tools = nil
	m.resources = nil
	m.connected = false
}
