package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
)

// wsProtocolVersion is the MCP protocol revision spoken over websocket.
const wsProtocolVersion = "2024-11-05"

// rpcRequest is a JSON-RPC 2.0 request frame.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      *int64 `json:"id,omitempty"`
}

// rpcResponse is a JSON-RPC 2.0 response frame.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      *int64          `json:"id,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// wsSession speaks MCP as JSON-RPC 2.0 over a websocket connection.
type wsSession struct {
	def  mcpconfig.ServerDefinition
	conn *websocket.Conn

	mu     sync.Mutex // serializes request/response pairs
	nextID int64
}

func newWebSocketSession(def mcpconfig.ServerDefinition) *wsSession {
	return &wsSession{def: def}
}

// Connect dials the server and performs the initialize handshake.
func (s *wsSession) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.def.URL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", s.def.URL, err)
	}
	s.conn = conn

	params := map[string]any{
		"protocolVersion": wsProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]string{
			"name":    "aider",
			"version": "0.1.0",
		},
	}
	if err := s.call(ctx, "initialize", params, nil); err != nil {
		conn.Close()
		s.conn = nil
		return fmt.Errorf("initializing %s: %w", s.def.Name, err)
	}
	if err := s.notify("notifications/initialized"); err != nil {
		conn.Close()
		s.conn = nil
		return fmt.Errorf("completing handshake with %s: %w", s.def.Name, err)
	}
	return nil
}

func (s *wsSession) ListTools(ctx context.Context) ([]Tool, error) {
	var result struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	if err := s.call(ctx, "tools/list", map[string]any{}, &result); err != nil {
		return nil, err
	}
	tools := make([]Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, Tool{Name: t.Name, Description: t.Description, Server: s.def.Name})
	}
	return tools, nil
}

func (s *wsSession) ListResources(ctx context.Context) ([]Resource, error) {
	var result struct {
		Resources []struct {
			URI         string `json:"uri"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"resources"`
	}
	if err := s.call(ctx, "resources/list", map[string]any{}, &result); err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(result.Resources))
	for _, r := range result.Resources {
		resources = append(resources, Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			Server:      s.def.Name,
		})
	}
	return resources, nil
}

func (s *wsSession) ReadResource(ctx context.Context, uri string) (string, error) {
	var result struct {
		Contents []struct {
			Text string `json:"text"`
		} `json:"contents"`
	}
	if err := s.call(ctx, "resources/read", map[string]any{"uri": uri}, &result); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(result.Contents))
	for _, c := range result.Contents {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (s *wsSession) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// call sends one request and reads frames until the matching response
// arrives, skipping server notifications. out may be nil when the caller
// only needs success or failure.
func (s *wsSession) call(ctx context.Context, method string, params any, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("session %s is not connected", s.def.Name)
	}

	s.nextID++
	id := s.nextID
	req := rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: &id}

	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetReadDeadline(deadline)
		s.conn.SetWriteDeadline(deadline)
	}
	if err := s.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	for {
		var resp rpcResponse
		if err := s.conn.ReadJSON(&resp); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		if resp.ID == nil || *resp.ID != id {
			continue // notification or stale frame
		}
		if resp.Error != nil {
			return fmt.Errorf("%s: %w", method, resp.Error)
		}
		if out != nil && resp.Result != nil {
			if err := json.Unmarshal(resp.Result, out); err != nil {
				return fmt.Errorf("decoding %s result: %w", method, err)
			}
		}
		return nil
	}
}

// notify sends a request with no id; no response is expected.
func (s *wsSession) notify(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(rpcRequest{JSONRPC: "2.0", Method: method})
}
