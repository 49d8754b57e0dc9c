package mcpclient

import (
	"context"
	"fmt"
	"strings"

	mcpgoclient "github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/ricardoamaro/aider/internal/mcpconfig"
)

// stdioSession runs the server as a child process and speaks MCP over its
// stdin/stdout pipes. Protocol framing is delegated to the mcp-go client.
type stdioSession struct {
	def    mcpconfig.ServerDefinition
	client *mcpgoclient.Client
}

func newStdioSession(def mcpconfig.ServerDefinition) *stdioSession {
	return &stdioSession{def: def}
}

// Connect spawns the server process and performs the initialize handshake.
func (s *stdioSession) Connect(ctx context.Context) error {
	env := make([]string, 0, len(s.def.Env))
	for k, v := range s.def.Env {
		env = append(env, k+"="+v)
	}

	c, err := mcpgoclient.NewStdioMCPClient(s.def.Command[0], env, s.def.Command[1:]...)
	if err != nil {
		return fmt.Errorf("starting %s: %w", s.def.Command[0], err)
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpgo.Implementation{
		Name:    "aider",
		Version: "0.1.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return fmt.Errorf("initializing %s: %w", s.def.Name, err)
	}

	s.client = c
	return nil
}

func (s *stdioSession) ListTools(ctx context.Context) ([]Tool, error) {
	res, err := s.client.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	tools := make([]Tool, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, Tool{
			Name:        t.Name,
			Description: t.Description,
			Server:      s.def.Name,
		})
	}
	return tools, nil
}

func (s *stdioSession) ListResources(ctx context.Context) ([]Resource, error) {
	res, err := s.client.ListResources(ctx, mcpgo.ListResourcesRequest{})
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, 0, len(res.Resources))
	for _, r := range res.Resources {
		resources = append(resources, Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			Server:      s.def.Name,
		})
	}
	return resources, nil
}

func (s *stdioSession) ReadResource(ctx context.Context, uri string) (string, error) {
	req := mcpgo.ReadResourceRequest{}
	req.Params.URI = uri
	res, err := s.client.ReadResource(ctx, req)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, content := range res.Contents {
		if text, ok := content.(mcpgo.TextResourceContents); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (s *stdioSession) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
