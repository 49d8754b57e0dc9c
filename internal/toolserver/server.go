// Package toolserver provides the built-in aider-tools MCP server,
// exposing local developer tools (file analysis, command execution, code
// search, tree listing) over stdio.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server wraps an MCP server rooted at a working directory. File and
// directory access is confined to that root.
type Server struct {
	root   string
	server *mcpserver.MCPServer
}

// New creates the aider-tools server with all tools and resources
// registered. root is the directory tool access is confined to, normally
// the current working directory.
func New(root string) *Server {
	s := &Server{
		root: root,
		server: mcpserver.NewMCPServer(
			"aider-tools",
			"0.1.0",
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP on stdio until the client disconnects.
func (s *Server) Run() error {
	if err := mcpserver.ServeStdio(s.server); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// jsonResult marshals v to JSON and returns it as a text tool result.
func jsonResult(v any) (*mcpgo.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcpgo.NewToolResultText(string(data)), nil
}

func (s *Server) registerTools() {
	s.server.AddTool(
		mcpgo.NewTool("analyze_file",
			mcpgo.WithDescription("Analyze a source code file for complexity, issues, and metadata"),
			mcpgo.WithString("path", mcpgo.Description("Path to the file"), mcpgo.Required()),
			mcpgo.WithReadOnlyHintAnnotation(true),
			mcpgo.WithDestructiveHintAnnotation(false),
			mcpgo.WithOpenWorldHintAnnotation(false),
		),
		s.handleAnalyzeFile,
	)

	s.server.AddTool(
		mcpgo.NewTool("run_command",
			mcpgo.WithDescription("Execute a shell command and return exit code, stdout, and stderr"),
			mcpgo.WithString("command", mcpgo.Description("Shell command line"), mcpgo.Required()),
			mcpgo.WithString("cwd", mcpgo.Description("Working directory (defaults to the server root)")),
			mcpgo.WithNumber("timeout", mcpgo.Description("Timeout in seconds (default 300)")),
			mcpgo.WithReadOnlyHintAnnotation(false),
			mcpgo.WithDestructiveHintAnnotation(true),
			mcpgo.WithOpenWorldHintAnnotation(true),
		),
		s.handleRunCommand,
	)

	s.server.AddTool(
		mcpgo.NewTool("search_codebase",
			mcpgo.WithDescription("Search for a regex pattern in files under the server root"),
			mcpgo.WithString("pattern", mcpgo.Description("Regular expression"), mcpgo.Required()),
			mcpgo.WithString("glob", mcpgo.Description("Doublestar glob limiting which files are searched (default all)")),
			mcpgo.WithNumber("max_results", mcpgo.Description("Maximum matches per file (default 50)")),
			mcpgo.WithBoolean("case_sensitive", mcpgo.Description("Match case sensitively (default false)")),
			mcpgo.WithReadOnlyHintAnnotation(true),
			mcpgo.WithDestructiveHintAnnotation(false),
			mcpgo.WithOpenWorldHintAnnotation(false),
		),
		s.handleSearchCodebase,
	)

	s.server.AddTool(
		mcpgo.NewTool("repo_structure",
			mcpgo.WithDescription("Get the repository structure as a tree"),
			mcpgo.WithNumber("max_depth", mcpgo.Description("Maximum tree depth (default 3)")),
			mcpgo.WithBoolean("show_hidden", mcpgo.Description("Include dotfiles (default false)")),
			mcpgo.WithReadOnlyHintAnnotation(true),
			mcpgo.WithDestructiveHintAnnotation(false),
			mcpgo.WithOpenWorldHintAnnotation(false),
		),
		s.handleRepoStructure,
	)
}

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcpgo.NewResourceTemplate("file://{path}", "file",
			mcpgo.WithTemplateDescription("Content of a file under the server root"),
			mcpgo.WithTemplateMIMEType("text/plain"),
		),
		s.handleFileResource,
	)

	s.server.AddResourceTemplate(
		mcpgo.NewResourceTemplate("dir://{path}", "directory",
			mcpgo.WithTemplateDescription("Listing of a directory under the server root"),
			mcpgo.WithTemplateMIMEType("text/plain"),
		),
		s.handleDirResource,
	)
}

func (s *Server) handleAnalyzeFile(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.confine(path)
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	analysis, err := analyzeFile(resolved)
	if err != nil {
		return mcpgo.NewToolResultError("failed to analyze file: " + err.Error()), nil
	}
	return jsonResult(analysis)
}

func (s *Server) handleRunCommand(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	command, err := req.RequireString("command")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	cwd := req.GetString("cwd", s.root)
	timeout := req.GetInt("timeout", defaultCommandTimeout)

	return jsonResult(runCommand(ctx, command, cwd, timeout))
}

func (s *Server) handleSearchCodebase(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}

	result, err := searchCodebase(s.root, searchOptions{
		Pattern:       pattern,
		Glob:          req.GetString("glob", ""),
		MaxResults:    req.GetInt("max_results", defaultMaxResults),
		CaseSensitive: req.GetBool("case_sensitive", false),
	})
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleRepoStructure(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	maxDepth := req.GetInt("max_depth", 3)
	showHidden := req.GetBool("show_hidden", false)

	return jsonResult(map[string]any{
		"root":      s.root,
		"structure": buildTree(s.root, maxDepth, showHidden),
	})
}

func (s *Server) handleFileResource(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
	path := strings.TrimPrefix(req.Params.URI, "file://")
	resolved, err := s.confine(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return []mcpgo.ResourceContents{
		mcpgo.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleDirResource(ctx context.Context, req mcpgo.ReadResourceRequest) ([]mcpgo.ResourceContents, error) {
	path := strings.TrimPrefix(req.Params.URI, "dir://")
	resolved, err := s.confine(path)
	if err != nil {
		return nil, err
	}

	listing, err := listDirectory(resolved)
	if err != nil {
		return nil, err
	}
	return []mcpgo.ResourceContents{
		mcpgo.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     listing,
		},
	}, nil
}

// confine resolves path relative to the server root and rejects anything
// escaping it.
func (s *Server) confine(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	resolved := filepath.Clean(path)

	rel, err := filepath.Rel(s.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("access denied: %s is outside the server root", path)
	}
	return resolved, nil
}
