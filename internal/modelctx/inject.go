// Package modelctx renders the capabilities of connected MCP servers into
// a text block and injects it into a model's message stream.
package modelctx

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/ricardoamaro/aider/internal/mcpclient"
)

// Message is one chat message bound for a language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// truncationMarker is appended when the rendered block exceeds the
// configured context character limit.
const truncationMarker = "\n[MCP context truncated]"

const contextTemplate = `Available MCP tools:
{{range .Tools}}- {{.Name}}{{if .Description}}: {{.Description}}{{end}} (server: {{.Server}})
{{end}}{{if .Resources}}
Available MCP resources:
{{range .Resources}}### {{.Name}} ({{.URI}}, server: {{.Server}})
{{.Content}}

{{end}}{{end}}`

var tmpl = template.Must(template.New("mcp-context").Parse(contextTemplate))

// Render formats the MCP context as a text block bounded by limit
// characters. An empty context renders to the empty string.
func Render(mc mcpclient.ModelContext, limit int) string {
	if mc.Empty() {
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, mc); err != nil {
		// The template is static and the data plain structs; execution
		// cannot fail on well-formed input.
		return ""
	}

	out := strings.TrimRight(buf.String(), "\n")
	if limit > 0 && len(out) > limit {
		cut := limit - len(truncationMarker)
		if cut < 0 {
			cut = 0
		}
		out = out[:cut] + truncationMarker
	}
	return out
}

// Inject prepends a system message carrying the rendered MCP context to
// the message slice. With an empty context the messages are returned
// unchanged. The input slice is never mutated.
func Inject(messages []Message, mc mcpclient.ModelContext, limit int) []Message {
	block := Render(mc, limit)
	if block == "" {
		return messages
	}

	out := make([]Message, 0, len(messages)+1)
	out = append(out, Message{Role: "system", Content: block})
	out = append(out, messages...)
	return out
}
