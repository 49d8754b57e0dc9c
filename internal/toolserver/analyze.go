package toolserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileAnalysis summarizes a source file: size, language, a rough
// complexity score, and any flagged issues.
type FileAnalysis struct {
	Path            string   `json:"path"`
	Lines           int      `json:"lines"`
	Language        string   `json:"language"`
	ComplexityScore float64  `json:"complexity_score"`
	Issues          []string `json:"issues"`
	SizeBytes       int64    `json:"size_bytes"`
	LastModified    string   `json:"last_modified"`
}

// languageByExt maps file extensions to language names.
var languageByExt = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".cs":    "csharp",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".xml":   "xml",
	".md":    "markdown",
	".sh":    "bash",
}

// markerComments are flagged with their occurrence counts.
var markerComments = []string{"TODO", "FIXME", "XXX", "HACK"}

func analyzeFile(path string) (*FileAnalysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := string(data)
	lines := len(strings.Split(content, "\n"))
	if strings.HasSuffix(content, "\n") {
		lines--
	}
	language := languageByExt[strings.ToLower(filepath.Ext(path))]
	if language == "" {
		language = "unknown"
	}

	return &FileAnalysis{
		Path:            path,
		Lines:           lines,
		Language:        language,
		ComplexityScore: complexityScore(content, lines),
		Issues:          detectIssues(content, lines, language),
		SizeBytes:       info.Size(),
		LastModified:    info.ModTime().Format(time.ANSIC),
	}, nil
}

// complexityScore is a crude heuristic: size plus counts of declarations
// and branches, capped at 10.
func complexityScore(content string, lines int) float64 {
	score := float64(lines) / 100.0
	if score > 10 {
		score = 10
	}

	if strings.Contains(content, "class ") {
		score++
	}
	score += float64(strings.Count(content, "def ")) * 0.1
	score += float64(strings.Count(content, "func ")) * 0.1
	score += float64(strings.Count(content, "function ")) * 0.1
	score += float64(strings.Count(content, "if ")) * 0.05
	score += float64(strings.Count(content, "for ")+strings.Count(content, "while ")) * 0.1

	if score > 10 {
		score = 10
	}
	// Two decimal places, matching the JSON output shape.
	return float64(int(score*100+0.5)) / 100
}

func detectIssues(content string, lines int, language string) []string {
	issues := []string{}

	if lines > 1000 {
		issues = append(issues, "File is very large (>1000 lines)")
	}
	if lines > 500 {
		issues = append(issues, "File is large (>500 lines)")
	}
	for _, marker := range markerComments {
		if n := strings.Count(content, marker); n > 0 {
			issues = append(issues, fmt.Sprintf("Contains %d %s comment(s)", n, marker))
		}
	}

	if language == "python" {
		if strings.Contains(content, "import *") {
			issues = append(issues, "Uses wildcard imports")
		}
		if strings.Contains(content, "eval(") || strings.Contains(content, "exec(") {
			issues = append(issues, "Uses eval() or exec() - potential security risk")
		}
	}

	return issues
}
