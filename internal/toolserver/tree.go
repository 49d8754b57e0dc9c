package toolserver

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ricardoamaro/aider/internal/ui"
)

// TreeNode is one entry in the repo_structure output.
type TreeNode struct {
	Type      string               `json:"type"`
	Size      int64                `json:"size,omitempty"`
	Modified  string               `json:"modified,omitempty"`
	Truncated bool                 `json:"truncated,omitempty"`
	Error     string               `json:"error,omitempty"`
	Children  map[string]*TreeNode `json:"children,omitempty"`
}

// buildTree walks the directory tree to maxDepth, skipping VCS and vendor
// directories, and dotfiles unless showHidden is set.
func buildTree(root string, maxDepth int, showHidden bool) *TreeNode {
	return buildTreeAt(root, 0, maxDepth, showHidden)
}

func buildTreeAt(path string, depth, maxDepth int, showHidden bool) *TreeNode {
	info, err := os.Stat(path)
	if err != nil {
		return &TreeNode{Type: "other", Error: err.Error()}
	}

	if !info.IsDir() {
		return &TreeNode{
			Type:     "file",
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.ANSIC),
		}
	}

	if depth >= maxDepth {
		return &TreeNode{Type: "directory", Truncated: true}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return &TreeNode{Type: "directory", Error: "Permission denied"}
	}

	children := make(map[string]*TreeNode)
	for _, e := range entries {
		name := e.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if skipDirs[name] {
			continue
		}
		children[name] = buildTreeAt(path+string(os.PathSeparator)+name, depth+1, maxDepth, showHidden)
	}
	return &TreeNode{Type: "directory", Children: children}
}

// listDirectory renders a directory's entries for the dir:// resource.
func listDirectory(path string) (string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", path)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var lines []string
	for _, e := range entries {
		if e.IsDir() {
			lines = append(lines, e.Name()+"/")
			continue
		}
		info, err := e.Info()
		if err != nil {
			lines = append(lines, e.Name())
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s, modified: %s)",
			e.Name(), ui.FormatSize(info.Size()), info.ModTime().Format(time.ANSIC)))
	}
	if len(lines) == 0 {
		return "Directory is empty", nil
	}
	return strings.Join(lines, "\n"), nil
}
