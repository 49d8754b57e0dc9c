package toolserver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	defaultMaxResults = 50
	maxFilesSearched  = 1000
)

// skipDirs are never descended into by search or tree listing.
var skipDirs = map[string]bool{
	".git":         true,
	"__pycache__":  true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
}

type searchOptions struct {
	Pattern       string
	Glob          string // doublestar pattern against the relative path, empty matches all
	MaxResults    int    // per-file match cap
	CaseSensitive bool
}

// FileMatches holds the matching lines of one file.
type FileMatches struct {
	FilePath     string   `json:"file_path"`
	Matches      []string `json:"matches"`
	TotalMatches int      `json:"total_matches"`
}

// SearchSummary aggregates a search run.
type SearchSummary struct {
	TotalFilesSearched int `json:"total_files_searched"`
	TotalMatches       int `json:"total_matches"`
	FilesWithMatches   int `json:"files_with_matches"`
}

// SearchResult is the full search_codebase output.
type SearchResult struct {
	Matches []FileMatches `json:"matches"`
	Summary SearchSummary `json:"summary"`
}

// searchCodebase runs a regex line search over files under root.
func searchCodebase(root string, opts searchOptions) (*SearchResult, error) {
	pattern := opts.Pattern
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}

	result := &SearchResult{Matches: []FileMatches{}}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if result.Summary.TotalFilesSearched >= maxFilesSearched {
			return filepath.SkipAll
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if opts.Glob != "" {
			ok, err := doublestar.Match(opts.Glob, filepath.ToSlash(rel))
			if err != nil {
				return fmt.Errorf("invalid glob pattern: %w", err)
			}
			if !ok {
				return nil
			}
		}

		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			return nil
		}
		result.Summary.TotalFilesSearched++

		var matches []string
		for i, line := range strings.Split(string(data), "\n") {
			if !re.MatchString(line) {
				continue
			}
			matches = append(matches, fmt.Sprintf("Line %d: %s", i+1, strings.TrimSpace(line)))
			result.Summary.TotalMatches++
			if len(matches) >= opts.MaxResults {
				break
			}
		}
		if len(matches) > 0 {
			result.Matches = append(result.Matches, FileMatches{
				FilePath:     rel,
				Matches:      matches,
				TotalMatches: len(matches),
			})
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result.Summary.FilesWithMatches = len(result.Matches)
	return result, nil
}
