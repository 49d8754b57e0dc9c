package ui

import (
	"fmt"
	"strings"
)

// SectionHeader prints a bold section header with a separator line.
func SectionHeader(title string) {
	fmt.Println(BoldText(title))
	fmt.Println("───────────────────────────────────────────────────────────────")
}

// Truncate shortens a string to max length with ellipsis.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// ShortenHome replaces the home directory prefix with ~.
func ShortenHome(path, home string) string {
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// PrintKeyValue prints a key-value pair.
func PrintKeyValue(key, value string) {
	fmt.Printf("  %s: %s\n", key, value)
}

// Hint prints a dim hint line.
func Hint(msg string) {
	fmt.Println(DimText(msg))
}

// FormatSize formats bytes into human-readable size.
func FormatSize(bytes int64) string {
	switch {
	case bytes > 1048576:
		return fmt.Sprintf("%dMB", bytes/1048576)
	case bytes > 1024:
		return fmt.Sprintf("%dKB", bytes/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
