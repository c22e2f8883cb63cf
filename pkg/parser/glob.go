package parser

import (
	"fmt"
	"path/filepath"
)

// ExpandGlobs expands file paths and glob patterns into a deduplicated list.
// Argument order is preserved; matches of a single pattern come back sorted.
// Patterns that match nothing, and StdinName, are returned as-is so the
// caller can report a precise file-not-found error.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		if pattern == StdinName {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			add(match)
		}
	}

	return result, nil
}
