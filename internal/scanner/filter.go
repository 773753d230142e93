package scanner

import (
	"path/filepath"
	"sort"
	"strings"
)

// FilterOptions defines criteria for skipping directories during discovery.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "result" excludes "result/foo" and "intro/result/bar",
	// but not "results/foo".
	ExcludeDirs []string
}

// DefaultExcludeDirs returns directories that never hold exercises.
func DefaultExcludeDirs() []string {
	return []string{
		".git",
		".direnv",
		"node_modules",
		"result",
		"target",
	}
}

// FilterPaths drops slash-separated relative paths with an excluded segment.
// The result is sorted.
func FilterPaths(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, path := range paths {
		if shouldExclude(path, opts.ExcludeDirs) {
			continue
		}
		filtered = append(filtered, path)
	}

	sort.Strings(filtered)
	return filtered
}

// shouldExclude returns true if the path contains any of the excluded segments.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}
