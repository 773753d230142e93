// Package scanner discovers exercise directories on disk so they can be
// compared against the manifest.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nixlings/nixlings/internal/exercise"
)

// Discover walks root and returns the slash-separated relative paths of every
// directory that directly contains markerFile, sorted.
func Discover(root, markerFile string, opts FilterOptions) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && shouldExclude(rel, opts.ExcludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == markerFile {
			found = append(found, filepath.ToSlash(filepath.Dir(rel)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return FilterPaths(found, opts), nil
}

// Drift describes disagreement between the manifest and the exercise tree.
type Drift struct {
	// Orphans are directories on disk that no manifest entry references.
	Orphans []string
	// Missing are manifest entries whose path does not exist.
	Missing []string
}

// Clean reports whether manifest and disk agree.
func (d Drift) Clean() bool { return len(d.Orphans) == 0 && len(d.Missing) == 0 }

// Compare checks manifest paths (relative to root) against discovered directories.
func Compare(root string, list exercise.List, discovered []string) Drift {
	referenced := make(map[string]bool, len(list))
	var drift Drift
	for _, ex := range list {
		path := ex.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if rel, err := filepath.Rel(root, path); err == nil {
			referenced[filepath.ToSlash(rel)] = true
			// A manifest path may point at the marker file itself.
			referenced[filepath.ToSlash(filepath.Dir(rel))] = true
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			drift.Missing = append(drift.Missing, ex.Name)
		}
	}
	for _, dir := range discovered {
		// The repository's own flake at the root is not an exercise.
		if dir == "." {
			continue
		}
		if !referenced[dir] {
			drift.Orphans = append(drift.Orphans, dir)
		}
	}
	return drift
}
