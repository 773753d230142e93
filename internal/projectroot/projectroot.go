// Package projectroot locates the exercise repository a command runs in.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no ancestor directory holds the manifest.
var ErrNotFound = errors.New("manifest not found in any parent directory")

// Find walks up from start until it finds a directory containing manifest.
// It returns that directory as an absolute path.
func Find(start, manifest string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		info, err := os.Stat(filepath.Join(dir, manifest))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", dir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", manifest, ErrNotFound)
		}
		dir = parent
	}
}

// ManifestPath resolves the manifest location. An explicit path (absolute or
// containing a directory) is used as-is; a bare file name is searched for upwards
// from start.
func ManifestPath(start, manifest string) (string, error) {
	if filepath.IsAbs(manifest) || filepath.Base(manifest) != manifest {
		return filepath.Abs(manifest)
	}
	root, err := Find(start, manifest)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, manifest), nil
}
