// Package completion decides whether an exercise is done by looking for a marker
// string in the exercise's file.
package completion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nixlings/nixlings/internal/exercise"
)

const (
	// DefaultMarker is the literal text whose presence means "not done yet".
	DefaultMarker = "# I AM NOT DONE"
	// DefaultMarkerFile is read when an exercise path points at a directory.
	DefaultMarkerFile = "flake.nix"
)

// IOError reports an exercise file that could not be read.
type IOError struct {
	Exercise string
	Path     string
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read %s for exercise %s: %v", e.Path, e.Exercise, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Detector checks exercise files for the marker.
type Detector struct {
	marker     string
	markerFile string
}

// New creates a Detector. Empty arguments fall back to the defaults.
// The marker is used verbatim: no trimming, case-sensitive.
func New(marker, markerFile string) *Detector {
	if marker == "" {
		marker = DefaultMarker
	}
	if markerFile == "" {
		markerFile = DefaultMarkerFile
	}
	return &Detector{marker: marker, markerFile: markerFile}
}

// Marker returns the marker text in use.
func (d *Detector) Marker() string { return d.marker }

// Target returns the file inspected for ex.
func (d *Detector) Target(ex exercise.Exercise) string {
	if info, err := os.Stat(ex.Path); err == nil && info.IsDir() {
		return filepath.Join(ex.Path, d.markerFile)
	}
	return ex.Path
}

// IsDone reports whether the marker is absent from the exercise file.
func (d *Detector) IsDone(ex exercise.Exercise) (bool, error) {
	n, err := d.Markers(ex)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Markers counts marker occurrences in the exercise file.
func (d *Detector) Markers(ex exercise.Exercise) (int, error) {
	path := d.Target(ex)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &IOError{Exercise: ex.Name, Path: path, Err: err}
	}
	return strings.Count(string(data), d.marker), nil
}
