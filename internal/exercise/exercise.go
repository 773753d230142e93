// Package exercise loads the exercise manifest and looks exercises up by name.
package exercise

import (
	"fmt"
	"path/filepath"
)

// Exercise is one entry of the manifest.
type Exercise struct {
	// Name of the exercise, unique within a manifest.
	Name string `toml:"name" yaml:"name" json:"name"`
	// Path to the exercise directory (or file) holding the marker.
	Path string `toml:"path" yaml:"path" json:"path"`
	// Task is a free-text description shown to the user.
	Task string `toml:"task" yaml:"task" json:"task"`
}

func (e Exercise) String() string { return e.Name }

// List is the ordered set of exercises. Order is the recommended completion order.
type List []Exercise

// manifest mirrors the on-disk layout: a top-level "exercises" array.
type manifest struct {
	Exercises List `toml:"exercises" yaml:"exercises"`
}

// NotFoundError is returned by Find when no exercise carries the requested name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No exercise found for '%s'!", e.Name)
}

// Find returns the exercise with the given name.
func (l List) Find(name string) (*Exercise, error) {
	for i := range l {
		if l[i].Name == name {
			return &l[i], nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Names returns exercise names in manifest order.
func (l List) Names() []string {
	names := make([]string, 0, len(l))
	for _, e := range l {
		names = append(names, e.Name)
	}
	return names
}

// Resolve returns a copy of the list with relative paths anchored at root.
func (l List) Resolve(root string) List {
	out := make(List, len(l))
	for i, e := range l {
		if !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(root, e.Path)
		}
		out[i] = e
	}
	return out
}
