package exercise

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest file name looked up when none is given.
const DefaultManifest = "info.toml"

// ManifestError reports a manifest that is missing, unparsable or structurally invalid.
// Problems holds every validation failure found, not only the first.
type ManifestError struct {
	Path     string
	NotFound bool
	Problems []string
	Err      error
}

func (e *ManifestError) Error() string {
	switch {
	case e.NotFound:
		return fmt.Sprintf("manifest %s not found", e.Path)
	case len(e.Problems) > 0:
		return fmt.Sprintf("manifest %s is invalid:\n  - %s", e.Path, strings.Join(e.Problems, "\n  - "))
	default:
		return fmt.Sprintf("failed to parse manifest %s: %v", e.Path, e.Err)
	}
}

func (e *ManifestError) Unwrap() error { return e.Err }

// Load reads and validates the manifest at path.
// The decoder is chosen by extension: .yaml/.yml use YAML, anything else TOML.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, NotFound: errors.Is(err, fs.ErrNotExist), Err: err}
	}

	list, err := Parse(data, formatOf(path))
	if err != nil {
		var me *ManifestError
		if errors.As(err, &me) {
			me.Path = path
			return nil, me
		}
		return nil, &ManifestError{Path: path, Err: err}
	}
	return list, nil
}

// Format identifies a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes and validates manifest contents.
// Unknown keys and field problems are reported together in one ManifestError.
func Parse(data []byte, format Format) (List, error) {
	var (
		m        manifest
		problems []string
	)
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			// A TypeError still leaves the rest of the document decoded.
			var te *yaml.TypeError
			if !errors.As(err, &te) {
				return nil, &ManifestError{Err: err}
			}
			problems = append(problems, te.Errors...)
		}
	default:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, &ManifestError{Err: err}
		}
		for _, k := range md.Undecoded() {
			problems = append(problems, "unknown key "+k.String())
		}
	}

	problems = append(problems, validate(m.Exercises)...)
	if len(problems) > 0 {
		return nil, &ManifestError{Problems: problems}
	}
	return m.Exercises, nil
}

func validate(list List) []string {
	if len(list) == 0 {
		return []string{"no exercises defined"}
	}

	var problems []string
	seen := make(map[string]int, len(list))
	for i, e := range list {
		label := fmt.Sprintf("exercise %d", i)
		if e.Name != "" {
			label = fmt.Sprintf("exercise %d (%s)", i, e.Name)
		}
		if e.Name == "" {
			problems = append(problems, label+": missing name")
		}
		if e.Path == "" {
			problems = append(problems, label+": missing path")
		}
		if e.Task == "" {
			problems = append(problems, label+": missing task")
		}
		if e.Name == "" {
			continue
		}
		if first, dup := seen[e.Name]; dup {
			problems = append(problems, fmt.Sprintf("%s: duplicate name, first defined at exercise %d", label, first))
			continue
		}
		seen[e.Name] = i
	}
	return problems
}
