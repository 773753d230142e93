// Package config holds runtime settings for nixlings.
// Precedence, lowest first: defaults, config file, environment, command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nixlings/nixlings/internal/checker"
	"github.com/nixlings/nixlings/internal/completion"
	"github.com/nixlings/nixlings/internal/exercise"
)

// DefaultFile is the optional config file read from the working directory.
const DefaultFile = "nixlings.yaml"

// Environment variables consulted by Load.
const (
	EnvManifest = "NIXLINGS_MANIFEST"
	EnvMarker   = "NIXLINGS_MARKER"
	EnvTimeout  = "NIXLINGS_TIMEOUT"
)

// Config is the resolved configuration.
type Config struct {
	Manifest   string        `yaml:"manifest"`
	Marker     string        `yaml:"marker"`
	MarkerFile string        `yaml:"marker_file"`
	Checker    []string      `yaml:"checker"`
	Timeout    time.Duration `yaml:"timeout"`
	Debounce   time.Duration `yaml:"debounce"`
	// Env holds extra KEY=VALUE entries for the checker, e.g. NIX_CONFIG.
	Env []string `yaml:"env"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Manifest:   exercise.DefaultManifest,
		Marker:     completion.DefaultMarker,
		MarkerFile: completion.DefaultMarkerFile,
		Checker:    append([]string(nil), checker.DefaultCommand...),
		Debounce:   300 * time.Millisecond,
	}
}

// Load starts from Default, overlays the YAML file at path (a missing file is
// not an error) and then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			var file Config
			if err := yaml.Unmarshal(data, &file); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
			cfg.merge(file)
		}
	}

	if v := os.Getenv(EnvManifest); v != "" {
		cfg.Manifest = v
	}
	if v := os.Getenv(EnvMarker); v != "" {
		cfg.Marker = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	return cfg, cfg.Validate()
}

// merge copies every non-zero field of o into c.
func (c *Config) merge(o Config) {
	if o.Manifest != "" {
		c.Manifest = o.Manifest
	}
	if o.Marker != "" {
		c.Marker = o.Marker
	}
	if o.MarkerFile != "" {
		c.MarkerFile = o.MarkerFile
	}
	if len(o.Checker) > 0 {
		c.Checker = o.Checker
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.Debounce != 0 {
		c.Debounce = o.Debounce
	}
	if len(o.Env) > 0 {
		c.Env = o.Env
	}
}

// Validate rejects settings no command can work with.
func (c Config) Validate() error {
	var errs []error
	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest must not be empty"))
	}
	if c.Marker == "" {
		errs = append(errs, errors.New("marker must not be empty"))
	}
	if len(c.Checker) == 0 || c.Checker[0] == "" {
		errs = append(errs, errors.New("checker command must name a program"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	return errors.Join(errs...)
}
