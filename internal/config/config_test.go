package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info.toml", cfg.Manifest)
	assert.Equal(t, "# I AM NOT DONE", cfg.Marker)
	assert.Equal(t, []string{"nix", "flake", "check"}, cfg.Checker)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`
manifest: exercises.yaml
marker: "TODO: finish me"
checker: [nix, flake, check, --no-build]
timeout: 2m
env: ["NIX_CONFIG=experimental-features = nix-command flakes"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "exercises.yaml", cfg.Manifest)
	assert.Equal(t, "TODO: finish me", cfg.Marker)
	assert.Equal(t, "flake.nix", cfg.MarkerFile)
	assert.Equal(t, []string{"nix", "flake", "check", "--no-build"}, cfg.Checker)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, []string{"NIX_CONFIG=experimental-features = nix-command flakes"}, cfg.Env)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvManifest, "custom.toml")
	t.Setenv(EnvMarker, "NOT YET")
	t.Setenv(EnvTimeout, "30s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "custom.toml", cfg.Manifest)
	assert.Equal(t, "NOT YET", cfg.Marker)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("checker: {"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")

	t.Setenv(EnvTimeout, "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Marker = ""
	cfg.Checker = nil
	cfg.Timeout = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "marker must not be empty")
	assert.ErrorContains(t, err, "checker command must name a program")
	assert.ErrorContains(t, err, "timeout must not be negative")
}
