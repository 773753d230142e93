package completion

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nixlings/nixlings/internal/exercise"
)

func exerciseDir(t *testing.T, content string) exercise.Exercise {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultMarkerFile), []byte(content), 0o600))
	return exercise.Exercise{Name: filepath.Base(dir), Path: dir, Task: "t"}
}

func TestDetector_IsDone(t *testing.T) {
	tests := []struct {
		name    string
		content string
		done    bool
	}{
		{name: "marker at start", content: "# I AM NOT DONE\n{ outputs = _: {}; }\n", done: false},
		{name: "marker in middle", content: "{\n  # I AM NOT DONE\n  outputs = _: {};\n}\n", done: false},
		{name: "marker at end without newline", content: "{ outputs = _: {}; }\n# I AM NOT DONE", done: false},
		{name: "marker with surrounding whitespace", content: "   \t# I AM NOT DONE   \n", done: false},
		{name: "marker repeated", content: "# I AM NOT DONE\n# I AM NOT DONE\n", done: false},
		{name: "no marker", content: "{ outputs = _: {}; }\n", done: true},
		{name: "empty file", content: "", done: true},
		{name: "different case", content: "# i am not done\n", done: true},
		{name: "missing hash", content: "I AM NOT DONE\n", done: true},
		{name: "extra space inside", content: "#  I AM NOT DONE\n", done: true},
		{name: "truncated", content: "# I AM NOT DON\n", done: true},
	}

	d := New("", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, err := d.IsDone(exerciseDir(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.done, done)
		})
	}
}

func TestDetector_RemovingMarkerFlipsStatus(t *testing.T) {
	ex := exerciseDir(t, "# I AM NOT DONE\n{}\n# I AM NOT DONE\n")
	d := New("", "")

	done, err := d.IsDone(ex)
	require.NoError(t, err)
	assert.False(t, done)

	// Removing only one occurrence keeps it incomplete.
	target := d.Target(ex)
	require.NoError(t, os.WriteFile(target, []byte("{}\n# I AM NOT DONE\n"), 0o600))
	done, err = d.IsDone(ex)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, os.WriteFile(target, []byte("{}\n"), 0o600))
	done, err = d.IsDone(ex)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDetector_FilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercise.nix")
	require.NoError(t, os.WriteFile(path, []byte("# I AM NOT DONE"), 0o600))

	d := New("", "")
	ex := exercise.Exercise{Name: "file", Path: path}
	assert.Equal(t, path, d.Target(ex))

	done, err := d.IsDone(ex)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestDetector_CustomMarker(t *testing.T) {
	ex := exerciseDir(t, "TODO(student)\n")

	done, err := New("TODO(student)", "").IsDone(ex)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = New("", "").IsDone(ex)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDetector_MissingFile(t *testing.T) {
	d := New("", "")
	ex := exercise.Exercise{Name: "ghost", Path: filepath.Join(t.TempDir(), "nope")}

	done, err := d.IsDone(ex)
	require.Error(t, err)
	assert.False(t, done)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "ghost", ioErr.Exercise)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDetector_DirectoryWithoutMarkerFile(t *testing.T) {
	d := New("", "")
	ex := exercise.Exercise{Name: "empty", Path: t.TempDir()}

	_, err := d.IsDone(ex)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, filepath.Join(ex.Path, DefaultMarkerFile), ioErr.Path)
}

func TestDetector_Markers(t *testing.T) {
	n, err := New("", "").Markers(exerciseDir(t, "# I AM NOT DONE\nx\n# I AM NOT DONE\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
