package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixtureManifest = `
[[exercises]]
name = "a"
path = "exercises/a"
task = "Finish exercise a"

[[exercises]]
name = "b"
path = "exercises/b"
task = "Finish exercise b"

[[exercises]]
name = "c"
path = "exercises/c"
task = "Finish exercise c"
`

// fixture lays out three exercises: a and c are done, b still has the marker.
// The checker built by checkerArgs passes only exercise a.
func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.toml"), []byte(fixtureManifest), 0o600))

	flakes := map[string]string{
		"a": "{ outputs = _: {}; }\n",
		"b": "# I AM NOT DONE\n{ outputs = _: {}; }\n",
		"c": "{ outputs = _: {}; }\n",
	}
	for name, content := range flakes {
		exDir := filepath.Join(dir, "exercises", name)
		require.NoError(t, os.MkdirAll(exDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(exDir, "flake.nix"), []byte(content), 0o600))
	}
	return dir
}

func checkerArgs() []string {
	return []string{
		"--checker=sh",
		"--checker=-c",
		`--checker=test "$(basename "$1")" = a || { echo "error: $(basename "$1") failed" >&2; exit 1; }`,
		"--checker=checker",
	}
}

func commonArgs(t *testing.T, dir string) []string {
	t.Helper()
	return append([]string{
		"--config", filepath.Join(dir, "nixlings.yaml"),
		"--manifest", filepath.Join(dir, "info.toml"),
	}, checkerArgs()...)
}

// execute runs the CLI with args placed after the subcommand.
func execute(t *testing.T, ctx context.Context, sub []string, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	err := executeTo(ctx, &out, sub, args...)
	return out.String(), err
}

func executeTo(ctx context.Context, out io.Writer, sub []string, args ...string) error {
	cmd := newRootCmd(&app{logger: zap.NewNop()})
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(sub, args...))
	return cmd.ExecuteContext(ctx)
}

// syncBuffer is written from the watcher goroutine while tests read it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
