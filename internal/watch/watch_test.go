package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcher_TriggersOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "flake.nix")
	require.NoError(t, os.WriteFile(target, []byte("# I AM NOT DONE\n"), 0o600))

	changed := make(chan string, 8)
	w, err := New([]string{dir}, func(ctx context.Context, path string) {
		changed <- path
	}, WithDebounce(50*time.Millisecond), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(target, []byte("{}\n"), 0o600))

	select {
	case path := <-changed:
		assert.Equal(t, target, path)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var calls atomic.Int32
	w, err := New([]string{dir}, func(ctx context.Context, path string) {
		calls.Add(1)
	}, WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "flake.nix"), []byte{byte('a' + i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	w.Stop()

	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_FilePathWatchesParent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exercise.nix")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	assert.Equal(t, []string{dir}, watchDirs([]string{file, dir, filepath.Join(dir, "missing.nix")}))
}

func TestWatcher_StartFailsWithoutDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New([]string{filepath.Join(t.TempDir(), "gone", "deeper")}, func(context.Context, string) {})
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New([]string{t.TempDir()}, func(context.Context, string) {})
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestWatcher_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	w, err := New([]string{t.TempDir()}, func(context.Context, string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	cancel()
	w.Stop()
}
