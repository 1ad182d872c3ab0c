package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *Watcher, onChange func(context.Context) error) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		assert.NoError(t, w.Run(ctx, onChange))
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func TestWatcher_CallsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.schema")
	require.NoError(t, os.WriteFile(path, []byte("type A { x: int }\n"), 0o600))

	var calls atomic.Int32

	w := New(path,
		WithDebounce(20*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	stop := startWatcher(t, w, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	defer stop()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("type A { x: long }\n"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.schema")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("type A { x: int }\n"), 0o600))

	var calls atomic.Int32

	w := New(path, WithDebounce(0), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	stop := startWatcher(t, w, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	defer stop()

	for range 5 {
		require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Never(t, func() bool { return calls.Load() > 0 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestWatcher_CallbackErrorKeepsWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.schema")
	require.NoError(t, os.WriteFile(path, []byte("type A { x: int }\n"), 0o600))

	var calls atomic.Int32

	w := New(path, WithDebounce(0), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	stop := startWatcher(t, w, func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})
	defer stop()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("type A { x: long }\n"), 0o600)
		return calls.Load() >= 2
	}, 5*time.Second, 100*time.Millisecond)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "model.schema"))

	err := w.Run(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
}
