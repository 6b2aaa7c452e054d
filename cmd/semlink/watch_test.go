package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputWatcherReportsContentChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	w, err := newInputWatcher([]string{path}, 20*time.Millisecond, quietLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			changes <- changed
			return nil
		})
	}()

	// Rewriting identical content and touching unrelated files is ignored.
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))

	select {
	case got := <-changes:
		assert.Equal(t, []string{path}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestInputWatcherFlushSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	w, err := newInputWatcher([]string{path}, time.Second, quietLogger())
	require.NoError(t, err)
	defer w.Close()

	w.pending[path] = true
	assert.Empty(t, w.flushPending())

	require.NoError(t, os.WriteFile(path, []byte("b"), 0644))
	w.pending[path] = true
	assert.Equal(t, []string{path}, w.flushPending())
	assert.Empty(t, w.pending)
}
