package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Armavica/vis/internal/vislog"
)

func newTestWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, vislog.New(&bytes.Buffer{}))
	require.NoError(t, err, "failed to create watcher")
	w.debounce = 30 * time.Millisecond
	return w
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_case: false\n"), 0o644))

	w := newTestWatcher(t, path)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	require.NoError(t, os.WriteFile(path, []byte("ignore_case: true\n"), 0o644))

	select {
	case cfg := <-onChange:
		require.True(t, cfg.IgnoreCase)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected reloaded config but got timeout")
	}
}

func TestWatcherDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("half_page_lines: 1\n"), 0o644))

	w := newTestWatcher(t, path)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	for i := 2; i <= 6; i++ {
		require.NoError(t, os.WriteFile(path, []byte("half_page_lines: 9\n"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected a single coalesced notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification from debounced writes")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vis.yaml")
	otherPath := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_case: false\n"), 0o644))
	require.NoError(t, os.WriteFile(otherPath, []byte("unrelated\n"), 0o644))

	w := newTestWatcher(t, path)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	require.NoError(t, os.WriteFile(otherPath, []byte("still unrelated\n"), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for an unrelated file in the same directory")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherStopDoesNotHang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_case: false\n"), 0o644))

	w := newTestWatcher(t, path)
	_, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}
