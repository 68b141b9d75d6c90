package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/wayfinder/internal/logging"
)

func newTestWatcher(t *testing.T) *DirWatcher {
	t.Helper()
	w, err := NewDirWatcher(logging.Discard())
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func expectChange(t *testing.T, w *DirWatcher, want string) {
	t.Helper()
	select {
	case got := <-w.Changes():
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported for %s", want)
	}
}

func TestDirWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	require.NoError(t, w.Watch(dir))
	assert.Equal(t, dir, w.Dir())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))
	expectChange(t, w, dir)
}

func TestDirWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	require.NoError(t, w.Watch(dir))

	for i := 0; i < 20; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"+string(rune('a'+i))), nil, 0o644))
	}
	expectChange(t, w, dir)

	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected second notification for %s", extra)
	case <-time.After(3 * watchDebounce):
	}
}

func TestDirWatcherFollowsWatchedDirectory(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	w := newTestWatcher(t)
	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Dir())

	require.NoError(t, os.WriteFile(filepath.Join(second, "x"), nil, 0o644))
	expectChange(t, w, second)
}

func TestDirWatcherRejectsMissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, w.Dir())
}

func TestDirWatcherCloseIsIdempotent(t *testing.T) {
	w := newTestWatcher(t)
	w.Close()
	assert.NotPanics(t, w.Close)
}
