package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()
	w.SetDebounce(20 * time.Millisecond)
	w.Start()

	// writes to other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	select {
	case got := <-w.Changes:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0o644))
	select {
	case got := <-w.Changes:
		assert.Equal(t, w.Path(), got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Close()
	w.SetDebounce(50 * time.Millisecond)
	w.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-w.Changes:
		t.Fatal("burst reported more than once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	w, err := New(path)
	require.NoError(t, err)
	w.Start()

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "file.txt"))
	assert.Error(t, err)
}
