package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(dir, "missing.json"), 0, nil)
		require.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := New(dir, 0, nil)
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		path := filepath.Join(dir, "input.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		w, err := New(path, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultDebounce, w.debounce)
		assert.True(t, filepath.IsAbs(w.Path()))
	})
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file content")
		return ""
	}
}

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0644))

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(content string) { got <- content })
	}()

	assert.Equal(t, "a: 1\n", receive(t, got))

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	// Unchanged content is not delivered again.
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0644))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a: 2\n"), 0644))
	assert.Equal(t, "a: 2\n", receive(t, got))

	// A burst of writes settles on the final content.
	for _, content := range []string{"a: 3\n", "a: 4\n", "a: 5\n"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	for {
		if c := receive(t, got); c == "a: 5\n" {
			break
		}
	}

	// Other files in the directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b: 1\n"), 0644))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_RelevantEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w, err := New(path, 0, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: w.Path(), Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: w.Path(), Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: w.Path(), Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: w.Path(), Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: w.Path(), Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "other.txt"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestHashContent(t *testing.T) {
	assert.Equal(t, hashContent([]byte("a")), hashContent([]byte("a")))
	assert.NotEqual(t, hashContent([]byte("a")), hashContent([]byte("b")))
	assert.Len(t, hashContent(nil), 64)
}
