//go:build live

package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLive_WatchRewrites edits a real file while watch is running.
// Run with: go test -tags=live ./internal/integration/...
func TestLive_WatchRewrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live test in short mode")
	}

	env := NewTestEnv(t)
	path, err := env.WriteFile("data.json", `{"step":1}`)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		// Give the watcher time to subscribe before editing.
		time.Sleep(500 * time.Millisecond)
		_ = os.WriteFile(path, []byte(`{"step":1}`), 0644)
		time.Sleep(300 * time.Millisecond)
		_ = os.WriteFile(path, []byte(`{"step":2}`), 0644)
		time.Sleep(300 * time.Millisecond)
		_ = os.WriteFile(path, []byte(`{"step":3}`), 0644)
	}()

	result := env.RunCLIContext(ctx, "", "watch", "--no-stats", "--debounce", "50ms", path)
	require.NoError(t, result.Err)

	out := result.Stdout
	assert.Equal(t, 3, strings.Count(out, "==> "), "unchanged write should be skipped:\n%s", out)
	assert.Contains(t, out, "STEP 1")
	assert.Contains(t, out, "STEP 2")
	assert.Contains(t, out, "STEP 3")
	assert.Less(t, strings.Index(out, "STEP 2"), strings.Index(out, "STEP 3"))
}

// TestLive_WatchRemovedFile keeps watching after the file is replaced by a rename,
// the way editors save.
func TestLive_WatchRemovedFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live test in short mode")
	}

	env := NewTestEnv(t)
	path, err := env.WriteFile("page.html", "<p>one</p>")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		time.Sleep(500 * time.Millisecond)
		tmp := path + ".swp"
		_ = os.WriteFile(tmp, []byte("<p>two</p>"), 0644)
		_ = os.Rename(tmp, path)
	}()

	result := env.RunCLIContext(ctx, "", "watch", "--no-stats", "--debounce", "50ms", path)
	require.NoError(t, result.Err)

	assert.Contains(t, result.Stdout, "TEXT one")
	assert.Contains(t, result.Stdout, "TEXT two")
}
