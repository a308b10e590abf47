package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/toonify/internal/config"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toonify", "config.yaml")

	stdout, _, err := execute(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	stdout, _, err = execute(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config already exists")
}

func TestConfigInit_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0644))

	_, _, err := execute(t, "", "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
}

func TestConfigInit_DefaultLocation(t *testing.T) {
	home := t.TempDir()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"config", "init"})
	cmd.SetOut(io.Discard)
	t.Setenv("HOME", home)
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(home, ".config", "toonify", "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	stdout, _, err := execute(t, "", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "not found, using defaults")
	assert.Contains(t, stdout, "Format: auto")
	assert.Contains(t, stdout, "Memo size: 128")
	assert.Contains(t, stdout, "Watch debounce: 250ms")
}

func TestConfigShow_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nmemo:\n  size: 16\n"), 0644))
	t.Setenv("TOONIFY_STATS", "false")

	stdout, _, err := execute(t, "", "--config", path, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "not found")
	assert.Contains(t, stdout, "Format: yaml")
	assert.Contains(t, stdout, "Stats: false")
	assert.Contains(t, stdout, "Memo size: 16")
}
