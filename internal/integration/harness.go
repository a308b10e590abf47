// Package integration provides integration testing utilities for toonify.
package integration

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HartBrook/toonify/internal/cli"
	"github.com/HartBrook/toonify/internal/config"
	"github.com/HartBrook/toonify/internal/errors"
)

// workPlaceholder is replaced with the work directory in fixture args and assertions.
const workPlaceholder = "$WORK"

// TestEnv provides an isolated test environment with overridden paths.
type TestEnv struct {
	t         *testing.T
	RootDir   string        // t.TempDir() root
	HomeDir   string        // Simulated $HOME
	ConfigDir string        // ~/.config/toonify
	WorkDir   string        // Where input files are written
	Paths     *config.Paths // Configured paths pointing to temp dirs
}

// NewTestEnv creates an isolated test environment with a default config file.
// Every CLI run passes --config explicitly, so $HOME is never consulted and
// environments can run in parallel.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	rootDir := t.TempDir()
	homeDir := filepath.Join(rootDir, "home")
	configDir := filepath.Join(homeDir, ".config", "toonify")
	workDir := filepath.Join(rootDir, "work")

	for _, dir := range []string{configDir, workDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	env := &TestEnv{
		t:         t,
		RootDir:   rootDir,
		HomeDir:   homeDir,
		ConfigDir: configDir,
		WorkDir:   workDir,
		Paths:     config.NewPathsWithOverrides(configDir),
	}
	if err := env.SetupConfig(config.Default()); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// SetupConfig writes config.yaml.
func (e *TestEnv) SetupConfig(cfg *config.Config) error {
	return config.SaveTo(cfg, e.Paths.ConfigFile)
}

// WriteFile writes an input file relative to the work directory and returns its path.
func (e *TestEnv) WriteFile(relPath, content string) (string, error) {
	fullPath := e.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	return fullPath, os.WriteFile(fullPath, []byte(content), 0644)
}

// ReadFile reads a file relative to the work directory.
func (e *TestEnv) ReadFile(relPath string) (string, error) {
	content, err := os.ReadFile(e.Path(relPath))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Path returns the absolute path of relPath inside the work directory.
func (e *TestEnv) Path(relPath string) string {
	return filepath.Join(e.WorkDir, filepath.FromSlash(relPath))
}

// Expand substitutes $WORK with the work directory.
func (e *TestEnv) Expand(s string) string {
	return strings.ReplaceAll(s, workPlaceholder, e.WorkDir)
}

// Result is the outcome of one CLI run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ErrorCode returns the typed error code, or "" when the run succeeded or
// failed with an untyped error.
func (r Result) ErrorCode() errors.ErrorCode {
	var te *errors.ToonifyError
	if stderrors.As(r.Err, &te) {
		return te.Code
	}
	return ""
}

// RunCLI runs the root command against this environment's config file.
func (e *TestEnv) RunCLI(stdin string, args ...string) Result {
	return e.RunCLIContext(context.Background(), stdin, args...)
}

// RunCLIContext is RunCLI with a context, for long-running commands like watch.
func (e *TestEnv) RunCLIContext(ctx context.Context, stdin string, args ...string) Result {
	e.t.Helper()

	cmd := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.Paths.ConfigFile}, args...))

	err := cmd.ExecuteContext(ctx)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
