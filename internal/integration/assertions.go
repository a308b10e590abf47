package integration

import (
	"strings"
	"testing"

	"github.com/HartBrook/toonify/internal/errors"
)

// Asserter provides assertion helpers for CLI results.
type Asserter struct {
	t      *testing.T
	env    *TestEnv
	result Result
}

// NewAsserter creates an asserter for the given result.
func NewAsserter(t *testing.T, env *TestEnv, result Result) *Asserter {
	return &Asserter{t: t, env: env, result: result}
}

// ContainsText checks if stdout contains a substring.
func (a *Asserter) ContainsText(text string) bool {
	return strings.Contains(a.result.Stdout, text)
}

// StderrContains checks if stderr contains a substring.
func (a *Asserter) StderrContains(text string) bool {
	return strings.Contains(a.result.Stderr, text)
}

// GetOutput returns the raw stdout.
func (a *Asserter) GetOutput() string {
	return a.result.Stdout
}

// RunAssertions runs all assertions from a fixture definition.
// Every expected string may use $WORK for the work directory.
func (a *Asserter) RunAssertions(assertions FixtureAssertions) {
	a.t.Helper()

	// Check error code
	want := errors.ErrorCode(assertions.ErrorCode)
	if got := a.result.ErrorCode(); got != want {
		a.t.Errorf("expected error code %q, got %q (err: %v)", want, got, a.result.Err)
	}
	if want == "" && a.result.Err != nil {
		a.t.Errorf("expected no error, got %v", a.result.Err)
	}

	// Check exact output
	if assertions.Output != nil {
		if expected := a.env.Expand(*assertions.Output); a.result.Stdout != expected {
			a.t.Errorf("expected output:\n%s\ngot:\n%s", expected, a.result.Stdout)
		}
	}

	// Check contains
	for _, text := range assertions.Contains {
		if !a.ContainsText(a.env.Expand(text)) {
			a.t.Errorf("expected output to contain %q, but not found", text)
		}
	}

	// Check not contains
	for _, text := range assertions.NotContains {
		if a.ContainsText(a.env.Expand(text)) {
			a.t.Errorf("expected output NOT to contain %q, but found", text)
		}
	}

	// Check stderr
	for _, text := range assertions.StderrContains {
		if !a.StderrContains(a.env.Expand(text)) {
			a.t.Errorf("expected stderr to contain %q, but not found in:\n%s", text, a.result.Stderr)
		}
	}

	// Check written files
	for relPath, expected := range assertions.Files {
		a.checkFile(relPath, expected)
	}
}

// checkFile verifies a file written by the run.
func (a *Asserter) checkFile(relPath, expected string) {
	a.t.Helper()

	content, err := a.env.ReadFile(relPath)
	if err != nil {
		a.t.Errorf("expected file %q: %v", relPath, err)
		return
	}
	if content != expected {
		a.t.Errorf("file %q: expected %q, got %q", relPath, expected, content)
	}
}
