package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/toonify/internal/errors"
)

func TestExample(t *testing.T) {
	stdout, _, err := execute(t, "", "example", "json")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Input: order.json (JSON)")
	assert.Contains(t, stdout, `"status": "paid"`)
	assert.Contains(t, stdout, "ORDER OBJECT\n  ID 1\n  STATUS paid")
	assert.Contains(t, stdout, "Tokens:")
}

func TestExample_React(t *testing.T) {
	stdout, _, err := execute(t, "", "example", "react")
	require.NoError(t, err)

	assert.Contains(t, stdout, "(React/JSX)")
	assert.Contains(t, stdout, "COMPONENT Login")
}

func TestExample_Unknown(t *testing.T) {
	_, _, err := execute(t, "", "example", "csv")
	requireCode(t, err, errors.ErrInvalidFormat)
}

func TestExample_Args(t *testing.T) {
	_, _, err := execute(t, "", "example")
	assert.Error(t, err)

	_, _, err = execute(t, "", "example", "json", "--save", t.TempDir())
	assert.Error(t, err)
}

func TestExample_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "samples")

	stdout, _, err := execute(t, "", "example", "--save", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Copied 5 samples")

	for _, name := range []string{"order.json", "login.jsx", "card.html", "service.yaml", "notes.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should be copied", name)
	}

	stdout, _, err = execute(t, "", "example", "--save", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exist")
}
