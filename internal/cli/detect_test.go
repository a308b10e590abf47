package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/toonify/internal/errors"
)

func TestDetect_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json", `{"a":1}`, "json\tJSON\n"},
		{"yaml", "a: 1\nb: 2", "yaml\tYAML\n"},
		{"html", "<div><p>x</p></div>", "html\tHTML\n"},
		{"react", "function App() { return <div />; }", "react\tReact/JSX\n"},
		{"text", "just words", "text\tText\n"},
		{"blank", "", "text\tText\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.input, "detect")
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestDetect_IgnoresExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.md", `{"a":1}`)

	stdout, _, err := execute(t, "", "detect", path)
	require.NoError(t, err)
	assert.Equal(t, "json\tJSON\n", stdout)
}

func TestDetect_Errors(t *testing.T) {
	_, _, err := execute(t, "", "detect", filepath.Join(t.TempDir(), "missing"))
	requireCode(t, err, errors.ErrInputNotFound)

	_, _, err = execute(t, "", "detect", "a", "b")
	assert.Error(t, err)
}
