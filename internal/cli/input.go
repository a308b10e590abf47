package cli

import (
	"io"
	"os"

	"github.com/HartBrook/toonify/internal/config"
	"github.com/HartBrook/toonify/internal/convert"
	"github.com/HartBrook/toonify/internal/errors"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// readInput returns the content of path, or of stdin for "-".
func readInput(stdin io.Reader, path string) (string, error) {
	if path == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.InputUnreadable("stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.InputNotFound(path)
		}
		return "", errors.InputUnreadable(path, err)
	}
	return string(data), nil
}

// parseFormatFlag validates a --format value. An empty value means "not given".
func parseFormatFlag(value string) (convert.Format, error) {
	if value == "" {
		return "", nil
	}
	f, err := convert.ParseFormat(value)
	if err != nil {
		return "", errors.InvalidFormat(value)
	}
	return f, nil
}

// formatFor picks the format for one input: the --format flag, then the file
// extension, then the configured default.
func formatFor(flag convert.Format, path string, cfg *config.Config) convert.Format {
	if flag != "" {
		return flag
	}
	if path != stdinArg {
		if hint := convert.FormatForPath(path); hint.IsConcrete() {
			return hint
		}
	}
	return cfg.InputFormat()
}
