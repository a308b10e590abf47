// Package convert turns JSON, YAML, HTML, React/JSX and free text into intent notation.
package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies an input format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHTML  Format = "html"
	FormatReact Format = "react"
	FormatText  Format = "text"

	// FormatAuto asks the engine to detect the format. Results never report it.
	FormatAuto Format = "auto"
)

// formatAliases maps accepted spellings to formats.
var formatAliases = map[string]Format{
	"json":  FormatJSON,
	"yaml":  FormatYAML,
	"yml":   FormatYAML,
	"html":  FormatHTML,
	"htm":   FormatHTML,
	"xml":   FormatHTML,
	"react": FormatReact,
	"jsx":   FormatReact,
	"tsx":   FormatReact,
	"text":  FormatText,
	"txt":   FormatText,
	"md":    FormatText,
	"auto":  FormatAuto,
	"":      FormatAuto,
}

// extensionFormats maps file extensions to format hints.
// Plain .js/.ts files are left to detection since they may not contain components.
var extensionFormats = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".xml":  FormatHTML,
	".jsx":  FormatReact,
	".tsx":  FormatReact,
	".txt":  FormatText,
	".md":   FormatText,
}

// ParseFormat parses a case-insensitive format name or alias.
func ParseFormat(s string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown format %q (use json, yaml, html, react, text or auto)", s)
	}
	return f, nil
}

// FormatForPath returns the format hinted by a file extension, or FormatAuto.
func FormatForPath(path string) Format {
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatAuto
}

// Formats returns the concrete formats in detection priority order.
func Formats() []Format {
	return []Format{FormatReact, FormatHTML, FormatJSON, FormatYAML, FormatText}
}

// Label returns the human-readable name used in listings.
func (f Format) Label() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatHTML:
		return "HTML"
	case FormatReact:
		return "React/JSX"
	case FormatText:
		return "Text"
	case FormatAuto:
		return "Auto-detect"
	default:
		return string(f)
	}
}

// Extensions returns the file extensions hinting f, sorted.
func (f Format) Extensions() []string {
	var exts []string
	for ext, format := range extensionFormats {
		if format == f {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// IsConcrete reports whether f names a real converter (anything but auto).
func (f Format) IsConcrete() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatHTML, FormatReact, FormatText:
		return true
	}
	return false
}
