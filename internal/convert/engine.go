package convert

import (
	"strings"

	"github.com/HartBrook/toonify/internal/tokens"
)

// Result is the outcome of one conversion.
type Result struct {
	Tokens             string `json:"tokens"`
	TokenCount         int    `json:"tokenCount"`
	InputTokenEstimate int    `json:"inputTokenEstimate"`
	Format             Format `json:"format"`
}

// Stats returns the before/after token statistics for the result.
func (r Result) Stats() tokens.Stats {
	return tokens.Stats{Before: r.InputTokenEstimate, After: r.TokenCount}
}

// IsError reports whether the conversion failed. Failures are only visible
// through the ERROR line prefix.
func (r Result) IsError() bool {
	return strings.HasPrefix(r.Tokens, "ERROR ")
}

// Engine detects formats and dispatches to the matching converter.
// It holds no mutable state; one Engine may be shared across goroutines.
type Engine struct {
	json      JSONConverter
	yaml      YAMLConverter
	markup    MarkupConverter
	component ComponentConverter
	text      TextConverter
}

// NewEngine creates an engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Detect resolves the concrete format of input. Detectors run most-specific
// first: react, html, json, yaml, then text as the fallback.
func (e *Engine) Detect(input string) Format {
	if strings.TrimSpace(input) == "" {
		return FormatText
	}
	for _, f := range Formats() {
		if e.converter(f).Detect(input) {
			return f
		}
	}
	return FormatText
}

// Convert converts input. FormatAuto (or any value that is not a concrete
// format) triggers detection. Blank input short-circuits to an empty text result.
func (e *Engine) Convert(input string, format Format) Result {
	if strings.TrimSpace(input) == "" {
		return Result{Format: FormatText}
	}

	if !format.IsConcrete() {
		format = e.Detect(input)
	}

	out := e.converter(format).Convert(input)
	return Result{
		Tokens:             out,
		TokenCount:         tokens.Estimate(out),
		InputTokenEstimate: tokens.Estimate(input),
		Format:             format,
	}
}

// converter maps a concrete format to its converter.
func (e *Engine) converter(f Format) Converter {
	switch f {
	case FormatReact:
		return e.component
	case FormatHTML:
		return e.markup
	case FormatJSON:
		return e.json
	case FormatYAML:
		return e.yaml
	default:
		return e.text
	}
}
