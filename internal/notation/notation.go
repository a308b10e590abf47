// Package notation builds the line-oriented intent notation emitted by the converters.
//
// A line is an upper-case keyword, an optional value and an indentation level
// (two spaces per level). Lines are appended in traversal order and joined
// with newlines once a conversion finishes.
package notation

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// IndentUnit is the indentation for one nesting level.
const IndentUnit = "  "

// Line is a single notation line.
type Line struct {
	Keyword string
	Value   string
	Indent  int
}

// String renders the line with its indentation.
func (l Line) String() string {
	indent := l.Indent
	if indent < 0 {
		indent = 0
	}
	prefix := strings.Repeat(IndentUnit, indent)
	if l.Value == "" {
		return prefix + l.Keyword
	}
	return prefix + l.Keyword + " " + l.Value
}

// Builder accumulates lines for one conversion call.
// The zero value is ready to use.
type Builder struct {
	lines []Line
}

// Add appends a line. The value is sanitized so it never spans more than one line.
func (b *Builder) Add(keyword, value string, indent int) {
	b.lines = append(b.lines, Line{
		Keyword: keyword,
		Value:   Sanitize(value),
		Indent:  indent,
	})
}

// Len returns the number of lines added so far.
func (b *Builder) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the accumulated lines.
func (b *Builder) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// String joins the lines with newlines.
func (b *Builder) String() string {
	rendered := make([]string, len(b.lines))
	for i, line := range b.lines {
		rendered[i] = line.String()
	}
	return strings.Join(rendered, "\n")
}

// Sanitize collapses embedded line breaks to spaces and trims the result.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return strings.TrimSpace(s)
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// UpperSnake turns a camelCase, PascalCase or space separated label into UPPER_SNAKE_CASE.
// Every whitespace run, line breaks included, becomes one underscore.
func UpperSnake(s string) string {
	return strcase.ToScreamingSnake(strings.Join(strings.Fields(s), "_"))
}

// ErrorLine renders the single line reported when a conversion fails.
func ErrorLine(label string, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = Sanitize(err.Error())
	}
	return fmt.Sprintf("ERROR Invalid %s: %s", label, msg)
}
