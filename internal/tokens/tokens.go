// Package tokens estimates language-model token counts for raw input and notation output.
package tokens

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// CharsPerToken is the empirical character-per-token ratio used by Estimate.
const CharsPerToken = 4

var (
	lineBreaks      = regexp.MustCompile(`\s*\n\s*`)
	horizontalSpace = regexp.MustCompile(`[^\S\n]+`)
)

// Normalize trims text, removes blank lines and collapses runs of spaces and tabs.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	text = lineBreaks.ReplaceAllString(text, "\n")
	return horizontalSpace.ReplaceAllString(text, " ")
}

// Estimate approximates the token count of text as normalized runes / CharsPerToken,
// rounded up. Rune count (not bytes) keeps unicode text from being over-counted.
func Estimate(text string) int {
	n := utf8.RuneCountInString(Normalize(text))
	if n == 0 {
		return 0
	}
	return (n + CharsPerToken - 1) / CharsPerToken
}

// Stats holds before/after token statistics for one conversion.
type Stats struct {
	Before int
	After  int
}

// Saved returns the number of tokens saved.
func (s Stats) Saved() int {
	return s.Before - s.After
}

// PercentReduction returns the percentage reduction (negative when the output grew).
func (s Stats) PercentReduction() float64 {
	if s.Before == 0 {
		return 0
	}
	return float64(s.Saved()) / float64(s.Before) * 100
}
