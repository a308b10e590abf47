package convert

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/HartBrook/toonify/internal/notation"
)

// maxHeadingRunes is the length below which a paragraph may be a heading.
const maxHeadingRunes = 50

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n\s*`)
	headingMarker  = regexp.MustCompile(`^#+\s`)
	listMarker     = regexp.MustCompile(`^[-*•]\s`)
	listPrefix     = regexp.MustCompile(`^[-*•]\s*`)
	keyValue       = regexp.MustCompile(`^([^:]+):\s*(.+)$`)

	upper = cases.Upper(language.Und)
)

// TextConverter classifies free-text paragraphs as headings, list items,
// key-value pairs or plain text. It accepts any input.
type TextConverter struct{}

// Detect always reports true; free text is the fallback format.
func (TextConverter) Detect(string) bool {
	return true
}

// Convert emits one or more lines per paragraph.
func (TextConverter) Convert(input string) string {
	var b notation.Builder

	input = strings.ReplaceAll(input, "\r\n", "\n")
	for _, para := range paragraphBreak.Split(input, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		convertParagraph(&b, para)
	}

	if b.Len() == 0 {
		return "TEXT (empty)"
	}
	return b.String()
}

func convertParagraph(b *notation.Builder, para string) {
	if isHeading(para) {
		b.Add("HEADING", para, 0)
		return
	}

	if listMarker.MatchString(para) {
		for _, item := range listItems(para) {
			b.Add("ITEM", item, 0)
		}
		return
	}

	lines := strings.Split(para, "\n")
	if len(lines) > 1 && allKeyValue(lines) {
		for _, line := range lines {
			addKeyValue(b, strings.TrimSpace(line))
		}
		return
	}

	if !addKeyValue(b, para) {
		b.Add("TEXT", para, 0)
	}
}

// isHeading accepts short paragraphs that are upper-case, end with a colon
// or start with a markdown # run. Upper-case needs at least one letter.
func isHeading(text string) bool {
	if utf8.RuneCountInString(text) >= maxHeadingRunes {
		return false
	}
	if strings.HasSuffix(text, ":") || headingMarker.MatchString(text) {
		return true
	}
	return hasLetter(text) && upper.String(text) == text
}

// listItems splits a list paragraph into items. Lines without a marker
// continue the previous item.
func listItems(para string) []string {
	var items []string
	for _, line := range strings.Split(para, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if listMarker.MatchString(line) || len(items) == 0 {
			items = append(items, listPrefix.ReplaceAllString(line, ""))
			continue
		}
		items[len(items)-1] += " " + line
	}
	return items
}

func allKeyValue(lines []string) bool {
	for _, line := range lines {
		if !keyValue.MatchString(strings.TrimSpace(line)) {
			return false
		}
	}
	return true
}

// addKeyValue emits "<LABEL> rest" and reports whether text was a key-value pair.
func addKeyValue(b *notation.Builder, text string) bool {
	m := keyValue.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	keyword := notation.UpperSnake(m[1])
	if keyword == "" {
		return false
	}
	b.Add(keyword, m[2], 0)
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
