package convert

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/HartBrook/toonify/internal/notation"
)

var (
	leadingTag  = regexp.MustCompile(`^<[^>]+>`)
	trailingTag = regexp.MustCompile(`</[^>]+>$`)
)

// voidElements never have content, so their start tags close themselves.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// MarkupConverter extracts element structure from HTML-like markup.
//
// It is a lightweight structural pass over the token stream, not a conformant
// HTML parser: no implied elements, no foster parenting, no error recovery
// beyond closing to the nearest open element of the same name.
//
// Same-named nested elements (a <div> inside a <div>) pair with their own
// closing tags. A regex pairing that closes at the first matching end tag would
// attach the outer element's remaining children to the wrong parent.
type MarkupConverter struct{}

// Detect reports whether trimmed input starts with a tag or ends with a closing tag.
func (MarkupConverter) Detect(input string) bool {
	trimmed := strings.TrimSpace(input)
	return leadingTag.MatchString(trimmed) || trailingTag.MatchString(trimmed)
}

// Convert emits ELEMENT lines with their attributes and text.
func (MarkupConverter) Convert(input string) string {
	root, err := parseMarkup(input)
	if err != nil {
		return notation.ErrorLine("HTML", err)
	}

	var b notation.Builder
	for _, child := range root.children {
		renderMarkup(&b, child, 0)
	}
	return b.String()
}

// markupNode is an element, or a text run when tag is empty.
type markupNode struct {
	tag      string
	attrs    []html.Attribute
	text     string
	children []*markupNode
}

// parseMarkup builds an element tree. Comments and doctypes are dropped,
// stray end tags ignored and unclosed elements closed at end of input.
func parseMarkup(input string) (*markupNode, error) {
	z := html.NewTokenizer(strings.NewReader(input))
	root := &markupNode{}
	stack := []*markupNode{root}

	for {
		if z.Next() == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return root, nil
		}

		tok := z.Token()
		parent := stack[len(stack)-1]

		switch tok.Type {
		case html.TextToken:
			if text := strings.TrimSpace(tok.Data); text != "" {
				parent.children = append(parent.children, &markupNode{text: text})
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			node := &markupNode{tag: tok.Data, attrs: tok.Attr}
			parent.children = append(parent.children, node)
			if tok.Type == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].tag == tok.Data {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func renderMarkup(b *notation.Builder, n *markupNode, indent int) {
	if n.tag == "" {
		b.Add("TEXT", n.text, indent)
		return
	}

	b.Add("ELEMENT", strings.ToUpper(n.tag), indent)
	addMarkupAttributes(b, n.attrs, indent+1)
	for _, child := range n.children {
		renderMarkup(b, child, indent+1)
	}
}

// addMarkupAttributes emits CLASS, then ID, then EVENT lines, then every other attribute.
func addMarkupAttributes(b *notation.Builder, attrs []html.Attribute, indent int) {
	if v := firstAttr(attrs, "class"); v != "" {
		b.Add("CLASS", v, indent)
	}
	if v := firstAttr(attrs, "id"); v != "" {
		b.Add("ID", v, indent)
	}
	for _, a := range attrs {
		if strings.HasPrefix(a.Key, "on") {
			b.Add("EVENT", a.Key+" "+a.Val, indent)
		}
	}
	for _, a := range attrs {
		if a.Key == "class" || a.Key == "id" || strings.HasPrefix(a.Key, "on") {
			continue
		}
		b.Add("ATTR", a.Key+" "+a.Val, indent)
	}
}

func firstAttr(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
