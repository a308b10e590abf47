package convert

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// fragmentTag is reported for <>...</> elements, which have no tag name.
const fragmentTag = "FRAGMENT"

func isJSXElement(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	return false
}

// jsxRoots returns the outermost JSX elements under n without entering nested functions.
// It sees through parentheses, ternaries and logical expressions.
func jsxRoots(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	if isJSXElement(n) {
		return []*sitter.Node{n}
	}
	if opensScope(n) {
		return nil
	}
	var roots []*sitter.Node
	for _, child := range namedChildren(n) {
		roots = append(roots, jsxRoots(child)...)
	}
	return roots
}

// renderElement emits RENDER for el, then its attributes and children one level deeper.
func (w *componentWalker) renderElement(el *sitter.Node, indent int) {
	opening := el
	if el.Type() == "jsx_element" {
		if open := el.ChildByFieldName("open_tag"); open != nil {
			opening = open
		}
	}

	tag := fragmentTag
	if el.Type() != "jsx_fragment" {
		if name := opening.ChildByFieldName("name"); name != nil {
			tag = strings.ToUpper(w.text(name))
		}
	}
	w.b.Add("RENDER", tag, indent)

	for _, attr := range namedChildren(opening) {
		if attr.Type() == "jsx_attribute" {
			w.renderAttribute(attr, indent+1)
		}
	}

	if el.Type() == "jsx_self_closing_element" {
		return
	}
	for _, child := range namedChildren(el) {
		w.renderChild(child, indent+1)
	}
}

// renderAttribute maps on* attributes to EVENT, className to CLASS and the rest to PROP.
// Spread attributes ({...rest}) are not jsx_attribute nodes and are skipped by the caller,
// as are spread children in renderChild.
func (w *componentWalker) renderAttribute(attr *sitter.Node, indent int) {
	parts := namedChildren(attr)
	if len(parts) == 0 {
		return
	}
	name := w.text(parts[0])
	value := "true"
	if len(parts) > 1 {
		value = w.attributeValue(parts[1])
	}

	switch {
	case strings.HasPrefix(name, "on"):
		w.b.Add("EVENT", name+" "+value, indent)
	case name == "className" || name == "class":
		w.b.Add("CLASS", value, indent)
	default:
		w.b.Add("PROP", name+" "+value, indent)
	}
}

func (w *componentWalker) attributeValue(v *sitter.Node) string {
	switch v.Type() {
	case "string":
		return unquote(w.text(v))
	case "jsx_expression":
		return w.expr(firstNamedChild(v))
	}
	return w.expr(v)
}

func (w *componentWalker) renderChild(child *sitter.Node, indent int) {
	switch child.Type() {
	case "jsx_text", "html_character_reference":
		if text := strings.Join(strings.Fields(w.text(child)), " "); text != "" {
			w.b.Add("TEXT", text, indent)
		}

	case "jsx_expression":
		inner := firstNamedChild(child)
		if inner == nil || inner.Type() == "spread_element" {
			return
		}
		w.b.Add("DYNAMIC", w.expr(inner), indent)

	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		w.b.Add("CHILD", "", indent)
		w.renderElement(child, indent+1)
	}
}

// expr reduces an expression to short text. Anything it does not recognize
// renders as "expression"; a nil node renders as "".
func (w *componentWalker) expr(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"this", "super", "number", "true", "false", "null", "undefined":
		return w.text(n)

	case "string":
		if s := unquote(w.text(n)); s != "" {
			return s
		}
		return `""`

	case "template_string":
		for _, part := range namedChildren(n) {
			if part.Type() == "template_substitution" {
				return "expression"
			}
		}
		return unquote(w.text(n))

	case "member_expression":
		return w.expr(n.ChildByFieldName("object")) + "." + w.text(n.ChildByFieldName("property"))

	case "call_expression":
		return w.expr(n.ChildByFieldName("function")) + "()"

	case "parenthesized_expression":
		return w.expr(firstNamedChild(n))

	case "unary_expression":
		op := w.text(n.ChildByFieldName("operator"))
		if op == "typeof" || op == "void" || op == "delete" {
			op += " "
		}
		return op + w.expr(n.ChildByFieldName("argument"))

	case "array":
		items := namedChildren(n)
		rendered := make([]string, len(items))
		for i, item := range items {
			rendered[i] = w.expr(item)
		}
		return "[" + strings.Join(rendered, ", ") + "]"

	case "object":
		if len(namedChildren(n)) == 0 {
			return "{}"
		}
	}
	return "expression"
}

// unquote strips one pair of matching quotes or backticks.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
