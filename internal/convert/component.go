package convert

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/HartBrook/toonify/internal/notation"
)

var componentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<[A-Z]`),
	regexp.MustCompile(`function\s+[A-Z]\w*\s*\(`),
	regexp.MustCompile(`const\s+[A-Z]\w*\s*=`),
	regexp.MustCompile(`import.*from\s+['"](react|react-dom|preact)(/[\w-]+)?['"]`),
}

// ComponentConverter extracts components, props, hooks, local declarations
// and rendered markup from React-style JSX/TSX source.
type ComponentConverter struct{}

// Detect reports whether input contains component-like syntax.
func (ComponentConverter) Detect(input string) bool {
	for _, re := range componentPatterns {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

// Convert parses input and walks the syntax tree. Valid source with nothing to
// report yields "COMPONENT (empty)".
func (ComponentConverter) Convert(input string) string {
	src := []byte(input)
	tree, err := parseComponentSource(src)
	if err != nil {
		return notation.ErrorLine("component source", err)
	}
	defer tree.Close()

	w := &componentWalker{src: src}
	w.walk(tree.RootNode())

	if w.b.Len() == 0 {
		return "COMPONENT (empty)"
	}
	return w.b.String()
}

// parseComponentSource parses with a fresh parser per call; parsers are not reentrant.
func parseComponentSource(src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsx.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	if root := tree.RootNode(); root.HasError() {
		err := syntaxError(root, src)
		tree.Close()
		return nil, err
	}
	return tree, nil
}

// syntaxError describes the first ERROR or missing node in document order.
func syntaxError(n *sitter.Node, src []byte) error {
	bad := firstErrorNode(n)
	if bad == nil {
		return fmt.Errorf("syntax error")
	}
	pos := bad.StartPoint()
	if bad.IsMissing() {
		return fmt.Errorf("missing %q at line %d, column %d", bad.Type(), pos.Row+1, pos.Column+1)
	}
	snippet := strings.Join(strings.Fields(bad.Content(src)), " ")
	if len(snippet) > 20 {
		snippet = snippet[:20] + "..."
	}
	return fmt.Errorf("unexpected %q at line %d, column %d", snippet, pos.Row+1, pos.Column+1)
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

// componentWalker owns the output for one Convert call. Indentation and the
// component being extracted are passed explicitly through each method.
type componentWalker struct {
	src []byte
	b   notation.Builder
}

// walk visits the program looking for components and for markup that no component owns.
func (w *componentWalker) walk(n *sitter.Node) {
	if name, fn, ok := w.componentDecl(n); ok {
		w.component(name, fn)
		return
	}
	if isJSXElement(n) {
		w.renderElement(n, 0)
		return
	}
	for _, child := range namedChildren(n) {
		w.walk(child)
	}
}

// componentDecl matches a PascalCase function declaration, or a PascalCase
// variable bound to a function (optionally wrapped in memo/forwardRef).
func (w *componentWalker) componentDecl(n *sitter.Node) (string, *sitter.Node, bool) {
	switch n.Type() {
	case "function_declaration":
		name := n.ChildByFieldName("name")
		if name != nil && isPascalCase(w.text(name)) {
			return w.text(name), n, true
		}

	case "variable_declarator":
		name := n.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" || !isPascalCase(w.text(name)) {
			return "", nil, false
		}
		if fn := w.unwrapComponentValue(n.ChildByFieldName("value")); fn != nil {
			return w.text(name), fn, true
		}
	}
	return "", nil, false
}

// componentWrappers are higher-order calls whose first argument is the component function.
var componentWrappers = map[string]bool{
	"memo":             true,
	"forwardRef":       true,
	"React.memo":       true,
	"React.forwardRef": true,
}

func (w *componentWalker) unwrapComponentValue(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch {
		case isFunctionExpression(n):
			return n
		case n.Type() == "parenthesized_expression":
			n = firstNamedChild(n)
		case n.Type() == "call_expression" && componentWrappers[w.text(n.ChildByFieldName("function"))]:
			n = firstNamedChild(n.ChildByFieldName("arguments"))
		default:
			return nil
		}
	}
	return nil
}

// component emits the extraction for one component, in order: props, hooks,
// local declarations, rendered markup.
func (w *componentWalker) component(name string, fn *sitter.Node) {
	const indent = 1

	w.b.Add("COMPONENT", name, 0)
	w.props(fn, indent)

	body := fn.ChildByFieldName("body")
	if body == nil {
		return
	}

	for _, call := range scopedNodes(body, "call_expression") {
		w.hook(call, indent)
	}

	if body.Type() == "statement_block" {
		for _, stmt := range namedChildren(body) {
			w.declaration(stmt, indent)
		}
		for _, ret := range scopedNodes(body, "return_statement") {
			for _, el := range jsxRoots(firstNamedChild(ret)) {
				w.renderElement(el, indent)
			}
		}
		return
	}

	// Concise arrow body.
	for _, el := range jsxRoots(body) {
		w.renderElement(el, indent)
	}
}

// props emits one PROP per plain parameter or destructured property.
func (w *componentWalker) props(fn *sitter.Node, indent int) {
	if p := fn.ChildByFieldName("parameter"); p != nil {
		for _, name := range w.paramNames(p) {
			w.b.Add("PROP", name, indent)
		}
		return
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	for _, p := range namedChildren(params) {
		for _, name := range w.paramNames(p) {
			w.b.Add("PROP", name, indent)
		}
	}
}

func (w *componentWalker) paramNames(p *sitter.Node) []string {
	switch p.Type() {
	case "identifier":
		return []string{w.text(p)}
	case "required_parameter", "optional_parameter":
		if pattern := p.ChildByFieldName("pattern"); pattern != nil {
			return w.paramNames(pattern)
		}
	case "assignment_pattern":
		if left := p.ChildByFieldName("left"); left != nil {
			return w.paramNames(left)
		}
	case "object_pattern":
		var names []string
		for _, prop := range namedChildren(p) {
			switch prop.Type() {
			case "shorthand_property_identifier_pattern":
				names = append(names, w.text(prop))
			case "pair_pattern":
				if key := prop.ChildByFieldName("key"); key != nil {
					names = append(names, w.text(key))
				}
			case "object_assignment_pattern":
				if left := prop.ChildByFieldName("left"); left != nil {
					names = append(names, w.text(left))
				}
			}
		}
		return names
	}
	return nil
}

// Hook kinds.
var (
	stateHooks  = map[string]bool{"useState": true}
	effectHooks = map[string]bool{"useEffect": true, "useLayoutEffect": true}
	memoHooks   = map[string]bool{"useCallback": true, "useMemo": true}
	boundHooks  = map[string]bool{"useRef": true, "useContext": true, "useReducer": true}
)

// hookName returns the hook called by call ("useState" for both useState() and
// React.useState()), or "" when call is not a recognized hook.
func (w *componentWalker) hookName(call *sitter.Node) string {
	if call == nil || call.Type() != "call_expression" {
		return ""
	}
	callee := call.ChildByFieldName("function")
	if callee == nil {
		return ""
	}
	name := w.text(callee)
	if callee.Type() == "member_expression" {
		if prop := callee.ChildByFieldName("property"); prop != nil {
			name = w.text(prop)
		}
	}
	if stateHooks[name] || effectHooks[name] || memoHooks[name] || boundHooks[name] {
		return name
	}
	return ""
}

func (w *componentWalker) hook(call *sitter.Node, indent int) {
	name := w.hookName(call)
	if name == "" {
		return
	}
	args := namedChildren(call.ChildByFieldName("arguments"))
	arg := func(i int) *sitter.Node {
		if i < len(args) {
			return args[i]
		}
		return nil
	}

	switch {
	case stateHooks[name]:
		w.b.Add("HOOK", joinNonEmpty(name, w.boundName(call), w.expr(arg(0))), indent)

	case effectHooks[name]:
		w.b.Add("HOOK", joinNonEmpty(name, w.expr(arg(1))), indent)
		w.effectBody(arg(0), indent+1)

	case memoHooks[name]:
		w.b.Add("HOOK", joinNonEmpty(name, w.boundName(call), w.expr(arg(1))), indent)

	default:
		w.b.Add("HOOK", joinNonEmpty(name, w.boundName(call)), indent)
	}
}

// boundName is the variable a hook result is assigned to. For array
// destructuring it is the first element (the state in [state, setState]).
func (w *componentWalker) boundName(call *sitter.Node) string {
	decl := call.Parent()
	if decl == nil || decl.Type() != "variable_declarator" {
		return ""
	}
	names := w.patternNames(decl.ChildByFieldName("name"))
	if len(names) == 0 {
		return ""
	}
	if decl.ChildByFieldName("name").Type() == "array_pattern" {
		return names[0]
	}
	return strings.Join(names, ",")
}

// effectBody renders the callback's top-level statements: calls and nested functions.
func (w *componentWalker) effectBody(cb *sitter.Node, indent int) {
	if cb == nil || !isFunctionExpression(cb) {
		return
	}
	body := cb.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() != "statement_block" {
		if body.Type() == "call_expression" {
			w.b.Add("CALL", w.expr(body), indent)
		}
		return
	}
	for _, stmt := range namedChildren(body) {
		switch stmt.Type() {
		case "function_declaration":
			if name := stmt.ChildByFieldName("name"); name != nil {
				w.b.Add("FUNCTION", w.text(name), indent)
			}
		case "expression_statement":
			if e := firstNamedChild(stmt); e != nil && e.Type() == "call_expression" {
				w.b.Add("CALL", w.expr(e), indent)
			}
		}
	}
}

// declaration emits FUNCTION/VARIABLE lines for a top-level statement of the
// component body. Hook bindings are skipped; they were reported as HOOK lines.
func (w *componentWalker) declaration(stmt *sitter.Node, indent int) {
	switch stmt.Type() {
	case "function_declaration":
		if name := stmt.ChildByFieldName("name"); name != nil {
			w.b.Add("FUNCTION", w.text(name), indent)
		}

	case "lexical_declaration", "variable_declaration":
		for _, decl := range namedChildren(stmt) {
			if decl.Type() != "variable_declarator" {
				continue
			}
			value := decl.ChildByFieldName("value")
			if w.hookName(value) != "" {
				continue
			}
			names := w.patternNames(decl.ChildByFieldName("name"))
			for _, name := range names {
				if value != nil && isFunctionExpression(value) {
					w.b.Add("FUNCTION", name, indent)
					continue
				}
				w.b.Add("VARIABLE", joinNonEmpty(name, w.expr(value)), indent)
			}
		}
	}
}

// patternNames lists the identifiers bound by a declaration target.
func (w *componentWalker) patternNames(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{w.text(n)}
	case "array_pattern":
		var names []string
		for _, el := range namedChildren(n) {
			names = append(names, w.patternNames(el)...)
		}
		return names
	case "object_pattern":
		return w.paramNames(n)
	case "assignment_pattern":
		return w.patternNames(n.ChildByFieldName("left"))
	}
	return nil
}

func (w *componentWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

func isPascalCase(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// isFunctionExpression covers both names the grammar has used for function expressions.
func isFunctionExpression(n *sitter.Node) bool {
	switch n.Type() {
	case "arrow_function", "function_expression", "function":
		return true
	}
	return false
}

// opensScope reports whether n starts a new function or class scope.
func opensScope(n *sitter.Node) bool {
	switch n.Type() {
	case "arrow_function", "function_expression", "function", "function_declaration",
		"generator_function", "generator_function_declaration", "method_definition",
		"class", "class_declaration":
		return true
	}
	return false
}

// scopedNodes returns descendants of root of the given type, in document order,
// whose nearest enclosing function is the one owning root.
func scopedNodes(root *sitter.Node, nodeType string) []*sitter.Node {
	var out []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.Type() == nodeType {
			out = append(out, n)
		}
		for _, child := range namedChildren(n) {
			if opensScope(child) {
				continue
			}
			visit(child)
		}
	}
	visit(root)
	return out
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if children := namedChildren(n); len(children) > 0 {
		return children[0]
	}
	return nil
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
