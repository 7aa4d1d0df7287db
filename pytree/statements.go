package pytree

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyinspect/cst"
)

// converter holds the one piece of state a conversion pass needs: the
// source bytes tree-sitter nodes index into.
type converter struct {
	src []byte
}

// encodingScanRE mirrors the walker's own PEP 263 pattern (spec.md §6
// Encoding, SPEC_FULL §5.3); both sides recognize the same textual
// convention independently, the way a lexer and a parser each have their
// own notion of "looks like a coding comment" in the original source.
var encodingScanRE = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

// convertModule converts the tree-sitter root ("module") node into the
// walker's entry point. If either of the first two physical lines matches
// the PEP 263 "coding[:=] name" pattern (a leading '#' is not required),
// the root is typed EncodingDecl with Text set to the matched fragment so
// the walker's own regex can re-extract the codec name
// (spec.md §6 Encoding); otherwise it is typed FileInput. Either way the
// children are the same converted statement list.
func (c *converter) convertModule(root *sitter.Node) *cst.Node {
	children := c.convertBlockChildren(root)

	rootType := cst.FileInput
	text := ""
	for _, line := range firstLines(c.src, 2) {
		if m := encodingScanRE.FindString(line); m != "" {
			rootType = cst.EncodingDecl
			text = m
			break
		}
	}

	return &cst.Node{Type: rootType, Text: text, Line: 1, Col: 0, Children: children}
}

func firstLines(src []byte, n int) []string {
	var out []string
	start := 0
	for i := 0; i < len(src) && len(out) < n; i++ {
		if src[i] == '\n' {
			out = append(out, string(src[start:i]))
			start = i + 1
		}
	}
	if len(out) < n && start < len(src) {
		out = append(out, string(src[start:]))
	}
	return out
}

// convertSuite converts a tree-sitter "block" node into a cst.Suite,
// synthesizing the leading NEWLINE/INDENT tokens extractDocstring skips
// past (spec.md §4.C).
func (c *converter) convertSuite(block *sitter.Node) *cst.Node {
	line, col := position(block)
	suite := &cst.Node{Type: cst.Suite, Line: line, Col: col}
	suite.Children = append(suite.Children, c.leaf(cst.NEWLINE, "", block), c.leaf(cst.INDENT, "", block))
	suite.Children = append(suite.Children, c.convertBlockChildren(block)...)
	suite.Children = append(suite.Children, c.leaf(cst.DEDENT, "", block))
	return suite
}

// convertBlockChildren converts every named statement child of a module or
// block node, skipping comments (tree-sitter surfaces "comment" as a named
// sibling; the walker's grammar has no node for them at all).
func (c *converter) convertBlockChildren(parent *sitter.Node) []*cst.Node {
	var out []*cst.Node
	count := int(parent.NamedChildCount())
	for i := 0; i < count; i++ {
		n := parent.NamedChild(i)
		if n.Type() == "comment" {
			continue
		}
		out = append(out, c.convertStatement(n)...)
	}
	return out
}

// convertStatement converts one statement-level tree-sitter node. It
// returns a slice because a decorated_definition expands into two
// consecutive siblings (Decorators, then Funcdef/Classdef) the way
// walker.walk's generic loop expects (spec.md §4.G).
func (c *converter) convertStatement(n *sitter.Node) []*cst.Node {
	switch n.Type() {
	case "decorated_definition":
		var decoratorNodes []*cst.Node
		var def *sitter.Node
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			child := n.NamedChild(i)
			if child.Type() == "decorator" {
				decoratorNodes = append(decoratorNodes, c.convertDecorator(child))
				continue
			}
			def = child
		}
		line, col := position(n)
		out := []*cst.Node{{Type: cst.Decorators, Line: line, Col: col, Children: decoratorNodes}}
		if def != nil {
			out = append(out, c.convertStatement(def)...)
		}
		return out

	case "function_definition":
		return []*cst.Node{c.convertFunction(n)}

	case "class_definition":
		return []*cst.Node{c.convertClass(n)}

	case "import_statement":
		return []*cst.Node{c.wrapSimple(c.wrapImportStmt(c.convertImportName(n)))}

	case "import_from_statement":
		return []*cst.Node{c.wrapSimple(c.wrapImportStmt(c.convertImportFrom(n)))}

	case "expression_statement":
		return []*cst.Node{c.wrapSimple(c.convertExpressionStatement(n))}

	default:
		compound := c.convertGenericSmall(n)
		if isCompoundStmtType(n.Type()) {
			return []*cst.Node{compound}
		}
		return []*cst.Node{c.wrapSimple(compound)}
	}
}

// wrapImportStmt wraps an ImportName or ImportFrom node in the ImportStmt
// wrapper walk()'s switch dispatches to walkImport on (spec.md §4.D).
func (c *converter) wrapImportStmt(inner *cst.Node) *cst.Node {
	return &cst.Node{Type: cst.ImportStmt, Line: inner.Line, Col: inner.Col, Children: []*cst.Node{inner}}
}

// wrapSimple wraps a small_stmt-shaped node in the Stmt -> SimpleStmt ->
// SmallStmt spine isAssignment and extractDocstring both descend through
// (spec.md §4.H, §4.C).
func (c *converter) wrapSimple(small *cst.Node) *cst.Node {
	line, col := small.Line, small.Col
	smallStmt := &cst.Node{Type: cst.SmallStmt, Line: line, Col: col, Children: []*cst.Node{small}}
	simpleStmt := &cst.Node{Type: cst.SimpleStmt, Line: line, Col: col, Children: []*cst.Node{smallStmt}}
	return &cst.Node{Type: cst.Stmt, Line: line, Col: col, Children: []*cst.Node{simpleStmt}}
}

// convertExpressionStatement dispatches on the grammar shape
// expression_statement actually wraps: an assignment, an augmented
// assignment (deliberately not recognized as a declaration, spec.md §4.H),
// or a bare expression (the shape a module/class/function docstring takes).
func (c *converter) convertExpressionStatement(n *sitter.Node) *cst.Node {
	line, col := position(n)
	if n.NamedChildCount() == 0 {
		return c.leaf(cst.ExprStmt, "", n)
	}
	inner := n.NamedChild(0)
	switch inner.Type() {
	case "assignment":
		left := inner.ChildByFieldName("left")
		right := inner.ChildByFieldName("right")
		list := c.convertAssignList(left)
		children := []*cst.Node{list, c.leaf(cst.EQUAL, "=", inner)}
		if right != nil {
			children = append(children, c.testOpaque(right))
		}
		return &cst.Node{Type: cst.ExprStmt, Line: line, Col: col, Children: children}
	case "augmented_assignment":
		// Never shaped like TestlistStarExpr + EQUAL, so isAssignment
		// never matches it: augmented assignment is not a declaration
		// (spec.md §4.H).
		return c.leaf(cst.ExprStmt, inner.Content(c.src), inner)
	default:
		testlist := &cst.Node{Type: cst.TestlistStarExpr, Line: line, Col: col, Children: []*cst.Node{c.exprAsTest(inner)}}
		return &cst.Node{Type: cst.ExprStmt, Line: line, Col: col, Children: []*cst.Node{testlist}}
	}
}

// exprAsTest converts an arbitrary expression (used for bare expression
// statements, chiefly string-literal docstrings) into the Test(Power(
// AtomExpr(Atom(...)))) spine extractDocstring's SkipToNode(_, cst.Atom)
// descends through.
func (c *converter) exprAsTest(n *sitter.Node) *cst.Node {
	line, col := position(n)
	atom := c.convertAtomExpr(n)
	power := &cst.Node{Type: cst.Power, Line: line, Col: col, Children: []*cst.Node{atom}}
	return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{power}}
}

// convertAtomExpr builds the AtomExpr(Atom) shape for a single expression.
// String and concatenated-string literals get a proper Atom of STRING leaves
// (spec.md §4.C docstring extraction); everything else collapses to one
// opaque leaf, since nothing but the docstring path ever looks inside a
// bare-expression statement's Atom.
func (c *converter) convertAtomExpr(n *sitter.Node) *cst.Node {
	line, col := position(n)
	var atom *cst.Node
	switch n.Type() {
	case "string":
		atom = &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{c.leaf(cst.STRING, n.Content(c.src), n)}}
	case "concatenated_string":
		atom = &cst.Node{Type: cst.Atom, Line: line, Col: col}
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			part := n.NamedChild(i)
			atom.Children = append(atom.Children, c.leaf(cst.STRING, part.Content(c.src), part))
		}
	default:
		atom = &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{c.opaque(n)}}
	}
	return &cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom}}
}

// convertGenericSmall handles the remaining small_stmt shapes (pass,
// return, raise, assert, global, nonlocal, del, break, continue, a
// compound statement like if/while/for/try/with) uniformly: its own
// internal shape is never inspected by the walker, only whether it carries
// a nested "block" that might itself declare a class or function. A
// compound statement's blocks are converted and kept reachable as children
// so the walker's generic per-child recursion still finds nested
// definitions inside if/while/for/try/with bodies.
func (c *converter) convertGenericSmall(n *sitter.Node) *cst.Node {
	line, col := position(n)
	kind, ok := compoundStmtTypes[n.Type()]
	if !ok {
		kind = cst.Unknown
	}
	out := &cst.Node{Type: kind, Line: line, Col: col}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() == "block" {
			out.Children = append(out.Children, c.convertSuite(child))
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		// Nested compound clauses (elif_clause, else_clause,
		// except_clause, finally_clause, with_clause) recurse the
		// same way; everything else is an expression we don't need
		// structurally, so it is flattened to an opaque leaf.
		if isStatementNode(child.Type()) {
			out.Children = append(out.Children, c.convertGenericSmall(child))
		} else {
			out.Children = append(out.Children, c.opaque(child))
		}
	}
	return out
}

var compoundStmtTypes = map[string]cst.Type{
	"if_statement":       cst.IfStmt,
	"elif_clause":        cst.IfStmt,
	"else_clause":        cst.IfStmt,
	"while_statement":    cst.WhileStmt,
	"for_statement":      cst.ForStmt,
	"try_statement":      cst.TryStmt,
	"except_clause":      cst.ExceptClause,
	"finally_clause":     cst.TryStmt,
	"with_statement":     cst.WithStmt,
	"with_clause":        cst.WithItem,
	"with_item":          cst.WithItem,
	"global_statement":   cst.GlobalStmt,
	"nonlocal_statement": cst.NonlocalStmt,
	"assert_statement":   cst.AssertStmt,
	"return_statement":   cst.ReturnStmt,
	"raise_statement":    cst.RaiseStmt,
	"pass_statement":     cst.PassStmt,
	"break_statement":    cst.BreakStmt,
	"continue_statement": cst.ContinueStmt,
	"delete_statement":   cst.DelStmt,
	"match_statement":    cst.Unknown,
	"case_clause":        cst.Unknown,
}

func isStatementNode(t string) bool {
	_, ok := compoundStmtTypes[t]
	return ok
}

var topLevelCompound = map[string]bool{
	"if_statement": true, "while_statement": true, "for_statement": true,
	"try_statement": true, "with_statement": true, "match_statement": true,
}

// isCompoundStmtType reports whether t is a top-level compound statement
// (one with its own body block), which is never wrapped in the
// SimpleStmt/SmallStmt spine isAssignment descends through.
func isCompoundStmtType(t string) bool {
	return topLevelCompound[t]
}

// convertImportName converts "import a.b.c as d, e.f" (spec.md §4.D).
func (c *converter) convertImportName(n *sitter.Node) *cst.Node {
	line, col := position(n)
	asNames := &cst.Node{Type: cst.DottedAsNames, Line: line, Col: col}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		item := n.NamedChild(i)
		asNames.Children = append(asNames.Children, c.convertDottedAsName(item))
	}
	return &cst.Node{Type: cst.ImportName, Line: line, Col: col, Children: []*cst.Node{asNames}}
}

func (c *converter) convertDottedAsName(item *sitter.Node) *cst.Node {
	line, col := position(item)
	switch item.Type() {
	case "aliased_import":
		dotted := item.ChildByFieldName("name")
		alias := item.ChildByFieldName("alias")
		return &cst.Node{Type: cst.DottedAsName, Line: line, Col: col, Children: []*cst.Node{
			c.convertDottedName(dotted),
			c.leaf(cst.NAME, "as", item),
			c.leaf(cst.NAME, alias.Content(c.src), alias),
		}}
	default: // dotted_name or identifier
		return &cst.Node{Type: cst.DottedAsName, Line: line, Col: col, Children: []*cst.Node{c.convertDottedName(item)}}
	}
}

func (c *converter) convertDottedName(n *sitter.Node) *cst.Node {
	line, col := position(n)
	out := &cst.Node{Type: cst.DottedName, Line: line, Col: col}
	if n.Type() != "dotted_name" {
		out.Children = []*cst.Node{c.leaf(cst.NAME, n.Content(c.src), n)}
		return out
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		part := n.NamedChild(i)
		out.Children = append(out.Children, c.leaf(cst.NAME, part.Content(c.src), part))
	}
	return out
}

// convertImportFrom converts "from ..pkg import a as b, c, *" (spec.md
// §4.D).
func (c *converter) convertImportFrom(n *sitter.Node) *cst.Node {
	line, col := position(n)
	out := &cst.Node{Type: cst.ImportFrom, Line: line, Col: col}

	moduleName := n.ChildByFieldName("module_name")
	if moduleName != nil {
		switch moduleName.Type() {
		case "relative_import":
			count := int(moduleName.NamedChildCount())
			for i := 0; i < count; i++ {
				part := moduleName.NamedChild(i)
				if part.Type() == "import_prefix" {
					out.Children = append(out.Children, c.convertImportPrefix(part)...)
				} else {
					out.Children = append(out.Children, c.convertDottedName(part))
				}
			}
		case "import_prefix":
			out.Children = append(out.Children, c.convertImportPrefix(moduleName)...)
		default:
			out.Children = append(out.Children, c.convertDottedName(moduleName))
		}
	}

	names := &cst.Node{Type: cst.ImportAsNames, Line: line, Col: col}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		item := n.NamedChild(i)
		if moduleName != nil && item.StartByte() == moduleName.StartByte() && item.EndByte() == moduleName.EndByte() {
			continue
		}
		switch item.Type() {
		case "wildcard_import":
			names.Children = append(names.Children, &cst.Node{Type: cst.ImportAsName, Line: line, Col: col, Children: []*cst.Node{
				c.leaf(cst.STAR, "*", item),
			}})
		case "aliased_import":
			nameNode := item.ChildByFieldName("name")
			alias := item.ChildByFieldName("alias")
			names.Children = append(names.Children, &cst.Node{Type: cst.ImportAsName, Children: []*cst.Node{
				c.leaf(cst.NAME, nameNode.Content(c.src), nameNode),
				c.leaf(cst.NAME, "as", item),
				c.leaf(cst.NAME, alias.Content(c.src), alias),
			}})
		case "dotted_name", "identifier":
			names.Children = append(names.Children, &cst.Node{Type: cst.ImportAsName, Children: []*cst.Node{
				c.leaf(cst.NAME, item.Content(c.src), item),
			}})
		}
	}
	out.Children = append(out.Children, names)
	return out
}

// convertImportPrefix turns a run of leading dots/ellipses in a relative
// import into the DOT/ELLIPSIS leaves walkImportFrom accumulates.
func (c *converter) convertImportPrefix(n *sitter.Node) []*cst.Node {
	text := n.Content(c.src)
	var out []*cst.Node
	for i := 0; i < len(text); i++ {
		if i+2 < len(text) && text[i:i+3] == "..." {
			out = append(out, c.leaf(cst.ELLIPSIS, "...", n))
			i += 2
			continue
		}
		if text[i] == '.' {
			out = append(out, c.leaf(cst.DOT, ".", n))
		}
	}
	return out
}

func (c *converter) convertDecorator(n *sitter.Node) *cst.Node {
	line, col := position(n)
	count := int(n.NamedChildCount())
	if count == 0 {
		return &cst.Node{Type: cst.Decorator, Line: line, Col: col}
	}
	expr := n.NamedChild(0)
	if expr.Type() == "identifier" || expr.Type() == "dotted_name" || expr.Type() == "attribute" {
		// classic grammar: '@' dotted_name NEWLINE (no call)
		dotted := c.flattenDottedExpression(expr)
		return &cst.Node{Type: cst.Decorator, Line: line, Col: col, Children: []*cst.Node{dotted}}
	}
	if expr.Type() == "call" {
		fn := expr.ChildByFieldName("function")
		args := expr.ChildByFieldName("arguments")
		dotted := c.flattenDottedExpression(fn)
		children := []*cst.Node{dotted}
		if args != nil {
			if args.NamedChildCount() == 0 {
				children = append(children, c.leaf(cst.LPAR, "(", args))
			} else {
				children = append(children, c.convertArglist(args))
			}
		}
		return &cst.Node{Type: cst.Decorator, Line: line, Col: col, Children: children}
	}
	// 3.9+ arbitrary-expression decorator, modeled through the AtomExpr
	// branch walkDecorator falls back to.
	atomExpr := c.convertAtomExpr(expr)
	return &cst.Node{Type: cst.Decorator, Line: line, Col: col, Children: []*cst.Node{atomExpr}}
}

// flattenDottedExpression renders an identifier/attribute chain as a
// DottedName node, the shape walkDecorator's classic-grammar branch expects.
func (c *converter) flattenDottedExpression(n *sitter.Node) *cst.Node {
	line, col := position(n)
	base, attrs := flattenAttribute(n)
	out := &cst.Node{Type: cst.DottedName, Line: line, Col: col, Children: []*cst.Node{
		c.leaf(cst.NAME, base.Content(c.src), base),
	}}
	for _, a := range attrs {
		out.Children = append(out.Children, c.leaf(cst.NAME, a.Content(c.src), a))
	}
	return out
}

func (c *converter) convertArglist(args *sitter.Node) *cst.Node {
	line, col := position(args)
	out := &cst.Node{Type: cst.Arglist, Line: line, Col: col}
	count := int(args.NamedChildCount())
	for i := 0; i < count; i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "keyword_argument" {
			name := arg.ChildByFieldName("name")
			value := arg.ChildByFieldName("value")
			text := name.Content(c.src) + "=" + value.Content(c.src)
			out.Children = append(out.Children, &cst.Node{Type: cst.Argument, Line: line, Col: col, Children: []*cst.Node{c.leaf(cst.NAME, text, arg)}})
			continue
		}
		out.Children = append(out.Children, c.argumentOpaque(arg))
	}
	return out
}
