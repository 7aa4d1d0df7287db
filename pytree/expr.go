package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyinspect/cst"
)

// position reads a tree-sitter node's start point into the (line, col)
// convention cst.Node uses: 1-based line, 0-based column.
func position(n *sitter.Node) (line, col int) {
	pt := n.StartPoint()
	return int(pt.Row) + 1, int(pt.Column)
}

func (c *converter) leaf(t cst.Type, text string, n *sitter.Node) *cst.Node {
	line, col := position(n)
	return &cst.Node{Type: t, Text: text, Line: line, Col: col}
}

// opaque renders an arbitrary expression node as a single leaf carrying its
// verbatim source text. The walker never inspects the internal shape of a
// decorator argument, default value, or type annotation: it only
// re-serializes the fragment as a whole (spec.md §4.B), so one leaf with
// the full text is indistinguishable from a fully-expanded expression tree.
func (c *converter) opaque(n *sitter.Node) *cst.Node {
	return c.leaf(cst.NAME, n.Content(c.src), n)
}

// testOpaque wraps an arbitrary expression as a Test node, the shape
// FindChildOfType(cst.Test) callers expect for return/parameter
// annotations and default values.
func (c *converter) testOpaque(n *sitter.Node) *cst.Node {
	line, col := position(n)
	return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{c.opaque(n)}}
}

// argumentOpaque wraps an arbitrary expression as an Argument node, the
// shape OnBaseClass/OnDecoratorArgument callers expect.
func (c *converter) argumentOpaque(n *sitter.Node) *cst.Node {
	line, col := position(n)
	return &cst.Node{Type: cst.Argument, Line: line, Col: col, Children: []*cst.Node{c.opaque(n)}}
}

// flattenAttribute walks a chain of tree-sitter "attribute" nodes
// (a.b.c parses as attribute(attribute(a, b), c)) down to its non-attribute
// base, returning the base and the chain's attribute identifiers in
// left-to-right source order.
func flattenAttribute(n *sitter.Node) (base *sitter.Node, attrs []*sitter.Node) {
	if n.Type() != "attribute" {
		return n, nil
	}
	obj := n.ChildByFieldName("object")
	attr := n.ChildByFieldName("attribute")
	base, attrs = flattenAttribute(obj)
	attrs = append(attrs, attr)
	return base, attrs
}

// convertAssignTarget converts one assignment-target expression into the
// Test(Power(AtomExpr(Atom[, Trailer...]))) shape classifyAssignment and
// classifyInstanceMember expect (spec.md §4.H). A trailer present on the
// result marks the target a "use", not a declaration, exactly as the
// original parser's processAssign distinguishes them.
func (c *converter) convertAssignTarget(n *sitter.Node) *cst.Node {
	line, col := position(n)
	test := func(atomExpr *cst.Node) *cst.Node {
		power := &cst.Node{Type: cst.Power, Line: line, Col: col, Children: []*cst.Node{atomExpr}}
		return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{power}}
	}

	switch n.Type() {
	case "identifier":
		atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{c.leaf(cst.NAME, n.Content(c.src), n)}}
		return test(&cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom}})

	case "attribute":
		base, attrs := flattenAttribute(n)
		atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{c.leaf(cst.NAME, base.Content(c.src), base)}}
		children := []*cst.Node{atom}
		for _, attr := range attrs {
			dotLine, dotCol := position(attr)
			trailer := &cst.Node{Type: cst.Trailer, Line: dotLine, Col: dotCol, Children: []*cst.Node{
				c.leaf(cst.DOT, ".", attr),
				c.leaf(cst.NAME, attr.Content(c.src), attr),
			}}
			children = append(children, trailer)
		}
		return test(&cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: children})

	case "tuple_pattern", "list_pattern":
		open, close := cst.LPAR, cst.RPAR
		if n.Type() == "list_pattern" {
			open, close = cst.LSQB, cst.RSQB
		}
		inner := c.convertPatternElements(n)
		atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{
			c.leaf(open, "", n),
			inner,
			c.leaf(close, "", n),
		}}
		return test(&cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom}})

	default:
		// subscript, call, and anything else: not a name or a dotted
		// attribute, so give it an opaque non-dot trailer. Both
		// classifyAssignment and classifyInstanceMember treat any
		// trailer as "has a use", which is the correct classification
		// for these shapes (spec.md §4.H, §9 Open Question).
		atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{c.opaque(n)}}
		trailer := &cst.Node{Type: cst.Trailer, Line: line, Col: col, Children: []*cst.Node{
			c.leaf(cst.LSQB, "", n), c.leaf(cst.RSQB, "", n),
		}}
		return test(&cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom, trailer}})
	}
}

// convertPatternElements converts the named children of a tuple_pattern or
// list_pattern into a TestlistComp node, recursing through
// convertAssignTarget so nested unpacking is handled identically at every
// depth (spec.md §9 Open Question).
func (c *converter) convertPatternElements(n *sitter.Node) *cst.Node {
	line, col := position(n)
	out := &cst.Node{Type: cst.TestlistComp, Line: line, Col: col}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		el := n.NamedChild(i)
		out.Children = append(out.Children, c.convertAssignTarget(el))
		if i < count-1 {
			out.Children = append(out.Children, c.leaf(cst.COMMA, ",", el))
		}
	}
	return out
}

// convertAssignList converts an assignment's left-hand side into the
// TestlistStarExpr node isAssignment expects as the expr_stmt's first
// child. A bare "pattern_list" (a, b = ...) expands each comma-separated
// target at this level; anything else is a single-element list, and
// tuple/list-parenthesized targets recurse through convertAssignTarget.
func (c *converter) convertAssignList(n *sitter.Node) *cst.Node {
	line, col := position(n)
	out := &cst.Node{Type: cst.TestlistStarExpr, Line: line, Col: col}
	if n.Type() == "pattern_list" {
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			el := n.NamedChild(i)
			out.Children = append(out.Children, c.convertAssignTarget(el))
			if i < count-1 {
				out.Children = append(out.Children, c.leaf(cst.COMMA, ",", el))
			}
		}
		return out
	}
	out.Children = []*cst.Node{c.convertAssignTarget(n)}
	return out
}
