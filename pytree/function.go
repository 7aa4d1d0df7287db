package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyinspect/cst"
)

// findToken returns the first direct (possibly anonymous) child whose type
// equals lit, used to locate punctuation and keyword tokens tree-sitter
// does not expose through a named field (e.g. "def", ":", "class").
func findToken(n *sitter.Node, lit string) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if ch := n.Child(i); ch.Type() == lit {
			return ch
		}
	}
	return nil
}

// convertFunction converts a function_definition node into Funcdef, or
// AsyncFuncdef wrapping it when the definition carries a leading "async"
// keyword (spec.md §4.E).
func (c *converter) convertFunction(n *sitter.Node) *cst.Node {
	line, col := position(n)
	isAsync := n.ChildCount() > 0 && n.Child(0).Type() == "async"

	defKw := findToken(n, "def")
	nameNode := n.ChildByFieldName("name")
	paramsNode := n.ChildByFieldName("parameters")
	returnType := n.ChildByFieldName("return_type")
	colonNode := findToken(n, ":")
	body := n.ChildByFieldName("body")

	children := []*cst.Node{
		c.leaf(cst.NAME, "def", defKw),
		c.leaf(cst.NAME, nameNode.Content(c.src), nameNode),
	}
	if paramsNode != nil {
		children = append(children, c.convertParameters(paramsNode))
	}
	if returnType != nil {
		children = append(children, c.testOpaque(returnType))
	}
	if colonNode != nil {
		children = append(children, c.leaf(cst.COLON, ":", colonNode))
	}
	if body != nil {
		children = append(children, c.convertSuite(body))
	}

	funcdef := &cst.Node{Type: cst.Funcdef, Line: line, Col: col, Children: children}
	if !isAsync {
		return funcdef
	}
	asyncLeaf := c.leaf(cst.KeywordAsync, "async", n.Child(0))
	return &cst.Node{Type: cst.AsyncFuncdef, Line: line, Col: col, Children: []*cst.Node{asyncLeaf, funcdef}}
}

// convertParameters converts a tree-sitter "parameters" node into
// Parameters(Typedargslist(...)), the shape walkParameters descends
// (spec.md §4.E).
func (c *converter) convertParameters(n *sitter.Node) *cst.Node {
	line, col := position(n)
	argList := &cst.Node{Type: cst.Typedargslist, Line: line, Col: col}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		argList.Children = append(argList.Children, c.convertParameter(n.NamedChild(i))...)
	}
	return &cst.Node{Type: cst.Parameters, Line: line, Col: col, Children: []*cst.Node{argList}}
}

// convertParameter converts one formal parameter into the Tfpdef/STAR/
// DOUBLESTAR/Test sequence walkParameters expects (spec.md §4.E).
func (c *converter) convertParameter(p *sitter.Node) []*cst.Node {
	switch p.Type() {
	case "identifier":
		return []*cst.Node{c.tfpdef(p, nil)}
	case "typed_parameter":
		base := p.NamedChild(0)
		return c.splatOrPlain(base, p.ChildByFieldName("type"))
	case "default_parameter":
		name := p.ChildByFieldName("name")
		value := p.ChildByFieldName("value")
		return []*cst.Node{c.tfpdef(name, nil), c.testOpaque(value)}
	case "typed_default_parameter":
		name := p.ChildByFieldName("name")
		typ := p.ChildByFieldName("type")
		value := p.ChildByFieldName("value")
		return []*cst.Node{c.tfpdef(name, typ), c.testOpaque(value)}
	case "list_splat_pattern", "dictionary_splat_pattern":
		return c.splatOrPlain(p, nil)
	case "keyword_separator":
		// A bare "*" with no name, marking everything after it keyword-only
		// (PEP 3102). Tagged with its own type rather than STAR so the
		// walker never has to guess, from mere adjacency to the next
		// Tfpdef, whether a STAR is this separator or the start of *args —
		// tree-sitter's parameter list flattens both to plain siblings with
		// no comma token surviving the conversion.
		return []*cst.Node{c.leaf(cst.KeywordOnlySep, "*", p)}
	default: // positional_separator ("/") carries no reportable name
		return nil
	}
}

// splatOrPlain expands *args / **kwargs (optionally annotated) or a plain
// parameter into the sequence walkParameters' loop recognizes: STAR or
// DOUBLESTAR immediately followed by a Tfpdef.
func (c *converter) splatOrPlain(base *sitter.Node, annotation *sitter.Node) []*cst.Node {
	switch base.Type() {
	case "list_splat_pattern":
		inner := base.NamedChild(0)
		return []*cst.Node{c.leaf(cst.STAR, "*", base), c.tfpdef(inner, annotation)}
	case "dictionary_splat_pattern":
		inner := base.NamedChild(0)
		return []*cst.Node{c.leaf(cst.DOUBLESTAR, "**", base), c.tfpdef(inner, annotation)}
	default:
		return []*cst.Node{c.tfpdef(base, annotation)}
	}
}

func (c *converter) tfpdef(nameNode *sitter.Node, annotation *sitter.Node) *cst.Node {
	line, col := position(nameNode)
	children := []*cst.Node{c.leaf(cst.NAME, nameNode.Content(c.src), nameNode)}
	if annotation != nil {
		children = append(children, c.testOpaque(annotation))
	}
	return &cst.Node{Type: cst.Tfpdef, Line: line, Col: col, Children: children}
}
