package pytree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyinspect/cst"
)

// convertClass converts a class_definition node into Classdef with its
// base-class argument list and body suite (spec.md §4.F). Keyword bases
// such as "metaclass=Meta" pass through convertArglist like any other
// argument: OnBaseClass reports the whole "metaclass=Meta" text, there is
// no separate event for keyword bases.
func (c *converter) convertClass(n *sitter.Node) *cst.Node {
	line, col := position(n)
	classKw := findToken(n, "class")
	nameNode := n.ChildByFieldName("name")
	superclasses := n.ChildByFieldName("superclasses")
	colonNode := findToken(n, ":")
	body := n.ChildByFieldName("body")

	children := []*cst.Node{
		c.leaf(cst.NAME, "class", classKw),
		c.leaf(cst.NAME, nameNode.Content(c.src), nameNode),
	}
	if superclasses != nil {
		children = append(children, c.convertArglist(superclasses))
	}
	if colonNode != nil {
		children = append(children, c.leaf(cst.COLON, ":", colonNode))
	}
	if body != nil {
		children = append(children, c.convertSuite(body))
	}
	return &cst.Node{Type: cst.Classdef, Line: line, Col: col, Children: children}
}
