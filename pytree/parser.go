// Package pytree is the external parser collaborator: it turns Python
// source text into the cst.Node tree package walker consumes, using
// go-tree-sitter's Python grammar as the actual lexer/parser (spec.md §2
// component II). Nothing in package walker imports go-tree-sitter directly;
// this package is the only place tree-sitter's node-kind vocabulary is
// translated into the pgen-style grammar names cst.Type enumerates.
package pytree

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/viant/pyinspect/cst"
)

// Parser wraps a tree-sitter parser configured for Python. It is not safe
// for concurrent use; construct one per goroutine.
type Parser struct {
	inner *sitter.Parser
}

// NewParser returns a Parser ready to parse Python source.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{inner: p}
}

// Parse produces a cst.Node tree for src, or a structured ParseError if
// tree-sitter's error-recovery left an ERROR or MISSING node in the tree
// (spec.md §6). A best-effort tree is parsed either way; Parse only reports
// failure, it never returns both.
func (p *Parser) Parse(ctx context.Context, src []byte) (*cst.Node, *cst.ParseError) {
	tree, err := p.inner.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, &cst.ParseError{Code: cst.ErrUnknown, Line: 1, Column: 1, OffendingText: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if bad := firstErrorNode(root); bad != nil {
		pt := bad.StartPoint()
		return nil, &cst.ParseError{
			Code:          cst.ErrInvalidSyntax,
			Line:          int(pt.Row) + 1,
			Column:        int(pt.Column) + 1,
			OffendingText: bad.Content(src),
		}
	}

	c := &converter{src: src}
	return c.convertModule(root), nil
}

// firstErrorNode does a pre-order search for the first node tree-sitter
// could not fit into the grammar: an explicit ERROR node or a MISSING
// token it synthesized during error recovery.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
