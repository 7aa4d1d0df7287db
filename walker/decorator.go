package walker

import "github.com/viant/pyinspect/cst"

// findDecoratorArgsNode returns the arglist of an @decor(...) call found in
// atomExpr's last trailer, the LPAR token for the zero-argument @decor()
// shape, or nil if the decorator expression carries no call at all. Used
// for the "arbitrary decorator expression" grammar shape (spec.md §9).
func findDecoratorArgsNode(atomExpr *cst.Node) *cst.Node {
	n := atomExpr.NChildren()
	if n == 0 {
		return nil
	}
	last := atomExpr.Children[n-1]
	if last.Type != cst.Trailer || last.NChildren() < 2 {
		return nil
	}
	if last.Children[0].Type != cst.LPAR {
		return nil
	}
	if last.Children[1].Type == cst.RPAR {
		return last.Children[0]
	}
	if last.Children[1].Type != cst.Arglist {
		return nil
	}
	return last.Children[1]
}

// walkDecorators processes every decorator child of a decorators node and
// returns true iff any of them is @staticmethod (spec.md §4.G).
func (w *Walker) walkDecorators(decorators *cst.Node) bool {
	static := false
	for _, child := range decorators.Children {
		if child.Type != cst.Decorator {
			continue
		}
		if w.walkDecorator(child) {
			static = true
		}
	}
	return static
}

// walkDecorator emits the decorator event and its argument events, and
// reports whether it resolves to @staticmethod (spec.md §4.G).
func (w *Walker) walkDecorator(decorator *cst.Node) bool {
	var nameNode *cst.Node
	var name string
	var argsNode *cst.Node

	if dotted := decorator.FindChildOfType(cst.DottedName); dotted != nil {
		// classic grammar: '@' dotted_name ['(' [arglist] ')'] NEWLINE
		nameNode = dotted
		name = dottedName(dotted, w.cfg.MaxDottedNameLength)
		argsNode = decorator.FindChildOfType(cst.Arglist)
		if argsNode == nil {
			argsNode = decorator.FindChildOfType(cst.LPAR)
		}
	} else if atomExpr := cst.SkipToNode(decorator, cst.AtomExpr); atomExpr != nil {
		// 3.9+ grammar: '@' namedexpr_test NEWLINE, where namedexpr_test
		// may carry an arbitrary expression ending in a call trailer.
		nameNode = atomExpr
		argsNode = findDecoratorArgsNode(atomExpr)
		limit := atomExpr.NChildren()
		if argsNode != nil {
			limit--
		}
		name = serializeChildren(atomExpr.Children[:limit], w.cfg.MaxDottedNameLength)
	} else {
		return false
	}

	w.sink.OnDecorator(name, w.position(nameNode))

	if argsNode != nil {
		if argsNode.Type == cst.LPAR {
			w.sink.OnDecoratorArgument("")
		} else {
			for _, child := range argsNode.Children {
				if child.Type == cst.Argument {
					w.sink.OnDecoratorArgument(serializeText(child, w.cfg.MaxExpressionLength))
				}
			}
		}
	}

	return name == "staticmethod"
}

// serializeChildren re-serializes a run of sibling nodes as a single
// fragment, used to build the decorator name prefix when the call trailer
// must be split off it (spec.md §9).
func serializeChildren(nodes []*cst.Node, maxLen int) string {
	wrapper := &cst.Node{Children: nodes}
	return serializeText(wrapper, maxLen)
}
