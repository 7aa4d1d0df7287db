package walker

import "github.com/viant/pyinspect/cst"

// walkClass emits the class event, its base-class events, its docstring,
// and then recurses into its body with scope Class (spec.md §4.F).
// Grounded on processClassDefinition in the original parser source.
func (w *Walker) walkClass(n *cst.Node, objectsLevel int, entryLevel int) {
	if n.NChildren() < 2 {
		return
	}
	classKw := n.Children[0]
	nameNode := n.Children[1]
	colon := n.FindChildOfType(cst.COLON)

	objectsLevel++
	colonLine, colonCol := colonLineCol(colon)
	w.sink.OnClass(nameNode.Text, w.position(nameNode),
		classKw.Line, classKw.Col+1,
		colonLine, colonCol,
		objectsLevel)

	if list := n.FindChildOfType(cst.Arglist); list != nil {
		for _, child := range list.Children {
			if child.Type == cst.Argument {
				w.sink.OnBaseClass(serializeText(child, w.cfg.MaxExpressionLength))
			}
		}
	}

	suite := n.FindChildOfType(cst.Suite)
	if suite == nil {
		return
	}
	if doc := extractDocstring(suite, w.cfg); doc != nil {
		w.sink.OnDocstring(doc.Text, doc.StartLine, doc.EndLine)
	}

	w.walk(suite, objectsLevel, Class, "", entryLevel, false)
}

// colonLineCol returns the (line, 1-based column) pair for a possibly-nil
// colon node.
func colonLineCol(colon *cst.Node) (int, int) {
	if colon == nil {
		return 0, 0
	}
	return colon.Line, colon.Col + 1
}
