package walker

import "github.com/viant/pyinspect/cst"

// walkFunction emits the function event, its argument and argument-value
// events, its docstring, and then recurses into its body with the scope
// implied by (scope, isStaticMethod) (spec.md §4.E). Grounded on
// processFuncDefinition in the original parser source.
func (w *Walker) walkFunction(n *cst.Node, objectsLevel int, scope Scope, entryLevel int, isStaticMethod bool, isAsync bool) {
	if n.NChildren() < 2 {
		return
	}
	defKw := n.Children[0]
	nameNode := n.Children[1]
	colon := n.FindChildOfType(cst.COLON)
	colonLine, colonCol := colonLineCol(colon)

	returnAnnotation := ""
	if annot := n.FindChildOfType(cst.Test); annot != nil {
		returnAnnotation = serializeText(annot, w.cfg.MaxExpressionLength)
	}

	objectsLevel++
	w.sink.OnFunction(nameNode.Text, w.position(nameNode),
		defKw.Line, defKw.Col+1,
		colonLine, colonCol,
		objectsLevel, isAsync, returnAnnotation)

	firstArgName := w.walkParameters(n)

	suite := n.FindChildOfType(cst.Suite)
	if suite == nil {
		return
	}
	if doc := extractDocstring(suite, w.cfg); doc != nil {
		w.sink.OnDocstring(doc.Text, doc.StartLine, doc.EndLine)
	}

	newScope := Function
	if scope == Class {
		if isStaticMethod {
			newScope = ClassStaticMethod
		} else {
			newScope = ClassMethod
		}
	}

	w.walk(suite, objectsLevel, newScope, firstArgName, entryLevel, false)
}

// walkParameters emits argument and argument-value events in declaration
// order and returns the first formal parameter's name, threaded to the body
// recursion for instance-attribute detection (spec.md §4.E).
func (w *Walker) walkParameters(funcdef *cst.Node) string {
	params := funcdef.FindChildOfType(cst.Parameters)
	if params == nil {
		return ""
	}
	argList := params.FindChildOfType(cst.Typedargslist)
	if argList == nil {
		return ""
	}

	firstArgName := ""
	first := true

	children := argList.Children
	for i := 0; i < len(children); i++ {
		child := children[i]
		switch child.Type {
		case cst.Tfpdef:
			name := w.emitArgument(child)
			if first {
				firstArgName = name
				first = false
			}
		case cst.KeywordOnlySep:
			// A lone "*" separator, never absorbing a sibling Tfpdef: that
			// would misreport the next ordinary keyword-only parameter as
			// this separator's name (def f(a, *, b): pass has no relation
			// between the "*" and "b" beyond adjacency in the flattened
			// list).
			first = false
			w.sink.OnArgument("*", "")
		case cst.STAR:
			// *args: pytree always builds this as an inseparable
			// STAR+Tfpdef pair (see splatOrPlain), so the lookahead here is
			// unambiguous.
			first = false
			name := "*"
			annotation := ""
			if i+1 < len(children) && children[i+1].Type == cst.Tfpdef {
				i++
				tfpdef := children[i]
				nameChild := tfpdef.Children[0]
				name = "*" + nameChild.Text
				if annot := tfpdef.FindChildOfType(cst.Test); annot != nil {
					annotation = serializeText(annot, w.cfg.MaxExpressionLength)
				}
			}
			w.sink.OnArgument(name, annotation)
		case cst.DOUBLESTAR:
			i++
			if i >= len(children) {
				break
			}
			tfpdef := children[i]
			nameChild := tfpdef.Children[0]
			name := "**" + nameChild.Text
			annotation := ""
			if annot := tfpdef.FindChildOfType(cst.Test); annot != nil {
				annotation = serializeText(annot, w.cfg.MaxExpressionLength)
			}
			w.sink.OnArgument(name, annotation)
		case cst.Test:
			w.sink.OnArgumentValue(serializeText(child, w.cfg.MaxExpressionLength))
		}
	}
	return firstArgName
}

// emitArgument emits an argument event for a single tfpdef node and returns
// its parameter name (spec.md §4.E, processArgument in the original
// source).
func (w *Walker) emitArgument(tfpdef *cst.Node) string {
	if tfpdef.NChildren() == 0 {
		return ""
	}
	nameNode := tfpdef.Children[0]
	annotation := ""
	if annot := tfpdef.FindChildOfType(cst.Test); annot != nil {
		annotation = serializeText(annot, w.cfg.MaxExpressionLength)
	}
	w.sink.OnArgument(nameNode.Text, annotation)
	return nameNode.Text
}
