package walker

import (
	"github.com/viant/pyinspect/cst"
	"github.com/viant/pyinspect/events"
)

// isAssignment returns the expr_stmt node if stmt's spine reduces to
// simple_stmt → small_stmt → expr_stmt → testlist_star_expr '=' ..., or nil
// otherwise (spec.md §4.H). Only a single '=' is recognized: augmented
// assignment ("+=" and friends) never matches, mirroring isAssignment in the
// original parser source.
func isAssignment(stmt *cst.Node) *cst.Node {
	if stmt.NChildren() < 1 {
		return nil
	}
	n := stmt.Children[0]
	if n.Type != cst.SimpleStmt || n.NChildren() < 1 {
		return nil
	}
	n = n.Children[0]
	if n.Type != cst.SmallStmt || n.NChildren() < 1 {
		return nil
	}
	n = n.Children[0]
	if n.Type != cst.ExprStmt || n.NChildren() < 2 {
		return nil
	}
	if n.Children[0].Type != cst.TestlistStarExpr || n.Children[1].Type != cst.EQUAL {
		return nil
	}
	return n
}

func isTestElement(t cst.Type) bool {
	return t == cst.Test || t == cst.NamedexprTest
}

// classifyAssignment walks each element of an LHS testlist (or a nested
// tuple/list-unpack target) and emits through report for every element that
// is a plain name — not a use (spec.md §4.H, §9 Open Question: the
// "no trailer" rule is applied recursively at every nesting level).
//
// Grounded on processAssign in the original parser source.
func (w *Walker) classifyAssignment(list *cst.Node, objectsLevel int, report func(name string, pos events.Position, level int)) {
	for _, el := range list.Children {
		if !isTestElement(el.Type) {
			continue
		}

		power := cst.SkipToNode(el, cst.Power)
		atom := cst.SkipToNode(power, cst.Atom)
		if atom == nil {
			continue
		}

		if atomExpr := power.FindChildOfType(cst.AtomExpr); atomExpr != nil {
			if atomExpr.FindChildOfType(cst.Trailer) != nil {
				continue // has a trailer: this is a use, not a declaration
			}
		}

		if atom.NChildren() > 0 && (atom.Children[0].Type == cst.LPAR || atom.Children[0].Type == cst.LSQB) {
			if inner := atom.FindChildOfType(cst.TestlistComp); inner != nil {
				w.classifyAssignment(inner, objectsLevel, report)
			}
			continue
		}

		name := serializeText(atom, w.cfg.MaxExpressionLength)
		report(name, w.position(atom), objectsLevel)
	}
}

// classifyInstanceMember recognizes "P.name = ..." where P equals
// firstArgName, the method's first formal parameter (spec.md invariant 6,
// §4.H "Instance-attribute detection"). Nested tuple/list-unpack targets
// are recursed into identically. Grounded on processInstanceMember.
func (w *Walker) classifyInstanceMember(list *cst.Node, firstArgName string, objectsLevel int) {
	if firstArgName == "" {
		return
	}
	for _, el := range list.Children {
		if !isTestElement(el.Type) {
			continue
		}

		power := cst.SkipToNode(el, cst.Power)
		atom := cst.SkipToNode(power, cst.Atom)
		if atom == nil {
			continue
		}

		if atom.NChildren() > 0 && (atom.Children[0].Type == cst.LPAR || atom.Children[0].Type == cst.LSQB) {
			if inner := atom.FindChildOfType(cst.TestlistComp); inner != nil {
				w.classifyInstanceMember(inner, firstArgName, objectsLevel)
			}
			continue
		}

		atomExpr := power.FindChildOfType(cst.AtomExpr)
		if atomExpr == nil {
			continue
		}

		var trailer *cst.Node
		trailerCount := 0
		for _, c := range atomExpr.Children {
			if c.Type == cst.Trailer {
				trailerCount++
				trailer = c
			}
		}
		if trailerCount != 1 || trailer.NChildren() != 2 {
			continue
		}
		if trailer.Children[0].Type != cst.DOT || trailer.Children[1].Type != cst.NAME {
			continue
		}

		name := serializeText(atom, w.cfg.MaxExpressionLength)
		if name != firstArgName {
			continue
		}

		nameNode := trailer.Children[1]
		w.sink.OnInstanceAttribute(nameNode.Text, w.position(nameNode), objectsLevel)
	}
}
