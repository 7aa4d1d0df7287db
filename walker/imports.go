package walker

import (
	"strings"

	"github.com/viant/pyinspect/cst"
)

// dottedName concatenates the NAME children of a dotted_name node with ".",
// grounded on getDottedName in the original parser source.
func dottedName(n *cst.Node, maxLen int) string {
	var parts []string
	for _, c := range n.Children {
		if c.Type == cst.NAME {
			parts = append(parts, c.Text)
		}
	}
	s := strings.Join(parts, ".")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// walkImport emits events for an import_stmt's single child, either
// import_name or import_from (spec.md §4.D).
func (w *Walker) walkImport(stmt *cst.Node) {
	if stmt.NChildren() < 1 {
		return
	}
	inner := stmt.Children[0]
	switch inner.Type {
	case cst.ImportFrom:
		w.walkImportFrom(inner)
	case cst.ImportName:
		w.walkImportName(inner)
	}
}

// walkImportName handles "import a.b.c as d, e.f" (spec.md §4.D, first shape).
func (w *Walker) walkImportName(importName *cst.Node) {
	asNames := importName.FindChildOfType(cst.DottedAsNames)
	if asNames == nil {
		return
	}
	for _, child := range asNames.Children {
		if child.Type != cst.DottedAsName {
			continue
		}
		expectAs := false
		for _, sub := range child.Children {
			switch sub.Type {
			case cst.DottedName:
				w.emitImport(dottedName(sub, w.cfg.MaxDottedNameLength), sub)
			case cst.NAME:
				if expectAs {
					w.sink.OnAs(sub.Text)
					expectAs = false
				} else if sub.Text == "as" {
					expectAs = true
				}
			}
		}
	}
}

// walkImportFrom handles "from ..pkg import a as b, c, *" (spec.md §4.D,
// second shape). The module reference is a run of DOT/ELLIPSIS tokens and an
// optional dotted_name, concatenated with dots mapped to "." and ellipsis to
// "...".
func (w *Walker) walkImportFrom(importFrom *cst.Node) {
	var name strings.Builder
	var firstRefToken *cst.Node
	flushed := false

	flush := func() {
		if name.Len() == 0 || flushed {
			return
		}
		w.emitImport(name.String(), firstRefToken)
		flushed = true
	}

	for _, child := range importFrom.Children {
		switch child.Type {
		case cst.DOT:
			name.WriteByte('.')
			if firstRefToken == nil {
				firstRefToken = child
			}
		case cst.ELLIPSIS:
			name.WriteString("...")
			if firstRefToken == nil {
				firstRefToken = child
			}
		case cst.DottedName:
			name.WriteString(dottedName(child, w.cfg.MaxDottedNameLength))
			if firstRefToken == nil {
				firstRefToken = child
			}
		case cst.ImportAsNames:
			flush()
			w.walkImportAsNames(child)
		default:
			flush()
		}
	}
	flush()
}

func (w *Walker) walkImportAsNames(node *cst.Node) {
	for _, whatChild := range node.Children {
		if whatChild.Type != cst.ImportAsName {
			continue
		}
		if whatChild.NChildren() < 1 {
			continue
		}
		whatName := whatChild.Children[0]
		w.emitWhat(whatName.Text, whatName)
		if whatChild.NChildren() == 3 {
			asName := whatChild.Children[2]
			w.sink.OnAs(asName.Text)
		}
	}
}

func (w *Walker) emitImport(name string, posNode *cst.Node) {
	w.sink.OnImport(name, w.position(posNode))
}

func (w *Walker) emitWhat(name string, posNode *cst.Node) {
	w.sink.OnWhat(name, w.position(posNode))
}
