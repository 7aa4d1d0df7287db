// Package walker is the hard core of pyinspect: it traverses a cst.Node
// tree produced by an external parser collaborator and emits the
// structural events defined in package events (spec.md §2 component I and
// §4). The walker holds only stack-local state scoped to one call; it is
// single-threaded and synchronous (spec.md §5).
package walker

import (
	"regexp"

	"github.com/viant/pyinspect/cst"
	"github.com/viant/pyinspect/events"
	"github.com/viant/pyinspect/internal/config"
)

// Scope is the kind of lexical region the walker is currently inside
// (spec.md §3).
type Scope int

const (
	Global Scope = iota
	Function
	Class
	ClassMethod
	ClassStaticMethod
)

// Walker is the event-extraction driver. Construct one per parse with New
// and call Walk once; the walker does not buffer events, it calls sink
// methods in source order as it descends the tree.
type Walker struct {
	sink   events.Sink
	cfg    *config.Config
	shifts lineShiftTable
}

// New creates a Walker that will report positions computed from src's
// line-shift table and deliver events to sink. cfg may be nil, in which
// case config.Default() applies.
func New(src []byte, sink events.Sink, cfg *config.Config) *Walker {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Walker{
		sink:   sink,
		cfg:    cfg,
		shifts: buildLineShiftTable(src),
	}
}

// position converts a node's (line, col) into an events.Position using the
// walker's line-shift table (spec.md invariant 1).
func (w *Walker) position(n *cst.Node) events.Position {
	if n == nil {
		return events.Position{}
	}
	return events.Position{
		Line:   n.Line,
		Column: n.Col + 1,
		Offset: w.shifts.offset(n.Line, n.Col),
	}
}

var encodingCommentRE = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

// Walk is the entry point: it emits the module's encoding declaration (if
// the root is shaped like one), the module docstring, and then recursively
// walks the whole tree in Global scope (spec.md §4.I, §6 Encoding).
func (w *Walker) Walk(root *cst.Node) {
	if root == nil {
		return
	}
	if root.Type == cst.EncodingDecl {
		w.emitEncoding(root)
	}
	w.walk(root, -1, Global, "", 0, false)
}

// walk is the recursive driver (spec.md §4.I / walk() in the original
// source). entryLevel starts at 0 and is incremented on every recursive
// call solely so the module-docstring check fires only at depth 1.
func (w *Walker) walk(n *cst.Node, objectsLevel int, scope Scope, firstArgName string, entryLevel int, staticMethodPending bool) {
	entryLevel++

	switch n.Type {
	case cst.ImportStmt:
		w.walkImport(n)
		return
	case cst.Funcdef:
		w.walkFunction(n, objectsLevel, scope, entryLevel, staticMethodPending, false)
		return
	case cst.AsyncFuncdef:
		if fn := n.Child(1); fn != nil {
			w.walkFunction(fn, objectsLevel, scope, entryLevel, staticMethodPending, true)
		}
		return
	case cst.Classdef:
		w.walkClass(n, objectsLevel, entryLevel)
		return
	case cst.AsyncStmt:
		if stmtNode := n.Child(1); stmtNode != nil && stmtNode.Type == cst.Funcdef {
			w.walkFunction(stmtNode, objectsLevel, scope, entryLevel, staticMethodPending, true)
		}
		return
	case cst.Stmt:
		if assign := isAssignment(n); assign != nil {
			listNode := assign.Children[0]
			switch scope {
			case Global:
				w.classifyAssignment(listNode, objectsLevel, w.sink.OnGlobal)
			case Class:
				w.classifyAssignment(listNode, objectsLevel, w.sink.OnClassAttribute)
			case ClassMethod:
				w.classifyInstanceMember(listNode, firstArgName, objectsLevel)
			}
			return
		}
	}

	staticDecor := false
	for i, child := range n.Children {
		if entryLevel == 1 && i == 0 {
			if doc := extractDocstring(n, w.cfg); doc != nil {
				w.sink.OnDocstring(doc.Text, doc.StartLine, doc.EndLine)
			}
		}
		if child.Type == cst.Decorators {
			staticDecor = w.walkDecorators(child)
			continue
		}
		w.walk(child, objectsLevel, scope, firstArgName, entryLevel, staticDecor)
		staticDecor = false
	}
}

func (w *Walker) emitEncoding(n *cst.Node) {
	m := encodingCommentRE.FindStringSubmatch(n.Text)
	if m == nil {
		return
	}
	w.sink.OnEncoding(m[1], w.position(n))
}
