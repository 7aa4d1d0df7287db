package walker_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyinspect/cst"
	"github.com/viant/pyinspect/events"
	"github.com/viant/pyinspect/internal/config"
	"github.com/viant/pyinspect/walker"
)

// recordingSink implements events.Sink by appending every call, in order, as
// a single string, so a test can assert both content and relative ordering
// (spec.md §8 P2, P3) without hand-rolling one struct field per event kind.
type recordingSink struct {
	events.BaseSink
	calls []string
}

func (r *recordingSink) OnEncoding(name string, pos events.Position) {
	r.calls = append(r.calls, fmt.Sprintf("encoding(%s,%d,%d)", name, pos.Line, pos.Column))
}
func (r *recordingSink) OnImport(name string, pos events.Position) {
	r.calls = append(r.calls, fmt.Sprintf("import(%s,%d,%d)", name, pos.Line, pos.Column))
}
func (r *recordingSink) OnWhat(name string, pos events.Position) {
	r.calls = append(r.calls, fmt.Sprintf("what(%s,%d,%d)", name, pos.Line, pos.Column))
}
func (r *recordingSink) OnAs(name string) {
	r.calls = append(r.calls, fmt.Sprintf("as(%s)", name))
}
func (r *recordingSink) OnGlobal(name string, pos events.Position, level int) {
	r.calls = append(r.calls, fmt.Sprintf("global(%s,%d)", name, level))
}
func (r *recordingSink) OnClassAttribute(name string, pos events.Position, level int) {
	r.calls = append(r.calls, fmt.Sprintf("class-attribute(%s,%d)", name, level))
}
func (r *recordingSink) OnInstanceAttribute(name string, pos events.Position, level int) {
	r.calls = append(r.calls, fmt.Sprintf("instance-attribute(%s,%d)", name, level))
}
func (r *recordingSink) OnClass(name string, pos events.Position, kwLine, kwCol, colonLine, colonCol, level int) {
	r.calls = append(r.calls, fmt.Sprintf("class(%s,level=%d)", name, level))
}
func (r *recordingSink) OnBaseClass(expr string) {
	r.calls = append(r.calls, fmt.Sprintf("base-class(%s)", expr))
}
func (r *recordingSink) OnFunction(name string, pos events.Position, kwLine, kwCol, colonLine, colonCol, level int, isAsync bool, returnAnnotation string) {
	r.calls = append(r.calls, fmt.Sprintf("function(%s,async=%v,return=%s,level=%d)", name, isAsync, returnAnnotation, level))
}
func (r *recordingSink) OnDecorator(name string, pos events.Position) {
	r.calls = append(r.calls, fmt.Sprintf("decorator(%s)", name))
}
func (r *recordingSink) OnDecoratorArgument(expr string) {
	r.calls = append(r.calls, fmt.Sprintf("decorator-argument(%s)", expr))
}
func (r *recordingSink) OnArgument(name, annotation string) {
	r.calls = append(r.calls, fmt.Sprintf("argument(%s,%s)", name, annotation))
}
func (r *recordingSink) OnArgumentValue(expr string) {
	r.calls = append(r.calls, fmt.Sprintf("argument-value(%s)", expr))
}
func (r *recordingSink) OnDocstring(text string, startLine, endLine int) {
	r.calls = append(r.calls, fmt.Sprintf("docstring(%s,%d,%d)", text, startLine, endLine))
}
func (r *recordingSink) OnError(message string) {
	r.calls = append(r.calls, fmt.Sprintf("error(%s)", message))
}
func (r *recordingSink) OnLexerError(message string) {
	r.calls = append(r.calls, fmt.Sprintf("lexer-error(%s)", message))
}

var _ events.Sink = (*recordingSink)(nil)

// --- cst tree builders, grounded on pytree's own conversion shapes (see
// pytree/statements.go wrapSimple/convertClass/convertFunction and
// pytree/expr.go convertAssignTarget) so these trees are exactly what the
// real parser collaborator would hand the walker. ---

func leaf(t cst.Type, text string, line, col int) *cst.Node {
	return &cst.Node{Type: t, Text: text, Line: line, Col: col}
}

// nameTarget builds the Test(Power(AtomExpr(Atom(NAME)))) shape a bare
// "name = ..." assignment target takes.
func nameTarget(name string, line, col int) *cst.Node {
	atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{leaf(cst.NAME, name, line, col)}}
	atomExpr := &cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom}}
	power := &cst.Node{Type: cst.Power, Line: line, Col: col, Children: []*cst.Node{atomExpr}}
	return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{power}}
}

// attrTarget builds the Test(Power(AtomExpr(Atom(NAME), Trailer(DOT,NAME))))
// shape a "base.attr = ..." assignment target takes.
func attrTarget(base, attr string, line, col int) *cst.Node {
	atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{leaf(cst.NAME, base, line, col)}}
	trailer := &cst.Node{Type: cst.Trailer, Line: line, Col: col + len(base) + 1, Children: []*cst.Node{
		leaf(cst.DOT, ".", line, col+len(base)),
		leaf(cst.NAME, attr, line, col+len(base)+1),
	}}
	atomExpr := &cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom, trailer}}
	power := &cst.Node{Type: cst.Power, Line: line, Col: col, Children: []*cst.Node{atomExpr}}
	return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{power}}
}

// rhsOpaque builds the single-leaf Test a literal or other value expression
// collapses to (pytree's testOpaque shape): the walker never looks past it.
func rhsOpaque(text string, line, col int) *cst.Node {
	return &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{leaf(cst.NAME, text, line, col)}}
}

// assignStmt builds the Stmt(SimpleStmt(SmallStmt(ExprStmt(TestlistStarExpr(
// target), EQUAL, rhs)))) spine isAssignment descends through.
func assignStmt(target, rhs *cst.Node, line, col int) *cst.Node {
	list := &cst.Node{Type: cst.TestlistStarExpr, Line: line, Col: col, Children: []*cst.Node{target}}
	exprStmt := &cst.Node{Type: cst.ExprStmt, Line: line, Col: col, Children: []*cst.Node{
		list, leaf(cst.EQUAL, "=", line, col), rhs,
	}}
	smallStmt := &cst.Node{Type: cst.SmallStmt, Line: line, Col: col, Children: []*cst.Node{exprStmt}}
	simpleStmt := &cst.Node{Type: cst.SimpleStmt, Line: line, Col: col, Children: []*cst.Node{smallStmt}}
	return &cst.Node{Type: cst.Stmt, Line: line, Col: col, Children: []*cst.Node{simpleStmt}}
}

// augAssignStmt builds an augmented assignment ("x += 1"): the ExprStmt
// collapses to a single opaque leaf, exactly as convertExpressionStatement's
// augmented_assignment branch does, so isAssignment never matches it.
func augAssignStmt(text string, line, col int) *cst.Node {
	exprStmt := leaf(cst.ExprStmt, text, line, col)
	smallStmt := &cst.Node{Type: cst.SmallStmt, Line: line, Col: col, Children: []*cst.Node{exprStmt}}
	simpleStmt := &cst.Node{Type: cst.SimpleStmt, Line: line, Col: col, Children: []*cst.Node{smallStmt}}
	return &cst.Node{Type: cst.Stmt, Line: line, Col: col, Children: []*cst.Node{simpleStmt}}
}

// docstringStmt builds the Stmt(SimpleStmt(SmallStmt(ExprStmt(
// TestlistStarExpr(Test(Power(AtomExpr(Atom(STRING))))))))) shape
// extractDocstring's SkipToNode(stmt, cst.Atom) descends through (mirrors
// pytree's convertExpressionStatement + exprAsTest). It builds the statement
// only; callers wrap it in a suite that adds NEWLINE/INDENT themselves.
func docstringStmt(text string, line, col int) *cst.Node {
	atom := &cst.Node{Type: cst.Atom, Line: line, Col: col, Children: []*cst.Node{leaf(cst.STRING, text, line, col)}}
	atomExpr := &cst.Node{Type: cst.AtomExpr, Line: line, Col: col, Children: []*cst.Node{atom}}
	power := &cst.Node{Type: cst.Power, Line: line, Col: col, Children: []*cst.Node{atomExpr}}
	test := &cst.Node{Type: cst.Test, Line: line, Col: col, Children: []*cst.Node{power}}
	testlist := &cst.Node{Type: cst.TestlistStarExpr, Line: line, Col: col, Children: []*cst.Node{test}}
	exprStmt := &cst.Node{Type: cst.ExprStmt, Line: line, Col: col, Children: []*cst.Node{testlist}}
	smallStmt := &cst.Node{Type: cst.SmallStmt, Line: line, Col: col, Children: []*cst.Node{exprStmt}}
	simpleStmt := &cst.Node{Type: cst.SimpleStmt, Line: line, Col: col, Children: []*cst.Node{smallStmt}}
	return &cst.Node{Type: cst.Stmt, Line: line, Col: col, Children: []*cst.Node{simpleStmt}}
}

func suite(line, col int, stmts ...*cst.Node) *cst.Node {
	children := []*cst.Node{leaf(cst.NEWLINE, "", line, col), leaf(cst.INDENT, "", line, col)}
	children = append(children, stmts...)
	children = append(children, leaf(cst.DEDENT, "", line, col))
	return &cst.Node{Type: cst.Suite, Line: line, Col: col, Children: children}
}

func importStmt(inner *cst.Node) *cst.Node {
	return &cst.Node{Type: cst.ImportStmt, Line: inner.Line, Col: inner.Col, Children: []*cst.Node{inner}}
}

// classdef builds a Classdef(NAME"class", NAME<name>[, Arglist], COLON,
// Suite) node, mirroring pytree's convertClass child order.
func classdef(name string, line, col int, bases *cst.Node, body *cst.Node) *cst.Node {
	children := []*cst.Node{leaf(cst.NAME, "class", line, col), leaf(cst.NAME, name, line, col+6)}
	if bases != nil {
		children = append(children, bases)
	}
	children = append(children, leaf(cst.COLON, ":", line, col))
	children = append(children, body)
	return &cst.Node{Type: cst.Classdef, Line: line, Col: col, Children: children}
}

func funcdef(name string, line, col int, params, returnAnnot, body *cst.Node) *cst.Node {
	children := []*cst.Node{leaf(cst.NAME, "def", line, col), leaf(cst.NAME, name, line, col+4)}
	if params != nil {
		children = append(children, params)
	}
	if returnAnnot != nil {
		children = append(children, returnAnnot)
	}
	children = append(children, leaf(cst.COLON, ":", line, col))
	children = append(children, body)
	return &cst.Node{Type: cst.Funcdef, Line: line, Col: col, Children: children}
}

func tfpdef(name string, line, col int, annotation *cst.Node) *cst.Node {
	children := []*cst.Node{leaf(cst.NAME, name, line, col)}
	if annotation != nil {
		children = append(children, annotation)
	}
	return &cst.Node{Type: cst.Tfpdef, Line: line, Col: col, Children: children}
}

func parameters(line, col int, args ...*cst.Node) *cst.Node {
	list := &cst.Node{Type: cst.Typedargslist, Line: line, Col: col, Children: args}
	return &cst.Node{Type: cst.Parameters, Line: line, Col: col, Children: []*cst.Node{list}}
}

func arglist(line, col int, bases ...string) *cst.Node {
	var args []*cst.Node
	for _, b := range bases {
		leafNode := leaf(cst.NAME, b, line, col)
		args = append(args, &cst.Node{Type: cst.Argument, Line: line, Col: col, Children: []*cst.Node{leafNode}})
	}
	return &cst.Node{Type: cst.Arglist, Line: line, Col: col, Children: args}
}

func decorators(line, col int, names ...string) *cst.Node {
	var decs []*cst.Node
	for _, n := range names {
		dotted := &cst.Node{Type: cst.DottedName, Line: line, Col: col, Children: []*cst.Node{leaf(cst.NAME, n, line, col)}}
		decs = append(decs, &cst.Node{Type: cst.Decorator, Line: line, Col: col, Children: []*cst.Node{dotted}})
	}
	return &cst.Node{Type: cst.Decorators, Line: line, Col: col, Children: decs}
}

func fileInput(stmts ...*cst.Node) *cst.Node {
	return &cst.Node{Type: cst.FileInput, Line: 1, Col: 0, Children: stmts}
}

func newWalker(src string) (*walker.Walker, *recordingSink) {
	sink := &recordingSink{}
	return walker.New([]byte(src), sink, config.Default()), sink
}

// Scenario 2 (spec.md §8): class with a base and a class-attribute, both
// reported at level 0 — the class's own level, not one deeper.
func TestWalker_ClassWithBaseAndAttribute(t *testing.T) {
	root := fileInput(
		classdef("A", 1, 0, arglist(1, 0, "B"),
			suite(1, 11, assignStmt(nameTarget("x", 2, 4), rhsOpaque("1", 2, 8), 2, 4))),
	)
	w, sink := newWalker("class A(B):\n    x = 1\n")
	w.Walk(root)

	assert.Contains(t, sink.calls, "class(A,level=0)")
	assert.Contains(t, sink.calls, "base-class(B)")
	assert.Contains(t, sink.calls, "class-attribute(x,0)")
}

// Scenario 3 (spec.md §8): a method's instance attribute is reported at the
// method's own level (1), not the class's level (0) or two deeper.
func TestWalker_MethodWithInstanceAttribute(t *testing.T) {
	params := parameters(2, 10, tfpdef("self", 2, 11, nil), tfpdef("x", 2, 17, nil))
	methodBody := suite(2, 23, assignStmt(attrTarget("self", "v", 3, 8), rhsOpaque("x", 3, 16), 3, 8))
	method := funcdef("m", 2, 4, params, nil, methodBody)
	classBody := suite(1, 8, method)
	root := fileInput(classdef("C", 1, 0, nil, classBody))

	w, sink := newWalker("class C:\n    def m(self, x):\n        self.v = x\n")
	w.Walk(root)

	assert.Contains(t, sink.calls, "class(C,level=0)")
	assert.Contains(t, sink.calls, "function(m,async=false,return=,level=1)")
	assert.Contains(t, sink.calls, "argument(self,)")
	assert.Contains(t, sink.calls, "argument(x,)")
	assert.Contains(t, sink.calls, "instance-attribute(v,1)")
}

// Scenario 4 (spec.md §8): a @staticmethod-decorated method never reports
// instance-attribute events for its body, even though "self.v = 1" would
// otherwise match — except here there is no "self" first parameter at all,
// which is itself the usual staticmethod shape.
func TestWalker_StaticMethodSuppressesInstanceAttribute(t *testing.T) {
	methodBody := suite(3, 8, assignStmt(nameTarget("y", 3, 8), rhsOpaque("1", 3, 12), 3, 8))
	method := funcdef("f", 2, 4, parameters(2, 9), nil, methodBody)
	classBody := suite(1, 8, decorators(2, 4, "staticmethod"), method)
	root := fileInput(classdef("C", 1, 0, nil, classBody))

	w, sink := newWalker("class C:\n    @staticmethod\n    def f():\n        y = 1\n")
	w.Walk(root)

	assert.Contains(t, sink.calls, "decorator(staticmethod)")
	assert.Contains(t, sink.calls, "function(f,async=false,return=,level=1)")
	for _, c := range sink.calls {
		assert.NotContains(t, c, "instance-attribute")
	}
}

// Scenario 5 (spec.md §8): async function with parameter annotation, default
// value, and return annotation, reported at module level (0).
func TestWalker_AsyncFunctionWithAnnotations(t *testing.T) {
	annot := &cst.Node{Type: cst.Test, Line: 1, Col: 0, Children: []*cst.Node{leaf(cst.NAME, "int", 1, 0)}}
	params := parameters(1, 12, tfpdef("x", 1, 13, annot), rhsOpaque("0", 1, 20))
	returnAnnot := &cst.Node{Type: cst.Test, Line: 1, Col: 0, Children: []*cst.Node{leaf(cst.NAME, "str", 1, 0)}}
	body := suite(1, 27, docstringStmt(`"""D"""`, 2, 4))
	fn := funcdef("f", 1, 6, params, returnAnnot, body)
	asyncFn := &cst.Node{Type: cst.AsyncFuncdef, Line: 1, Col: 0, Children: []*cst.Node{leaf(cst.KeywordAsync, "async", 1, 0), fn}}
	root := fileInput(asyncFn)

	w, sink := newWalker("async def f(x: int = 0) -> str:\n    \"\"\"D\"\"\"\n")
	w.Walk(root)

	assert.Contains(t, sink.calls, "function(f,async=true,return=str,level=0)")
	assert.Contains(t, sink.calls, "argument(x,int)")
	assert.Contains(t, sink.calls, "argument-value(0)")
	assert.Contains(t, sink.calls, "docstring(D,2,2)")
}

// Scenario 6 (spec.md §8): "from ..pkg import a as b, c" emits one import
// and two what events, with "as" attached only to the aliased one.
func TestWalker_FromImportWithAliasAndPlain(t *testing.T) {
	importFrom := &cst.Node{Type: cst.ImportFrom, Line: 1, Col: 0, Children: []*cst.Node{
		leaf(cst.DOT, ".", 1, 5),
		leaf(cst.DOT, ".", 1, 6),
		&cst.Node{Type: cst.DottedName, Line: 1, Col: 7, Children: []*cst.Node{leaf(cst.NAME, "pkg", 1, 7)}},
		&cst.Node{Type: cst.ImportAsNames, Line: 1, Col: 18, Children: []*cst.Node{
			{Type: cst.ImportAsName, Children: []*cst.Node{
				leaf(cst.NAME, "a", 1, 18), leaf(cst.NAME, "as", 1, 20), leaf(cst.NAME, "b", 1, 23),
			}},
			{Type: cst.ImportAsName, Children: []*cst.Node{leaf(cst.NAME, "c", 1, 26)}},
		}},
	}}
	root := fileInput(importStmt(importFrom))

	w, sink := newWalker("from ..pkg import a as b, c\n")
	w.Walk(root)

	require.Contains(t, sink.calls, "import(..pkg,1,6)")
	require.Contains(t, sink.calls, "what(a,1,19)")
	require.Contains(t, sink.calls, "as(b)")
	require.Contains(t, sink.calls, "what(c,1,27)")
}

// Augmented assignment is deliberately not a declaration (spec.md §4.H,
// §9 "Walrus-free conservative treatment"): "x += 1" at module level must
// never emit a global event, unlike the plain "x = 1" it resembles.
func TestWalker_AugmentedAssignmentIsNotADeclaration(t *testing.T) {
	root := fileInput(augAssignStmt("x += 1", 1, 0))
	w, sink := newWalker("x += 1\n")
	w.Walk(root)

	for _, c := range sink.calls {
		assert.NotContains(t, c, "global(")
	}
}

// Module docstring followed by an import (spec.md §8 scenario 1): the
// docstring event fires before the import event, matching source order.
func TestWalker_ModuleDocstringThenImport(t *testing.T) {
	importName := &cst.Node{Type: cst.ImportName, Line: 2, Col: 0, Children: []*cst.Node{
		{Type: cst.DottedAsNames, Children: []*cst.Node{
			{Type: cst.DottedAsName, Children: []*cst.Node{
				{Type: cst.DottedName, Line: 2, Col: 7, Children: []*cst.Node{leaf(cst.NAME, "os", 2, 7)}},
			}},
		}},
	}}
	root := fileInput(docstringStmt(`"""M"""`, 1, 0), importStmt(importName))
	w, sink := newWalker("\"\"\"M\"\"\"\nimport os\n")
	w.Walk(root)

	require.Len(t, sink.calls, 2)
	assert.Equal(t, "docstring(M,1,1)", sink.calls[0])
	assert.Equal(t, "import(os,2,8)", sink.calls[1])
}

// Regression: "def f(a, *, b): pass" — a bare "*" keyword-only separator
// must never be merged with the following ordinary parameter "b" into a
// single "*b" argument. Without the cst.KeywordOnlySep distinction this
// degenerated into argument("*b","") and lost "b" as its own event.
func TestWalker_KeywordOnlySeparatorDoesNotAbsorbNextParameter(t *testing.T) {
	params := parameters(1, 6,
		tfpdef("a", 1, 6, nil),
		leaf(cst.KeywordOnlySep, "*", 1, 9),
		tfpdef("b", 1, 12, nil),
	)
	body := suite(1, 16, augAssignStmt("pass", 2, 4))
	fn := funcdef("f", 1, 0, params, nil, body)
	root := fileInput(fn)

	w, sink := newWalker("def f(a, *, b):\n    pass\n")
	w.Walk(root)

	require.Contains(t, sink.calls, "argument(a,)")
	require.Contains(t, sink.calls, "argument(*,)")
	require.Contains(t, sink.calls, "argument(b,)")
	for _, c := range sink.calls {
		assert.NotContains(t, c, "argument(*b,")
	}
}

// *args still reports its own name, unaffected by the KeywordOnlySep split:
// pytree always builds STAR immediately followed by its Tfpdef as an
// inseparable pair (splatOrPlain), so the walker's STAR lookahead stays
// unambiguous for this shape.
func TestWalker_StarArgsStillReportsName(t *testing.T) {
	params := parameters(1, 6,
		tfpdef("a", 1, 6, nil),
		leaf(cst.STAR, "*", 1, 9),
		tfpdef("args", 1, 10, nil),
	)
	body := suite(1, 20, augAssignStmt("pass", 2, 4))
	fn := funcdef("f", 1, 0, params, nil, body)
	root := fileInput(fn)

	w, sink := newWalker("def f(a, *args):\n    pass\n")
	w.Walk(root)

	require.Contains(t, sink.calls, "argument(a,)")
	require.Contains(t, sink.calls, "argument(*args,)")
}
