// Package pygraph is a collecting events.Sink: instead of streaming
// callbacks to a renderer, it assembles them into a Module value tree
// (spec.md SPEC_FULL §2). A Collector is single-use: construct one per
// file, drive it with a walker.Walker, then read Module.
package pygraph

import (
	"regexp"

	"github.com/viant/pyinspect/events"
)

// container is whatever the walker currently considers "inside": the
// module itself, a class body, or a function body. Events that are not
// themselves class/function definitions attach to whichever container is
// on top of the Collector's scope stack.
type container interface {
	addImport(i *Import)
	addAssignment(a *Assignment)
	addClass(c *Class)
	addFunction(f *Function)
	setDocstring(d *Docstring)
}

func (m *Module) addImport(i *Import)         { m.Imports = append(m.Imports, i) }
func (m *Module) addAssignment(a *Assignment) { m.Assignments = append(m.Assignments, a) }
func (m *Module) addClass(c *Class)           { m.Classes = append(m.Classes, c) }
func (m *Module) addFunction(f *Function)     { m.Functions = append(m.Functions, f) }
func (m *Module) setDocstring(d *Docstring)   { m.Docstring = d }

func (c *Class) addImport(i *Import)         { c.Imports = append(c.Imports, i) }
func (c *Class) addAssignment(a *Assignment) { c.Attributes = append(c.Attributes, a) }
func (c *Class) addClass(child *Class)       { c.Classes = append(c.Classes, child) }
func (c *Class) addFunction(f *Function)     { c.Functions = append(c.Functions, f) }
func (c *Class) setDocstring(d *Docstring)   { c.Docstring = d }

func (f *Function) addImport(i *Import)         { f.Imports = append(f.Imports, i) }
func (f *Function) addAssignment(a *Assignment) { f.InstanceAttributes = append(f.InstanceAttributes, a) }
func (f *Function) addClass(c *Class)           { f.Classes = append(f.Classes, c) }
func (f *Function) addFunction(child *Function) { f.Functions = append(f.Functions, child) }
func (f *Function) setDocstring(d *Docstring)   { f.Docstring = d }

type frame struct {
	level     int
	container container
}

// Collector implements events.Sink and builds a Module value tree from the
// callbacks a walker.Walker issues (spec.md SPEC_FULL §2). The zero value
// is not usable; use NewCollector.
type Collector struct {
	module *Module
	stack  []frame

	pendingDecorators []*Decorator
	currentImport     *Import
	currentWhat       *ImportWhat
}

var _ events.Sink = (*Collector)(nil)

// NewCollector returns a Collector that will build a Module for the file
// at path. path is metadata only; it is never used to read the file.
func NewCollector(path string) *Collector {
	m := &Module{Path: path}
	return &Collector{
		module: m,
		stack:  []frame{{level: -1, container: m}},
	}
}

// Module returns the value tree assembled so far. Safe to call once the
// walk has finished; the tree is fully built as of that point.
func (c *Collector) Module() *Module {
	return c.module
}

func (c *Collector) top() container {
	return c.stack[len(c.stack)-1].container
}

// popForScope pops frames opened at level or deeper, so that top()
// afterward is the lexical parent a class/function definition arriving at
// level belongs to (a class/function's own level is always one more than
// its container's). Must run before the new definition is attached to
// top() and before it is itself pushed, since a sibling definition at the
// same level ends the previous sibling's frame without any explicit
// "end of body" event.
func (c *Collector) popForScope(level int) {
	for len(c.stack) > 1 && c.stack[len(c.stack)-1].level >= level {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

// popForMember pops frames opened strictly deeper than level, so that
// top() afterward is the class/function/module an assignment arriving at
// level was found directly inside of. Unlike popForScope, a frame opened
// exactly at level is kept: a member's level equals its own container's
// level, not one more than it, since assignments never push a frame.
func (c *Collector) popForMember(level int) {
	for len(c.stack) > 1 && c.stack[len(c.stack)-1].level > level {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

func (c *Collector) push(level int, cont container) {
	c.stack = append(c.stack, frame{level: level, container: cont})
}

func (c *Collector) takeDecorators() []*Decorator {
	d := c.pendingDecorators
	c.pendingDecorators = nil
	return d
}

func (c *Collector) OnEncoding(name string, pos events.Position) {
	c.module.Encoding = name
}

func (c *Collector) OnImport(name string, pos events.Position) {
	imp := &Import{Name: name, Position: pos}
	c.currentImport = imp
	c.currentWhat = nil
	c.top().addImport(imp)
}

func (c *Collector) OnWhat(name string, pos events.Position) {
	if c.currentImport == nil {
		return
	}
	what := &ImportWhat{Name: name}
	c.currentImport.Whats = append(c.currentImport.Whats, what)
	c.currentWhat = what
}

func (c *Collector) OnAs(name string) {
	if c.currentWhat != nil {
		c.currentWhat.As = name
		return
	}
	if c.currentImport != nil {
		c.currentImport.As = name
	}
}

func (c *Collector) OnGlobal(name string, pos events.Position, level int) {
	c.popForMember(level)
	c.top().addAssignment(&Assignment{Name: name, Position: pos, Level: level})
}

func (c *Collector) OnClassAttribute(name string, pos events.Position, level int) {
	c.popForMember(level)
	c.top().addAssignment(&Assignment{Name: name, Position: pos, Level: level})
}

func (c *Collector) OnInstanceAttribute(name string, pos events.Position, level int) {
	c.popForMember(level)
	c.top().addAssignment(&Assignment{Name: name, Position: pos, Level: level})
}

func (c *Collector) OnClass(name string, pos events.Position, keywordLine, keywordColumn, colonLine, colonColumn, level int) {
	cls := &Class{
		Name:          name,
		Position:      pos,
		KeywordLine:   keywordLine,
		KeywordColumn: keywordColumn,
		ColonLine:     colonLine,
		ColonColumn:   colonColumn,
		Level:         level,
		Decorators:    c.takeDecorators(),
	}
	c.popForScope(level)
	c.top().addClass(cls)
	c.push(level, cls)
}

// keywordBaseRE recognizes a keyword base such as "metaclass=Meta" the way
// convertArglist renders it: "name=value" with no surrounding spaces.
var keywordBaseRE = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=(.+)$`)

func (c *Collector) OnBaseClass(expr string) {
	cls, ok := c.top().(*Class)
	if !ok {
		return
	}
	base := &Base{Expr: expr}
	if m := keywordBaseRE.FindStringSubmatch(expr); m != nil {
		base.IsKeyword = true
		base.KeywordName = m[1]
	}
	cls.BaseClass = append(cls.BaseClass, base)
}

func (c *Collector) OnFunction(name string, pos events.Position, keywordLine, keywordColumn, colonLine, colonColumn, level int, isAsync bool, returnAnnotation string) {
	fn := &Function{
		Name:             name,
		Position:         pos,
		KeywordLine:      keywordLine,
		KeywordColumn:    keywordColumn,
		ColonLine:        colonLine,
		ColonColumn:      colonColumn,
		Level:            level,
		IsAsync:          isAsync,
		ReturnAnnotation: returnAnnotation,
		Decorators:       c.takeDecorators(),
	}
	c.popForScope(level)
	c.top().addFunction(fn)
	c.push(level, fn)
}

func (c *Collector) OnDecorator(name string, pos events.Position) {
	c.pendingDecorators = append(c.pendingDecorators, &Decorator{Name: name, Position: pos})
}

func (c *Collector) OnDecoratorArgument(expr string) {
	if n := len(c.pendingDecorators); n > 0 {
		d := c.pendingDecorators[n-1]
		d.Arguments = append(d.Arguments, expr)
	}
}

func (c *Collector) OnArgument(name, annotation string) {
	fn, ok := c.top().(*Function)
	if !ok {
		return
	}
	fn.Arguments = append(fn.Arguments, &Argument{Name: name, Annotation: annotation})
}

func (c *Collector) OnArgumentValue(expr string) {
	fn, ok := c.top().(*Function)
	if !ok {
		return
	}
	fn.ArgumentValues = append(fn.ArgumentValues, expr)
}

func (c *Collector) OnDocstring(text string, startLine, endLine int) {
	c.top().setDocstring(&Docstring{Text: text, StartLine: startLine, EndLine: endLine})
}

func (c *Collector) OnError(message string) {
	c.module.Errors = append(c.module.Errors, &SyntaxError{Message: message})
}

func (c *Collector) OnLexerError(message string) {
	c.module.Errors = append(c.module.Errors, &SyntaxError{Message: message, Lexer: true})
}
