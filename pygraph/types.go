package pygraph

import "github.com/viant/pyinspect/events"

// Location is the position of an event, carried over verbatim from
// events.Position so a value tree never needs to import package walker.
type Location = events.Position

// Docstring is the first string-literal statement of a module, class, or
// function body.
type Docstring struct {
	Text      string
	StartLine int
	EndLine   int
}

// Assignment is a name bound by a bare "name = expr" statement at module,
// class, or instance-attribute scope.
type Assignment struct {
	Name     string
	Position Location
	Level    int
}

// ImportWhat is one name imported by a "from x import a as b, c" statement.
type ImportWhat struct {
	Name string
	As   string
}

// Import is either an "import a.b.c as d" statement (As set, Whats empty)
// or a "from a.b import ..." statement (Whats populated, As empty).
type Import struct {
	Name     string
	Position Location
	As       string
	Whats    []*ImportWhat
}

// Decorator is a single "@name(args)" applied to the class or function that
// follows it.
type Decorator struct {
	Name      string
	Position  Location
	Arguments []string
}

// Argument is one formal parameter of a function definition.
type Argument struct {
	Name       string
	Annotation string
}

// Function is a def or async def statement, including nested classes and
// functions declared in its body.
type Function struct {
	Name             string
	Position         Location
	KeywordLine      int
	KeywordColumn    int
	ColonLine        int
	ColonColumn      int
	Level            int
	IsAsync          bool
	ReturnAnnotation string

	Decorators         []*Decorator
	Arguments          []*Argument
	ArgumentValues     []string
	Docstring          *Docstring
	InstanceAttributes []*Assignment
	Imports            []*Import
	Functions          []*Function
	Classes            []*Class
}

// Base is one entry of a class's superclass list: either a plain base
// expression ("Animal", "pkg.Base") or a keyword base such as
// "metaclass=Meta", in which case IsKeyword and KeywordName are set so a
// consumer can tell the two apart without re-parsing Expr.
type Base struct {
	Expr        string
	IsKeyword   bool
	KeywordName string
}

// Class is a class statement, including its base-class expressions, its
// own attribute assignments, and the methods and nested classes declared
// in its body.
type Class struct {
	Name          string
	Position      Location
	KeywordLine   int
	KeywordColumn int
	ColonLine     int
	ColonColumn   int
	Level         int

	Decorators []*Decorator
	BaseClass  []*Base
	Docstring  *Docstring
	Attributes []*Assignment
	Imports    []*Import
	Functions  []*Function
	Classes    []*Class
}

// Asset is a non-Python file found alongside a package's source files
// (a README, a data fixture, a template) — carried through unparsed so a
// package-level summary doesn't silently drop everything but .py files.
type Asset struct {
	Path       string
	ImportPath string
	Content    []byte
}

// SyntaxError is a failure a parser collaborator reported to the error or
// lexer-error sink channel (spec.md §7).
type SyntaxError struct {
	Message string
	Lexer   bool
}

// Module is the root of the value tree a Collector builds for one source
// file: every top-level import, assignment, class, and function, plus any
// syntax errors the parser collaborator reported.
type Module struct {
	Path     string
	Encoding string

	Docstring   *Docstring
	Imports     []*Import
	Assignments []*Assignment
	Functions   []*Function
	Classes     []*Class
	Errors      []*SyntaxError
}

// Package is every module found in one directory, plus whatever
// non-Python files (Assets) live alongside them.
type Package struct {
	Name       string
	ImportPath string
	Modules    []*Module
	Assets     []*Asset
}

// Project is a whole inspected tree: its detected root/kind/name and
// every package discovered under it.
type Project struct {
	Name          string
	Type          string
	RootPath      string
	RepositoryURL string
	Packages      []*Package
}
