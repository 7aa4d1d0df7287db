// Package cst defines the concrete-syntax-tree contract the walker package
// consumes. Producing such a tree from source text is the job of an external
// collaborator (see package pytree for a tree-sitter backed one); this
// package only describes the shape of the tree.
package cst

// Type is a grammar symbol or leaf token kind. The set is closed and mirrors
// the node types a Python grammar-driven parser reports: high-level
// productions (funcdef, classdef, import_name, ...) and leaf tokens
// (NAME, STRING, COLON, ...).
type Type int

const (
	Unknown Type = iota

	// top level / module
	FileInput
	EncodingDecl

	// compound statements
	Stmt
	CompoundStmt
	SimpleStmt
	SmallStmt
	Suite

	Decorators
	Decorator
	Decorated

	Funcdef
	AsyncFuncdef
	AsyncStmt
	Parameters
	Typedargslist
	Tfpdef
	Varargslist
	KeywordOnlySep

	Classdef
	Arglist
	Argument

	ImportStmt
	ImportName
	ImportFrom
	ImportAsName
	ImportAsNames
	DottedAsName
	DottedAsNames
	DottedName

	ExprStmt
	Testlist
	TestlistStarExpr
	TestlistComp
	Test
	NamedexprTest
	OrTest
	AndTest
	NotTest
	Comparison
	Expr
	XorExpr
	AndExpr
	ShiftExpr
	ArithExpr
	Term
	Factor
	Power
	AtomExpr
	Atom
	Trailer
	StarExpr

	IfStmt
	WhileStmt
	ForStmt
	TryStmt
	WithStmt
	WithItem
	ExceptClause
	GlobalStmt
	NonlocalStmt
	AssertStmt
	ReturnStmt
	RaiseStmt
	YieldStmt
	YieldExpr
	PassStmt
	BreakStmt
	ContinueStmt
	DelStmt
	Augassign

	CompIter
	CompFor
	CompIf
	Lambdef
	DictorsetSignature

	// leaf tokens
	NAME
	NUMBER
	STRING
	NEWLINE
	INDENT
	DEDENT
	ENDMARKER

	LPAR
	RPAR
	LSQB
	RSQB
	LBRACE
	RBRACE
	COLON
	COMMA
	SEMI
	DOT
	ELLIPSIS
	EQUAL
	STAR
	DOUBLESTAR
	PLUS
	MINUS
	SLASH
	DOUBLESLASH
	PERCENT
	VBAR
	AMPER
	CIRCUMFLEX
	TILDE
	LESS
	GREATER
	LESSEQUAL
	GREATEREQUAL
	EQEQUAL
	NOTEQUAL
	LEFTSHIFT
	RIGHTSHIFT
	RARROW
	AT
	ATEQUAL
	OP
	ERRORTOKEN

	// word-like operator keywords padded with surrounding spaces by the
	// text serializer (spec.md invariant 7)
	KeywordNot
	KeywordIn
	KeywordIs
	KeywordOr
	KeywordAnd
	KeywordIf
	KeywordElif
	KeywordElse

	KeywordAsync
	KeywordAwait
)

// wordKeywords is the set of leaf kinds the text serializer pads with a
// leading and trailing space regardless of lexeme text (spec.md §3 invariant 7).
var wordKeywords = map[Type]bool{
	KeywordNot:  true,
	KeywordIn:   true,
	KeywordIs:   true,
	KeywordOr:   true,
	KeywordAnd:  true,
	KeywordIf:   true,
	KeywordElif: true,
	KeywordElse: true,
}

// IsWordKeyword reports whether t is one of the word-like operator keywords
// the text serializer surrounds with spaces.
func IsWordKeyword(t Type) bool { return wordKeywords[t] }

// tightPunctuation renders with no surrounding space: brackets, dot, tilde,
// and "=" (so keyword arguments serialize as "name=value").
var tightPunctuation = map[Type]bool{
	LPAR: true, RPAR: true, LSQB: true, RSQB: true,
	LBRACE: true, RBRACE: true, DOT: true, TILDE: true, EQUAL: true,
}

// IsTightPunctuation reports whether t renders with no surrounding space.
func IsTightPunctuation(t Type) bool { return tightPunctuation[t] }

// paddedBinaryOperators render with a leading and trailing space.
var paddedBinaryOperators = map[Type]bool{
	MINUS: true, PLUS: true, SLASH: true, STAR: true, PERCENT: true,
	LESS: true, GREATER: true, VBAR: true, AMPER: true, CIRCUMFLEX: true,
	DOUBLESTAR: true, DOUBLESLASH: true, EQEQUAL: true, GREATEREQUAL: true,
	LESSEQUAL: true, NOTEQUAL: true, LEFTSHIFT: true, RIGHTSHIFT: true,
	RARROW: true,
}

// IsPaddedBinaryOperator reports whether t is a punctuation operator padded
// with surrounding spaces by the text serializer.
func IsPaddedBinaryOperator(t Type) bool { return paddedBinaryOperators[t] }
