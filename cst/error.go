package cst

import "fmt"

// ErrorCode enumerates the syntax-error taxonomy a parser collaborator may
// report (spec.md §6).
type ErrorCode int

const (
	ErrUnknown ErrorCode = iota
	ErrInvalidSyntax
	ErrExpectedIndent
	ErrUnexpectedIndent
	ErrUnexpectedDedent
	ErrInvalidToken
	ErrEOFInTripleQuotedString
	ErrEOLInStringLiteral
	ErrUnexpectedEOF
	ErrInconsistentTabsSpaces
	ErrExpressionTooLong
	ErrDedentMismatch
	ErrTooManyIndentationLevels
	ErrDecode
	ErrUnexpectedCharAfterLineContinuation
	ErrKeyboardInterrupt
	ErrOutOfMemory
)

var errorCodeText = map[ErrorCode]string{
	ErrUnknown:                             "unknown error",
	ErrInvalidSyntax:                       "invalid syntax",
	ErrExpectedIndent:                      "expected an indented block",
	ErrUnexpectedIndent:                    "unexpected indent",
	ErrUnexpectedDedent:                    "unindent does not match any outer indentation level",
	ErrInvalidToken:                        "invalid token",
	ErrEOFInTripleQuotedString:             "EOF in multi-line string",
	ErrEOLInStringLiteral:                  "EOL while scanning string literal",
	ErrUnexpectedEOF:                       "unexpected EOF while parsing",
	ErrInconsistentTabsSpaces:              "inconsistent use of tabs and spaces in indentation",
	ErrExpressionTooLong:                   "expression too long",
	ErrDedentMismatch:                      "dedent does not match any outer indentation level",
	ErrTooManyIndentationLevels:            "too many levels of indentation",
	ErrDecode:                              "source code cannot be decoded",
	ErrUnexpectedCharAfterLineContinuation: "unexpected character after line continuation character",
	ErrKeyboardInterrupt:                   "keyboard interrupt",
	ErrOutOfMemory:                         "out of memory",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeText[c]; ok {
		return s
	}
	return "unknown error"
}

// ParseError is the structured failure a parser collaborator returns instead
// of a tree (spec.md §6/§7). Line and Column are 1-based.
type ParseError struct {
	Code          ErrorCode
	Line          int
	Column        int
	OffendingText string
	Expected      string
	Actual        string

	// Lexer marks a failure as originating in tokenization rather than in
	// the grammar (e.g. inconsistent tabs/spaces, EOF inside a
	// triple-quoted string), routing it through the reserved
	// lexer-error sink channel instead of error (spec.md §7, SPEC_FULL §5.1).
	Lexer bool
}

// Message renders the taxonomy message the walker delivers to the error sink:
// "line:col <description>" suffixed with the offending text when present
// (spec.md §6).
func (e *ParseError) Message() string {
	msg := fmt.Sprintf("%d:%d %s", e.Line, e.Column, e.Code.String())
	if e.OffendingText != "" {
		msg += "\n" + e.OffendingText
	}
	return msg
}

func (e *ParseError) Error() string { return e.Message() }
