// Package events defines the structural-event taxonomy the walker package
// emits and the Sink capability a receiver must implement (spec.md §3, §6).
// The walker issues callbacks as it traverses; rendering, storage, and UI
// are a Sink implementation's concern, not this package's.
package events

// Position locates a token: 1-based line, 1-based column, and the absolute
// byte offset computed from the walker's line-shift table (spec.md
// invariant 1).
type Position struct {
	Line   int
	Column int
	Offset int
}

// Sink is the set of handlers a receiver of structural events implements.
// A handler that panics aborts the walk (spec.md §7); a Sink that wants to
// stop early without panicking has no such mechanism — the walk always
// runs to completion once started, matching the single-threaded,
// synchronous model of spec.md §5.
type Sink interface {
	OnEncoding(name string, pos Position)
	OnImport(name string, pos Position)
	OnWhat(name string, pos Position)
	OnAs(name string)
	OnGlobal(name string, pos Position, level int)
	OnClassAttribute(name string, pos Position, level int)
	OnInstanceAttribute(name string, pos Position, level int)
	OnClass(name string, pos Position, keywordLine, keywordColumn int, colonLine, colonColumn int, level int)
	OnBaseClass(expr string)
	OnFunction(name string, pos Position, keywordLine, keywordColumn int, colonLine, colonColumn int, level int, isAsync bool, returnAnnotation string)
	OnDecorator(name string, pos Position)
	OnDecoratorArgument(expr string)
	OnArgument(name string, annotation string)
	OnArgumentValue(expr string)
	OnDocstring(text string, startLine, endLine int)
	OnError(message string)
	OnLexerError(message string)
}

// BaseSink implements Sink with no-op handlers. Embed it to implement only
// the handlers a particular consumer cares about.
type BaseSink struct{}

func (BaseSink) OnEncoding(string, Position)                        {}
func (BaseSink) OnImport(string, Position)                          {}
func (BaseSink) OnWhat(string, Position)                            {}
func (BaseSink) OnAs(string)                                        {}
func (BaseSink) OnGlobal(string, Position, int)                     {}
func (BaseSink) OnClassAttribute(string, Position, int)             {}
func (BaseSink) OnInstanceAttribute(string, Position, int)          {}
func (BaseSink) OnClass(string, Position, int, int, int, int, int)  {}
func (BaseSink) OnBaseClass(string)                                 {}
func (BaseSink) OnFunction(string, Position, int, int, int, int, int, bool, string) {}
func (BaseSink) OnDecorator(string, Position)                       {}
func (BaseSink) OnDecoratorArgument(string)                         {}
func (BaseSink) OnArgument(string, string)                          {}
func (BaseSink) OnArgumentValue(string)                             {}
func (BaseSink) OnDocstring(string, int, int)                       {}
func (BaseSink) OnError(string)                                     {}
func (BaseSink) OnLexerError(string)                                {}
