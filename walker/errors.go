package walker

import (
	"github.com/viant/pyinspect/cst"
	"github.com/viant/pyinspect/events"
)

// ReportParseFailure delivers a parser collaborator's structured failure to
// the sink's error or lexer-error channel (spec.md §7) and truncates the
// message to the configured bound (spec.md §5). No tree is walked: the call
// returns successfully, the failure is data, not an exception.
func ReportParseFailure(sink events.Sink, err *cst.ParseError, maxLen int) {
	if err == nil {
		return
	}
	msg := err.Message()
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	if err.Lexer {
		sink.OnLexerError(msg)
		return
	}
	sink.OnError(msg)
}
