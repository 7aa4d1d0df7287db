package walker

import (
	"strings"

	"github.com/viant/pyinspect/cst"
	"github.com/viant/pyinspect/internal/config"
)

// stringPrefixLength returns 1, 2, 3, or 4: the length of the opening quote
// run of a STRING lexeme, accounting for the r/u/f prefix letter (spec.md
// §4.C), grounded on getStringLiteralPrefixLength.
func stringPrefixLength(lexeme string) int {
	trim := func(prefixes ...string) (int, bool) {
		for _, p := range prefixes {
			if strings.HasPrefix(lexeme, p) {
				return len(p), true
			}
		}
		return 0, false
	}
	if n, ok := trim(`"""`, `'''`); ok {
		return n
	}
	if n, ok := trim(`r"""`, `r'''`, `u"""`, `u'''`, `f"""`, `f'''`); ok {
		return n
	}
	if n, ok := trim(`r"`, `r'`, `u"`, `u'`, `f"`, `f'`); ok {
		return n
	}
	return 1
}

// closingLength returns the length of the closing-quote run matching an
// opening run of the given length: triple-quoted literals (3 or 4 char
// openers) close with 3 quote characters, single-quoted literals close with
// 1.
func closingLength(openLen int) int {
	if openLen >= 3 {
		return 3
	}
	return 1
}

// countNewlines counts embedded "\n" and "\r\n" occurrences in s.
func countNewlines(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			count++
		case '\n':
			count++
		}
	}
	return count
}

// docstringResult is the (text, startLine, endLine) triple the extractor
// reports (spec.md §4.C).
type docstringResult struct {
	Text      string
	StartLine int
	EndLine   int
}

// extractDocstring locates the first statement of suite, concatenates
// adjacent string literals, strips quote prefixes/suffixes, and computes
// the docstring's start/end line with the version-specific adjustment
// selected by cfg.DocstringLineAdjustment (spec.md §4.C, §9). Returns nil
// if suite's first statement is not a bare string-literal expression.
//
// Grounded on checkForDocstring in the original parser source.
func extractDocstring(suite *cst.Node, cfg *config.Config) *docstringResult {
	if suite == nil {
		return nil
	}

	var stmt *cst.Node
	for _, child := range suite.Children {
		switch child.Type {
		case cst.NEWLINE, cst.INDENT:
			continue
		case cst.Stmt:
			stmt = child
		}
		break
	}
	if stmt == nil {
		return nil
	}

	atom := cst.SkipToNode(stmt, cst.Atom)
	if atom == nil || len(atom.Children) == 0 {
		return nil
	}
	for _, c := range atom.Children {
		if c.Type != cst.STRING {
			return nil
		}
	}

	var buf strings.Builder
	first := atom.Children[0]
	last := atom.Children[len(atom.Children)-1]
	limit := cfg.MaxDocstringLength

	for _, s := range atom.Children {
		openLen := stringPrefixLength(s.Text)
		closeLen := closingLength(openLen)
		body := s.Text
		if len(body) >= openLen+closeLen {
			body = body[openLen : len(body)-closeLen]
		}
		if buf.Len()+len(body) > limit {
			remaining := limit - buf.Len()
			if remaining > 0 {
				buf.WriteString(body[:remaining])
			}
			break
		}
		buf.WriteString(body)
	}

	startLine := first.Line
	endLine := last.Line

	switch cfg.DocstringLineAdjustment {
	case config.EndReportsStart:
		endLine += countNewlines(last.Text)
	default: // EndReportsEnd
		startLine -= countNewlines(first.Text)
	}

	return &docstringResult{Text: buf.String(), StartLine: startLine, EndLine: endLine}
}
