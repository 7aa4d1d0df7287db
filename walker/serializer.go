package walker

import (
	"strings"

	"github.com/viant/pyinspect/cst"
)

// serializeText re-serializes a sub-tree into a single-line printable source
// fragment (spec.md §4.B), applying the spacing rules of invariant 7:
// word-like keywords and binary punctuation operators are padded with
// spaces, "," becomes ", ", ":" becomes ": ", and brackets/dot render
// tight. Truncated to maxLen, matching the MAX_ARG_VAL_SIZE /
// MAX_DOTTED_NAME_LENGTH bound of the node being serialized (spec.md §5).
//
// Grounded on collectTestString in the original parser source: pre-order,
// append a leaf's lexeme with spacing, then recurse into children.
func serializeText(n *cst.Node, maxLen int) string {
	var b strings.Builder
	collectText(n, &b, maxLen)
	s := b.String()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

func collectText(n *cst.Node, b *strings.Builder, maxLen int) {
	if n == nil || b.Len() >= maxLen {
		return
	}
	if n.Text != "" {
		switch {
		case n.Type == cst.COMMA:
			b.WriteString(", ")
		case n.Type == cst.COLON:
			b.WriteByte(':')
			b.WriteByte(' ')
		case cst.IsTightPunctuation(n.Type):
			b.WriteString(n.Text)
		case cst.IsPaddedBinaryOperator(n.Type):
			b.WriteByte(' ')
			b.WriteString(n.Text)
			b.WriteByte(' ')
		case cst.IsWordKeyword(n.Type):
			b.WriteByte(' ')
			b.WriteString(n.Text)
			b.WriteByte(' ')
		default:
			b.WriteString(n.Text)
		}
	}
	for _, c := range n.Children {
		collectText(c, b, maxLen)
	}
}
