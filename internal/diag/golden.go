package diag

import (
	"fmt"
	"strings"
)

// FormatGolden renders diagnostics one per line in emission order:
//
//	error SYN2001 1:5 unexpected token 'x', expected ';'
//
// Newlines inside messages are folded so every entry stays on one line.
// Notes are rendered on their own "note" lines when includeNotes is set and
// resolve is non-nil.
func FormatGolden(diags []Diagnostic, resolve Positioner, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %d:%d %s",
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Pos.Line, d.Pos.Col, oneLine(d.Message))
		if !includeNotes || resolve == nil {
			continue
		}
		for _, n := range d.Notes {
			pos := resolve.Position(n.Span.Start)
			fmt.Fprintf(&sb, "\nnote %s %d:%d %s", d.Code.ID(), pos.Line, pos.Col, oneLine(n.Msg))
		}
	}
	return sb.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
