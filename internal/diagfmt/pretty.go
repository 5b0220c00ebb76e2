package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

type palette struct {
	err, warn, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty пишет диагностики в человекочитаемом виде:
//
//	main.ql:3:9: error[SEM3002]: undefined variable 'y'
//	   3 | print(y);
//	     |       ^
//	  note: ...
//
// Diagnostics are printed in bag order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	var sb strings.Builder
	for _, d := range bag.Items() {
		sev := p.err.Sprint("error")
		if d.Severity == diag.SevWarning {
			sev = p.warn.Sprint("warning")
		}
		file := diagnosticFile(fs, d)
		fmt.Fprintf(&sb, "%s: %s[%s]: %s\n", location(file, d.Primary), sev, d.Code.ID(), p.code.Sprint(d.Message))
		if file != nil {
			writeSnippet(&sb, p, file, d.Primary, opts.Context)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := knownFile(fs, n.Span)
			fmt.Fprintf(&sb, "  %s: %s (%s)\n", p.note.Sprint("note"), n.Msg, location(nf, n.Span))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(f *source.File, sp source.Span) string {
	if f == nil {
		return "<unknown>"
	}
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", f.Path, pos.Line, pos.Col)
}

// writeSnippet prints the primary line with up to context preceding lines
// and a caret underline. Columns are display cells, so wide runes line up.
func writeSnippet(sb *strings.Builder, p palette, f *source.File, sp source.Span, context int) {
	start := f.Position(sp.Start)
	first := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	width := len(fmt.Sprint(start.Line))
	for line := first; line <= start.Line; line++ {
		fmt.Fprintf(sb, " %s %s\n", p.gutter.Sprintf("%*d |", width, line), expandTabs(lineText(f, line)))
	}

	lineStart, lineEnd := lineBounds(f, start.Line)
	prefix := f.Text(source.Span{File: f.ID, Start: lineStart, End: sp.Start})
	end := min(max(sp.End, sp.Start), lineEnd)
	marked := f.Text(source.Span{File: f.ID, Start: sp.Start, End: end})
	n := max(runewidth.StringWidth(marked), 1)
	underline := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(sb, " %s %s%s\n", p.gutter.Sprintf("%*s |", width, ""),
		strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix))), p.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
