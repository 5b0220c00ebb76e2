package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"quill/internal/source"
	"quill/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Category string      `json:"category"`
	Text     string      `json:"text,omitempty"`
	Value    string      `json:"value,omitempty"`
	Span     source.Span `json:"span"`
	Line     uint32      `json:"line"`
	Col      uint32      `json:"col"`
}

// FormatTokensPretty выводит токены по одному на строку:
//
//	  1: KwVar           "var" at 1:1-1:4
//
// Trivia is skipped unless withTrivia is set.
func FormatTokensPretty(w io.Writer, tokens []token.Token, f *source.File, withTrivia bool) error {
	var sb strings.Builder
	n := 0
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}
		n++
		fmt.Fprintf(&sb, "%3d: %-15s", n, tok.Kind)
		if tok.Text != "" && tok.Kind != token.Whitespace {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		start, end := tok.Pos, tok.Pos
		if f != nil {
			start, end = f.Position(tok.Span.Start), f.Position(tok.Span.End)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if tok.Value.Kind != token.NoValue {
			fmt.Fprintf(&sb, " = %s", tok.Value)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokensJSON выводит токены в JSON формате.
func FormatTokensJSON(w io.Writer, tokens []token.Token, withTrivia bool) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsTrivia() && !withTrivia {
			continue
		}
		to := TokenOutput{
			Kind:     tok.Kind.String(),
			Category: tok.Category.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Line:     tok.Pos.Line,
			Col:      tok.Pos.Col,
		}
		if tok.Value.Kind != token.NoValue {
			to.Value = tok.Value.String()
		}
		out = append(out, to)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
