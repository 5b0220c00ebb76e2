package lexer

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Tokenize runs the lexer to EOF and returns the full stream, trivia
// included, ending with exactly one EOF token.
//
// A panic inside the lexer is recovered here: it is reported once as
// LexInternal and the stream is empty.
func Tokenize(file *source.File, opts Options) (tokens []token.Token) {
	defer func() {
		if r := recover(); r != nil {
			var sp source.Span
			if file != nil {
				sp = source.Span{File: file.ID}
			}
			if opts.Reporter != nil {
				opts.Reporter.Report(diag.LexInternal, diag.SevError, sp, fmt.Sprintf("internal lexer error: %v", r), nil)
			}
			tokens = nil
		}
	}()

	lx := New(file, opts)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
