package lexer

import (
	"quill/internal/diag"
	"quill/internal/source"
)

// DefaultMaxTokenLength bounds a single token (64 KiB).
const DefaultMaxTokenLength = 64 << 10

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// MaxTokenLength in bytes; 0 selects DefaultMaxTokenLength.
	MaxTokenLength uint32
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
