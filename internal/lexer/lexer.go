package lexer

import (
	"unicode/utf8"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// Lexer turns one file into a token stream. Trivia are returned as tokens,
// so the stream covers every byte of the source exactly once.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	line   uint32 // позиция курсора, 1-based
	col    uint32
}

func New(file *source.File, opts Options) *Lexer {
	if opts.MaxTokenLength == 0 {
		opts.MaxTokenLength = DefaultMaxTokenLength
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		line:   1,
		col:    1,
	}
}

// Next возвращает следующий токен, включая trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return lx.finish(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case lx.cursor.Off == 0 && source.HasBOM(lx.file.Content):
		tok = lx.scanBOM()

	case isSpace(ch):
		tok = lx.scanWhitespace()

	case ch == '/' || ch == '*':
		// комментарий, "*/" вне комментария, либо обычный оператор
		if t, ok := lx.scanComment(); ok {
			tok = t
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8.RuneSelf:
		// возможный Unicode идентификатор; иначе недопустимый символ
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > lx.opts.MaxTokenLength {
		tok = lx.tooLong(tok)
	}
	return lx.finish(tok)
}

// finish fills category and line/column, then advances the position
// counters over the token text.
func (lx *Lexer) finish(tok token.Token) token.Token {
	switch tok.Kind {
	case token.Whitespace, token.Comment:
		tok.Category = token.CategoryTrivia
	case token.Invalid:
		tok.Category = token.CategoryInvalid
	default:
		tok.Category = token.CategoryTerminal
	}
	tok.Pos = source.LineCol{Line: lx.line, Col: lx.col}
	for _, r := range tok.Text {
		if r == '\n' {
			lx.line++
			lx.col = 1
			continue
		}
		lx.col++
	}
	return tok
}

// tooLong turns an oversized token into an Invalid one that absorbs the rest
// of the file, so scanning stops without losing source text.
func (lx *Lexer) tooLong(tok token.Token) token.Token {
	lx.cursor.Off = lx.cursor.limit()
	sp := source.Span{File: tok.Span.File, Start: tok.Span.Start, End: lx.cursor.Off}
	lx.errLex(diag.LexTokenTooLong, tok.Span, "token too long")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// emit builds a token of kind k covering everything since start.
func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
