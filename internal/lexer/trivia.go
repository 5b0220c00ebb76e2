package lexer

import (
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// scanWhitespace собирает пробелы и переводы строк в один trivia-токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.EatWhile(isSpace)
	return lx.emit(token.Whitespace, start)
}

// scanBOM keeps a leading byte order mark in the stream as trivia.
func (lx *Lexer) scanBOM() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += uint32(len(source.BOM))
	return lx.emit(token.Whitespace, start)
}

// scanComment handles "//", "/*" and a stray "*/". ok is false when the
// cursor is at an ordinary '/' or '*' operator.
func (lx *Lexer) scanComment() (token.Token, bool) {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok {
		return token.Token{}, false
	}

	switch {
	case b0 == '/' && b1 == '/':
		lx.cursor.EatWhile(func(b byte) bool { return b != '\n' })
		return lx.emit(token.Comment, start), true

	case b0 == '/' && b1 == '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		// без вложенности: закрывает первый же "*/"
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				return lx.emit(token.Comment, start), true
			}
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Comment, start)
		lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated comment")
		return tok, true

	case b0 == '*' && b1 == '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		tok := lx.emit(token.Comment, start)
		lx.errLex(diag.LexUnexpectedCommentEnd, tok.Span, "unexpected end of comment")
		return tok, true
	}
	return token.Token{}, false
}
