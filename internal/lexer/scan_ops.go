package lexer

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/token"
)

// Сначала двухсимвольные операторы (одна позиция lookahead), затем
// односимвольные. Всё остальное — недопустимый символ.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	if k, ok := singleCharTokens[lx.cursor.Peek()]; ok && !lx.cursor.EOF() {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	// недопустимый символ: потребляем одну кодовую точку
	r, _ := lx.peekRune()
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("invalid character %q", r))
	return tok
}

var singleCharTokens = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'!': token.Bang,
	'=': token.Assign,
	'<': token.Lt,
	'>': token.Gt,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
}
