package lexer

import (
	"strconv"

	"quill/internal/diag"
	"quill/internal/token"
)

// Поддержка: 0, 123, 0b101, 0o17, 0xFF, 1.5, 1e-3, 1.0e+10.
// Префиксы 0b/0o/0x меняют алфавит цифр и бывают только у целых.
// Неверные формы дают литерал без значения плюс диагностику.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'b', 'B':
			return lx.scanPrefixedInt(start, 2, isBin)
		case 'o', 'O':
			return lx.scanPrefixedInt(start, 8, isOct)
		case 'x', 'X':
			return lx.scanPrefixedInt(start, 16, isHex)
		}
	}

	kind := token.IntLit
	lx.cursor.EatWhile(isDec)

	// дробная часть только если за точкой цифра
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.cursor.EatWhile(isDec)
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if lx.cursor.EatWhile(isDec) == 0 {
			tok := lx.emit(kind, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "invalid literal '"+tok.Text+"': expected digit in exponent")
			return tok
		}
	}

	tok := lx.emit(kind, start)
	if kind == token.FloatLit {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			lx.errLex(diag.LexBadNumber, tok.Span, "invalid literal '"+tok.Text+"': out of range")
			return tok
		}
		tok.Value = token.FloatVal(f)
		return tok
	}
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid literal '"+tok.Text+"': out of range")
		return tok
	}
	tok.Value = token.IntVal(n)
	return tok
}

func (lx *Lexer) scanPrefixedInt(start Mark, base int, digit func(byte) bool) token.Token {
	lx.cursor.Bump() // '0'
	lx.cursor.Bump() // b/o/x
	digits := lx.cursor.EatWhile(digit)
	tok := lx.emit(token.IntLit, start)
	if digits == 0 {
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid literal '"+tok.Text+"': expected digits after prefix")
		return tok
	}
	n, err := strconv.ParseInt(tok.Text[2:], base, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, tok.Span, "invalid literal '"+tok.Text+"': out of range")
		return tok
	}
	tok.Value = token.IntVal(n)
	return tok
}
