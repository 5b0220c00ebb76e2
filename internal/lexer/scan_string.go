package lexer

import (
	"quill/internal/diag"
	"quill/internal/token"
)

// "..." — обратный слеш переключает флаг экранирования, поэтому следующий
// символ (в том числе кавычка) считается содержимым. Escape-последовательности
// не декодируются: значение — сырой текст между кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	contentStart := lx.cursor.Off
	escaping := false

	for {
		if lx.cursor.EOF() {
			return lx.unterminatedString(start, contentStart)
		}
		b := lx.cursor.Peek()
		if b == '\n' {
			// перевод строки не поглощаем: он уйдёт в trivia
			return lx.unterminatedString(start, contentStart)
		}
		if escaping {
			escaping = false
			lx.bumpRune()
			continue
		}
		switch b {
		case '\\':
			escaping = true
			lx.cursor.Bump()
		case '"':
			value := string(lx.file.Content[contentStart:lx.cursor.Off])
			lx.cursor.Bump()
			tok := lx.emit(token.StringLit, start)
			tok.Value = token.StringVal(value)
			return tok
		default:
			lx.bumpRune()
		}
	}
}

func (lx *Lexer) unterminatedString(start Mark, contentStart uint32) token.Token {
	tok := lx.emit(token.StringLit, start)
	tok.Value = token.StringVal(string(lx.file.Content[contentStart:lx.cursor.Off]))
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string")
	return tok
}
