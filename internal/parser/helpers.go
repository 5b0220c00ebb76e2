package parser

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает следующий токен и обновляет lastSpan. EOF is never
// consumed.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// match consumes a token of kind k. On mismatch it reports and returns a
// zero-width forged token of kind k at the current position.
func (p *Parser) match(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	cur := p.peek()
	p.report(diag.SynUnexpectedToken, cur.Span,
		fmt.Sprintf("unexpected token %s, expected %s", describe(cur), k.Describe()))
	return token.Forge(k, cur)
}

func describe(tok token.Token) string {
	if tok.Kind.Spelling() == "" && tok.Text != "" && tok.Kind != token.EOF {
		return fmt.Sprintf("%s '%s'", tok.Kind.Describe(), tok.Text)
	}
	return tok.Kind.Describe()
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start token.Token) source.Span {
	sp := start.Span
	if p.lastSpan.End > sp.End {
		sp.End = p.lastSpan.End
	}
	return sp
}

// report emits a syntax error. Only the first error at a given offset is
// kept so one bad token does not cascade.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.hasErr && p.errAt == sp.Start {
		return
	}
	p.hasErr = true
	p.errAt = sp.Start
	if p.opts.Reporter == nil || p.opts.Enough() {
		return // нет reporter или достигли максимального количества ошибок
	}
	p.opts.CurrentErrors++
	p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
