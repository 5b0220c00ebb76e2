package parser

import (
	"quill/internal/ast"
	"quill/internal/token"
)

// parseStatement выбирает распознаватель по первому токену.
func (p *Parser) parseStatement() ast.StmtID {
	defer p.leave()
	if !p.enter() {
		return p.arenas.Stmts.NewExpr(p.peek().Span.ZeroAt(), p.placeholder())
	}

	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwVar, token.KwLet:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwGoto:
		return p.parseGoto()
	case token.Ident:
		// `name:` — метка; нужен второй токен
		if p.peekN(1).Kind == token.Colon {
			name := p.advance()
			p.advance()
			return p.arenas.Stmts.NewLabel(p.spanFrom(name), ast.LabelStmt{Name: name})
		}
	}
	return p.parseExprStmt()
}

func (p *Parser) parseBlock() ast.StmtID {
	open := p.match(token.LBrace)
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		stmts = append(stmts, p.parseStatement())
		p.progress(start)
	}
	closeTok := p.match(token.RBrace)
	return p.arenas.Stmts.NewBlock(p.spanFrom(open), ast.BlockStmt{
		Open:  open,
		Stmts: stmts,
		Close: closeTok,
	})
}

// parseVarDecl: ('var' | 'let') IDENT [':' IDENT] ['=' expr] ';'
func (p *Parser) parseVarDecl() ast.StmtID {
	kw := p.advance()
	data := ast.VarDeclStmt{
		Keyword:  kw,
		ReadOnly: kw.Kind == token.KwLet,
		Name:     p.match(token.Ident),
		Type:     p.parseTypeClause(),
	}
	if p.at(token.Assign) {
		p.advance()
		data.Init = p.parseExpr()
	}
	p.match(token.Semicolon)
	return p.arenas.Stmts.NewVarDecl(p.spanFrom(kw), data)
}

// parseTypeClause разбирает необязательное `: name`.
func (p *Parser) parseTypeClause() ast.TypeClause {
	if !p.at(token.Colon) {
		return ast.TypeClause{}
	}
	colon := p.advance()
	return ast.TypeClause{Present: true, Colon: colon, Name: p.match(token.Ident)}
}

func (p *Parser) parseIf() ast.StmtID {
	kw := p.advance()
	p.match(token.LParen)
	cond := p.parseExpr()
	p.match(token.RParen)
	then := p.parseStatement()
	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els = p.parseStatement()
	}
	return p.arenas.Stmts.NewIf(p.spanFrom(kw), cond, then, els)
}

func (p *Parser) parseReturn() ast.StmtID {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		value = p.parseExpr()
	}
	p.match(token.Semicolon)
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw), ast.ReturnStmt{Keyword: kw, Value: value})
}

func (p *Parser) parseGoto() ast.StmtID {
	kw := p.advance()
	label := p.match(token.Ident)
	p.match(token.Semicolon)
	return p.arenas.Stmts.NewGoto(p.spanFrom(kw), ast.GotoStmt{Label: label})
}

func (p *Parser) parseExprStmt() ast.StmtID {
	first := p.peek()
	expr := p.parseExpr()
	p.match(token.Semicolon)
	span := p.arenas.Exprs.Get(expr).Span
	if p.lastSpan.End > span.End && p.lastSpan.Start >= first.Span.Start {
		span.End = p.lastSpan.End
	}
	return p.arenas.Stmts.NewExpr(span, expr)
}
