package parser

import (
	"quill/internal/ast"
	"quill/internal/token"
)

// parseFunc: 'func' IDENT '(' [param {',' param}] ')' [':' IDENT] block
func (p *Parser) parseFunc() ast.MemberID {
	kw := p.advance()
	decl := ast.FuncDecl{
		Keyword: kw,
		Name:    p.match(token.Ident),
	}
	decl.Params = p.parseParams()
	decl.Result = p.parseTypeClause()
	decl.Body = p.parseBlock()
	return p.arenas.Members.NewFunc(p.spanFrom(kw), decl)
}

func (p *Parser) parseParams() []ast.FuncParam {
	p.match(token.LParen)
	var params []ast.FuncParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.pos
		name := p.match(token.Ident)
		colon := p.match(token.Colon)
		params = append(params, ast.FuncParam{
			Name: name,
			Type: ast.TypeClause{Present: true, Colon: colon, Name: p.match(token.Ident)},
		})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.pos == start || !p.at(token.RParen) {
			break
		}
	}
	p.match(token.RParen)
	return params
}
