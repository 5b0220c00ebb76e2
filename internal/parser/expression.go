package parser

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// Assignment is recognised by `IDENT '='` lookahead and is right-associative.
func (p *Parser) parseExpr() ast.ExprID {
	defer p.leave()
	if !p.enter() {
		return p.placeholder()
	}
	if p.at(token.Ident) && p.peekN(1).Kind == token.Assign {
		name := p.advance()
		eq := p.advance()
		value := p.parseExpr()
		span := name.Span.Cover(p.arenas.Exprs.Get(value).Span)
		return p.arenas.Exprs.NewAssign(span, name, eq, value)
	}
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr — precedence climbing с минимальным приоритетом parent.
// A unary operator binds if its precedence is at least parent; a binary
// operator only if strictly greater, which keeps chains left-associative.
func (p *Parser) parseBinaryExpr(parent int) ast.ExprID {
	defer p.leave()
	if !p.enter() {
		return p.placeholder()
	}

	var left ast.ExprID
	if prec := unaryPrecedence(p.peek().Kind); prec != 0 && prec >= parent {
		op := p.advance()
		operand := p.parseBinaryExpr(prec)
		span := op.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		left = p.arenas.Exprs.NewUnary(span, op, operand)
	} else {
		left = p.parsePrimaryExpr()
	}

	folds := 0
	for {
		prec := binaryPrecedence(p.peek().Kind)
		if prec == 0 || prec <= parent {
			break
		}
		op := p.advance()
		right := p.parseBinaryExpr(prec)
		// дальше цепочка только потребляется, дерево не растёт
		if p.depth+folds >= MaxDepth {
			p.tooDeep(op.Span)
			continue
		}
		folds++
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, left, op, right)
	}
	return left
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	switch {
	case tok.Kind == token.LParen:
		open := p.advance()
		inner := p.parseExpr()
		p.match(token.RParen)
		return p.arenas.Exprs.NewParen(p.spanFrom(open), inner)
	case tok.IsLiteral():
		return p.arenas.Exprs.NewLiteral(p.advance())
	case tok.Kind == token.Ident:
		if p.peekN(1).Kind == token.LParen {
			return p.parseInvokeExpr()
		}
		return p.arenas.Exprs.NewName(p.advance())
	default:
		p.report(diag.SynExpectExpression, tok.Span, fmt.Sprintf("expected expression, got %s", describe(tok)))
		return p.placeholder()
	}
}

// parseInvokeExpr разбирает `name(args)`; приведение типа `int(x)` имеет ту же форму.
func (p *Parser) parseInvokeExpr() ast.ExprID {
	name := p.advance()
	p.match(token.LParen)
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.pos
		args = append(args, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.pos == start || !p.at(token.RParen) {
			break
		}
	}
	p.match(token.RParen)
	return p.arenas.Exprs.NewInvoke(p.spanFrom(name), name, args)
}

// placeholder is a forged literal without a value; the binder treats it as
// already diagnosed.
func (p *Parser) placeholder() ast.ExprID {
	return p.arenas.Exprs.NewLiteral(token.Forge(token.IntLit, p.peek()))
}
