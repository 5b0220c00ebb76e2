package ast

import (
	"quill/internal/source"
	"quill/internal/token"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Literals *Arena[LiteralExpr]
	Names    *Arena[NameExpr]
	Assigns  *Arena[AssignExpr]
	Unaries  *Arena[UnaryExpr]
	Binaries *Arena[BinaryExpr]
	Parens   *Arena[ParenExpr]
	Invokes  *Arena[InvokeExpr]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Literals: NewArena[LiteralExpr](capHint >> 1),
		Names:    NewArena[NameExpr](capHint >> 1),
		Assigns:  NewArena[AssignExpr](capHint >> 3),
		Unaries:  NewArena[UnaryExpr](capHint >> 3),
		Binaries: NewArena[BinaryExpr](capHint >> 2),
		Parens:   NewArena[ParenExpr](capHint >> 3),
		Invokes:  NewArena[InvokeExpr](capHint >> 2),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

// NewLiteral creates a literal expression spanning its token.
func (e *Exprs) NewLiteral(tok token.Token) ExprID {
	return e.new(ExprLiteral, tok.Span, e.Literals.Allocate(LiteralExpr{Token: tok}))
}

func (e *Exprs) Literal(id ExprID) (*LiteralExpr, bool) {
	p, ok := e.payload(id, ExprLiteral)
	if !ok {
		return nil, false
	}
	return e.Literals.Get(p), true
}

func (e *Exprs) NewName(tok token.Token) ExprID {
	return e.new(ExprName, tok.Span, e.Names.Allocate(NameExpr{Name: tok}))
}

func (e *Exprs) Name(id ExprID) (*NameExpr, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

func (e *Exprs) NewAssign(span source.Span, name, eq token.Token, value ExprID) ExprID {
	return e.new(ExprAssign, span, e.Assigns.Allocate(AssignExpr{Name: name, Eq: eq, Value: value}))
}

func (e *Exprs) Assign(id ExprID) (*AssignExpr, bool) {
	p, ok := e.payload(id, ExprAssign)
	if !ok {
		return nil, false
	}
	return e.Assigns.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op token.Token, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(UnaryExpr{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*UnaryExpr, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, left ExprID, op token.Token, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(BinaryExpr{Left: left, Op: op, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*BinaryExpr, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	return e.new(ExprParen, span, e.Parens.Allocate(ParenExpr{Inner: inner}))
}

func (e *Exprs) Paren(id ExprID) (*ParenExpr, bool) {
	p, ok := e.payload(id, ExprParen)
	if !ok {
		return nil, false
	}
	return e.Parens.Get(p), true
}

func (e *Exprs) NewInvoke(span source.Span, name token.Token, args []ExprID) ExprID {
	payload := e.Invokes.Allocate(InvokeExpr{Name: name, Args: append([]ExprID(nil), args...)})
	return e.new(ExprInvoke, span, payload)
}

func (e *Exprs) Invoke(id ExprID) (*InvokeExpr, bool) {
	p, ok := e.payload(id, ExprInvoke)
	if !ok {
		return nil, false
	}
	return e.Invokes.Get(p), true
}
