package ast

import (
	"quill/internal/source"
	"quill/internal/token"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprLiteral is a number, string or boolean literal.
	ExprLiteral ExprKind = iota
	// ExprName is a bare identifier in value position.
	ExprName
	// ExprAssign is "name = value".
	ExprAssign
	ExprUnary
	ExprBinary
	// ExprParen keeps explicit parentheses for faithful dumps.
	ExprParen
	// ExprInvoke is "name(args)"; casts share this shape.
	ExprInvoke
)

var exprKindNames = [...]string{
	ExprLiteral: "Literal",
	ExprName:    "Name",
	ExprAssign:  "Assignment",
	ExprUnary:   "Unary",
	ExprBinary:  "Binary",
	ExprParen:   "Parenthesized",
	ExprInvoke:  "Invoke",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr represents an expression node in the parse tree.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LiteralExpr keeps the token; its Value is empty for malformed numbers
// and forged placeholders.
type LiteralExpr struct {
	Token token.Token
}

type NameExpr struct {
	Name token.Token
}

type AssignExpr struct {
	Name  token.Token
	Eq    token.Token
	Value ExprID
}

type UnaryExpr struct {
	Op      token.Token
	Operand ExprID
}

type BinaryExpr struct {
	Left  ExprID
	Op    token.Token
	Right ExprID
}

type ParenExpr struct {
	Inner ExprID
}

type InvokeExpr struct {
	Name token.Token
	Args []ExprID
}
