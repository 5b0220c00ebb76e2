package ast

import (
	"quill/internal/source"
	"quill/internal/token"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtExpr
	StmtIf
	StmtReturn
	StmtGoto
	StmtLabel
)

var stmtKindNames = [...]string{
	StmtBlock:   "Block",
	StmtVarDecl: "VariableDeclaration",
	StmtExpr:    "ExpressionStatement",
	StmtIf:      "If",
	StmtReturn:  "Return",
	StmtGoto:    "Goto",
	StmtLabel:   "Label",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Open  token.Token
	Stmts []StmtID
	Close token.Token
}

// VarDeclStmt covers both 'var' and 'let'; ReadOnly is set for 'let'.
type VarDeclStmt struct {
	Keyword  token.Token
	ReadOnly bool
	Name     token.Token
	Type     TypeClause
	Init     ExprID // NoExprID when absent
}

type ExprStmt struct {
	Expr ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID when absent
}

type ReturnStmt struct {
	Keyword token.Token
	Value   ExprID // NoExprID for a bare return
}

type GotoStmt struct {
	Label token.Token
}

type LabelStmt struct {
	Name token.Token
}
