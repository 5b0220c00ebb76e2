package bound

import (
	"quill/internal/diag"
	"quill/internal/symbols"
)

// Tree is the frozen output of binding one compilation unit.
type Tree struct {
	Table *symbols.Table
	Root  symbols.ScopeID
	// Functions holds one StmtFunction per user-declared function, in
	// declaration order.
	Functions []*Stmt
	// Globals lists global variables in declaration order.
	Globals []symbols.SymbolID
	// Statements are the global statements in source order.
	Statements []*Stmt
	// Bag collects every diagnostic of the compilation, stage ordered.
	Bag *diag.Bag
}

// Function finds the bound definition of a user function symbol.
func (t *Tree) Function(sym symbols.SymbolID) (*Stmt, bool) {
	for _, fn := range t.Functions {
		if fn.Data.(FunctionData).Symbol == sym {
			return fn, true
		}
	}
	return nil, false
}

// Walk visits every statement and expression of the tree in source order:
// global statements first, then function bodies. Returning false from a
// callback prunes that subtree.
func (t *Tree) Walk(stmt func(*Stmt) bool, expr func(*Expr) bool) {
	for _, s := range t.Statements {
		WalkStmt(s, stmt, expr)
	}
	for _, f := range t.Functions {
		WalkStmt(f, stmt, expr)
	}
}

// WalkStmt is the single dispatch point over statement kinds.
//
//nolint:errcheck // Type assertions are checked by construction
func WalkStmt(s *Stmt, stmt func(*Stmt) bool, expr func(*Expr) bool) {
	if s == nil || (stmt != nil && !stmt(s)) {
		return
	}
	switch s.Kind {
	case StmtBlock:
		for _, inner := range s.Data.(BlockData).Stmts {
			WalkStmt(inner, stmt, expr)
		}
	case StmtVarDecl:
		WalkExpr(s.Data.(VarDeclData).Init, expr)
	case StmtExpr:
		WalkExpr(s.Data.(ExprStmtData).Expr, expr)
	case StmtIf:
		data := s.Data.(IfData)
		WalkExpr(data.Cond, expr)
		WalkStmt(data.Then, stmt, expr)
		WalkStmt(data.Else, stmt, expr)
	case StmtReturn:
		WalkExpr(s.Data.(ReturnData).Value, expr)
	case StmtFunction:
		WalkStmt(s.Data.(FunctionData).Body, stmt, expr)
	case StmtGoto, StmtLabel, StmtInvalid:
	}
}

// WalkExpr is the single dispatch point over expression kinds.
//
//nolint:errcheck // Type assertions are checked by construction
func WalkExpr(e *Expr, expr func(*Expr) bool) {
	if e == nil || (expr != nil && !expr(e)) {
		return
	}
	switch e.Kind {
	case ExprAssignment:
		WalkExpr(e.Data.(AssignmentData).Value, expr)
	case ExprInvoke:
		for _, a := range e.Data.(InvokeData).Args {
			WalkExpr(a, expr)
		}
	case ExprConversion:
		WalkExpr(e.Data.(ConversionData).Operand, expr)
	case ExprLiteral, ExprVariable, ExprInvalid:
	}
}
