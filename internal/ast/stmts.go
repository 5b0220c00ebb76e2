package ast

import (
	"quill/internal/source"
)

// Stmts manages allocation of statements and their per-kind payloads.
type Stmts struct {
	Arena    *Arena[Stmt]
	Blocks   *Arena[BlockStmt]
	VarDecls *Arena[VarDeclStmt]
	Exprs    *Arena[ExprStmt]
	Ifs      *Arena[IfStmt]
	Returns  *Arena[ReturnStmt]
	Gotos    *Arena[GotoStmt]
	Labels   *Arena[LabelStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Blocks:   NewArena[BlockStmt](capHint >> 2),
		VarDecls: NewArena[VarDeclStmt](capHint >> 2),
		Exprs:    NewArena[ExprStmt](capHint >> 2),
		Ifs:      NewArena[IfStmt](capHint >> 3),
		Returns:  NewArena[ReturnStmt](capHint >> 3),
		Gotos:    NewArena[GotoStmt](capHint >> 4),
		Labels:   NewArena[LabelStmt](capHint >> 4),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind {
		return 0, false
	}
	return uint32(stmt.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, data BlockStmt) StmtID {
	data.Stmts = append([]StmtID(nil), data.Stmts...)
	return s.new(StmtBlock, span, s.Blocks.Allocate(data))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, data VarDeclStmt) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(data))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclStmt, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, data ReturnStmt) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(data))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewGoto(span source.Span, data GotoStmt) StmtID {
	return s.new(StmtGoto, span, s.Gotos.Allocate(data))
}

func (s *Stmts) Goto(id StmtID) (*GotoStmt, bool) {
	p, ok := s.payload(id, StmtGoto)
	if !ok {
		return nil, false
	}
	return s.Gotos.Get(p), true
}

func (s *Stmts) NewLabel(span source.Span, data LabelStmt) StmtID {
	return s.new(StmtLabel, span, s.Labels.Allocate(data))
}

func (s *Stmts) Label(id StmtID) (*LabelStmt, bool) {
	p, ok := s.payload(id, StmtLabel)
	if !ok {
		return nil, false
	}
	return s.Labels.Get(p), true
}
