package ast

import (
	"quill/internal/source"
	"quill/internal/token"
)

type MemberKind uint8

const (
	// MemberFunc is a function declaration.
	MemberFunc MemberKind = iota
	// MemberGlobalStmt wraps a statement written at file level.
	MemberGlobalStmt
)

func (k MemberKind) String() string {
	switch k {
	case MemberFunc:
		return "FunctionDeclaration"
	case MemberGlobalStmt:
		return "GlobalStatement"
	default:
		return "Member(?)"
	}
}

type Member struct {
	Kind    MemberKind
	Span    source.Span
	Payload PayloadID
}

// TypeClause is an optional ": name" annotation. Present is false when the
// source has no colon; the name may still be forged after a colon.
type TypeClause struct {
	Present bool
	Colon   token.Token
	Name    token.Token
}

type FuncParam struct {
	Name token.Token
	Type TypeClause
}

type FuncDecl struct {
	Keyword token.Token
	Name    token.Token
	Params  []FuncParam
	Result  TypeClause
	Body    StmtID // StmtBlock
}

type GlobalStmt struct {
	Stmt StmtID
}

type Members struct {
	Arena   *Arena[Member]
	Funcs   *Arena[FuncDecl]
	Globals *Arena[GlobalStmt]
}

func NewMembers(capHint uint) *Members {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Members{
		Arena:   NewArena[Member](capHint),
		Funcs:   NewArena[FuncDecl](capHint),
		Globals: NewArena[GlobalStmt](capHint),
	}
}

func (m *Members) Get(id MemberID) *Member {
	return m.Arena.Get(uint32(id))
}

func (m *Members) NewFunc(sp source.Span, decl FuncDecl) MemberID {
	decl.Params = append([]FuncParam(nil), decl.Params...)
	payload := m.Funcs.Allocate(decl)
	return MemberID(m.Arena.Allocate(Member{Kind: MemberFunc, Span: sp, Payload: PayloadID(payload)}))
}

// Func returns the function data for the given member ID.
func (m *Members) Func(id MemberID) (*FuncDecl, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberFunc {
		return nil, false
	}
	return m.Funcs.Get(uint32(member.Payload)), true
}

func (m *Members) NewGlobal(sp source.Span, stmt StmtID) MemberID {
	payload := m.Globals.Allocate(GlobalStmt{Stmt: stmt})
	return MemberID(m.Arena.Allocate(Member{Kind: MemberGlobalStmt, Span: sp, Payload: PayloadID(payload)}))
}

func (m *Members) Global(id MemberID) (*GlobalStmt, bool) {
	member := m.Get(id)
	if member == nil || member.Kind != MemberGlobalStmt {
		return nil, false
	}
	return m.Globals.Get(uint32(member.Payload)), true
}
