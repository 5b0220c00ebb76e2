package ast

import (
	"quill/internal/source"
)

type Hints struct{ Files, Members, Stmts, Exprs uint }

// Builder owns every arena of one parse. Nodes are immutable once the
// parser returns.
type Builder struct {
	Files   *Files
	Members *Members
	Stmts   *Stmts
	Exprs   *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Members == 0 {
		hints.Members = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Members: NewMembers(hints.Members),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushMember(file FileID, member MemberID) {
	f := b.Files.Get(file)
	f.Members = append(f.Members, member)
}
