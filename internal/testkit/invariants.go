// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"quill/internal/ast"
	"quill/internal/bound"
	"quill/internal/source"
	"quill/internal/types"
)

// CheckSpanInvariants verifies a parse tree of well-formed input:
// 1) file.Span lies within the file content and points at sf
// 2) every member span is inside file.Span
// 3) every child node span is inside its parent span
// Zero-width spans (forged tokens, placeholders) are exempt from 2 and 3.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return errors.New("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return errors.New("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	c := spanChecker{b: b}
	for _, id := range f.Members {
		m := b.Members.Get(id)
		if m == nil {
			return fmt.Errorf("nil member for id=%d", id)
		}
		c.inside("member", m.Span, f.Span)
		if decl, ok := b.Members.Func(id); ok {
			c.stmt(decl.Body, m.Span)
		} else if g, ok := b.Members.Global(id); ok {
			c.stmt(g.Stmt, m.Span)
		}
	}
	return errors.Join(c.errs...)
}

type spanChecker struct {
	b    *ast.Builder
	errs []error
}

func (c *spanChecker) inside(what string, sp, parent source.Span) {
	if sp.Empty() {
		return
	}
	if !parent.Contains(sp) {
		c.errs = append(c.errs, fmt.Errorf("%s span %v is outside parent %v", what, sp, parent))
	}
}

func (c *spanChecker) stmt(id ast.StmtID, parent source.Span) {
	s := c.b.Stmts.Get(id)
	if s == nil {
		return
	}
	c.inside(s.Kind.String(), s.Span, parent)
	switch s.Kind {
	case ast.StmtBlock:
		block, _ := c.b.Stmts.Block(id)
		for _, inner := range block.Stmts {
			c.stmt(inner, s.Span)
		}
	case ast.StmtVarDecl:
		decl, _ := c.b.Stmts.VarDecl(id)
		c.expr(decl.Init, s.Span)
	case ast.StmtExpr:
		es, _ := c.b.Stmts.Expr(id)
		c.expr(es.Expr, s.Span)
	case ast.StmtIf:
		ifs, _ := c.b.Stmts.If(id)
		c.expr(ifs.Cond, s.Span)
		c.stmt(ifs.Then, s.Span)
		c.stmt(ifs.Else, s.Span)
	case ast.StmtReturn:
		ret, _ := c.b.Stmts.Return(id)
		c.expr(ret.Value, s.Span)
	case ast.StmtGoto, ast.StmtLabel:
	}
}

func (c *spanChecker) expr(id ast.ExprID, parent source.Span) {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return
	}
	c.inside(e.Kind.String(), e.Span, parent)
	switch e.Kind {
	case ast.ExprAssign:
		a, _ := c.b.Exprs.Assign(id)
		c.expr(a.Value, e.Span)
	case ast.ExprUnary:
		u, _ := c.b.Exprs.Unary(id)
		c.expr(u.Operand, e.Span)
	case ast.ExprBinary:
		bin, _ := c.b.Exprs.Binary(id)
		c.expr(bin.Left, e.Span)
		c.expr(bin.Right, e.Span)
	case ast.ExprParen:
		p, _ := c.b.Exprs.Paren(id)
		c.expr(p.Inner, e.Span)
	case ast.ExprInvoke:
		call, _ := c.b.Exprs.Invoke(id)
		for _, a := range call.Args {
			c.expr(a, e.Span)
		}
	case ast.ExprLiteral, ast.ExprName:
	}
}

// CheckTypeTotality verifies that every bound expression carries a type.
// With strict set, Invalid types and Invalid nodes are errors too: a
// program that bound without diagnostics must have none.
func CheckTypeTotality(tree *bound.Tree, strict bool) error {
	if tree == nil {
		return errors.New("nil tree")
	}
	var errs []error
	tree.Walk(func(s *bound.Stmt) bool {
		if strict && s.Kind == bound.StmtInvalid {
			errs = append(errs, fmt.Errorf("invalid statement at %v", s.Span))
		}
		return true
	}, func(e *bound.Expr) bool {
		switch {
		case e.Type == types.NoTypeID:
			errs = append(errs, fmt.Errorf("%s at %v has no type", e.Kind, e.Span))
		case strict && (e.Kind == bound.ExprInvalid || e.Type == types.Invalid):
			errs = append(errs, fmt.Errorf("%s at %v is invalid", e.Kind, e.Span))
		}
		return true
	})
	return errors.Join(errs...)
}
