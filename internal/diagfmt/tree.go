package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"quill/internal/ast"
	"quill/internal/token"
)

// FormatTree prints the parse tree of a file, one node per line, children
// indented by two spaces. Forged tokens print as <missing>.
func FormatTree(w io.Writer, b *ast.Builder, fileID ast.FileID) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	tp := &treePrinter{b: b}
	tp.line("File")
	tp.depth++
	for _, id := range file.Members {
		tp.member(id)
	}
	_, err := io.WriteString(w, tp.sb.String())
	return err
}

type treePrinter struct {
	b     *ast.Builder
	sb    strings.Builder
	depth int
}

func (tp *treePrinter) line(format string, args ...any) {
	tp.sb.WriteString(strings.Repeat("  ", tp.depth))
	fmt.Fprintf(&tp.sb, format, args...)
	tp.sb.WriteByte('\n')
}

func (tp *treePrinter) nested(fn func()) {
	tp.depth++
	fn()
	tp.depth--
}

func name(tok token.Token) string {
	if tok.Forged {
		return "<missing>"
	}
	return tok.Text
}

func typeSuffix(tc ast.TypeClause) string {
	if !tc.Present {
		return ""
	}
	return ": " + name(tc.Name)
}

func (tp *treePrinter) member(id ast.MemberID) {
	m := tp.b.Members.Get(id)
	if decl, ok := tp.b.Members.Func(id); ok {
		tp.line("%s %s%s", m.Kind, name(decl.Name), typeSuffix(decl.Result))
		tp.nested(func() {
			for _, p := range decl.Params {
				tp.line("Parameter %s%s", name(p.Name), typeSuffix(p.Type))
			}
			tp.stmt(decl.Body)
		})
		return
	}
	if g, ok := tp.b.Members.Global(id); ok {
		tp.line("%s", m.Kind)
		tp.nested(func() { tp.stmt(g.Stmt) })
	}
}

func (tp *treePrinter) stmt(id ast.StmtID) {
	s := tp.b.Stmts.Get(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case ast.StmtBlock:
		block, _ := tp.b.Stmts.Block(id)
		tp.line("Block")
		tp.nested(func() {
			for _, inner := range block.Stmts {
				tp.stmt(inner)
			}
		})
	case ast.StmtVarDecl:
		decl, _ := tp.b.Stmts.VarDecl(id)
		tp.line("%s %s %s%s", s.Kind, decl.Keyword.Kind.Spelling(), name(decl.Name), typeSuffix(decl.Type))
		tp.nested(func() { tp.expr(decl.Init) })
	case ast.StmtExpr:
		es, _ := tp.b.Stmts.Expr(id)
		tp.line("%s", s.Kind)
		tp.nested(func() { tp.expr(es.Expr) })
	case ast.StmtIf:
		ifs, _ := tp.b.Stmts.If(id)
		tp.line("If")
		tp.nested(func() {
			tp.expr(ifs.Cond)
			tp.stmt(ifs.Then)
			if ifs.Else.IsValid() {
				tp.line("Else")
				tp.nested(func() { tp.stmt(ifs.Else) })
			}
		})
	case ast.StmtReturn:
		ret, _ := tp.b.Stmts.Return(id)
		tp.line("Return")
		tp.nested(func() { tp.expr(ret.Value) })
	case ast.StmtGoto:
		g, _ := tp.b.Stmts.Goto(id)
		tp.line("Goto %s", name(g.Label))
	case ast.StmtLabel:
		l, _ := tp.b.Stmts.Label(id)
		tp.line("Label %s", name(l.Name))
	}
}

func (tp *treePrinter) expr(id ast.ExprID) {
	e := tp.b.Exprs.Get(id)
	if e == nil {
		return
	}
	switch e.Kind {
	case ast.ExprLiteral:
		lit, _ := tp.b.Exprs.Literal(id)
		if lit.Token.Forged {
			tp.line("Literal <missing>")
		} else {
			tp.line("Literal %s", lit.Token.Text)
		}
	case ast.ExprName:
		n, _ := tp.b.Exprs.Name(id)
		tp.line("Name %s", name(n.Name))
	case ast.ExprAssign:
		a, _ := tp.b.Exprs.Assign(id)
		tp.line("Assign %s", name(a.Name))
		tp.nested(func() { tp.expr(a.Value) })
	case ast.ExprUnary:
		u, _ := tp.b.Exprs.Unary(id)
		tp.line("Unary %s", u.Op.Kind.Spelling())
		tp.nested(func() { tp.expr(u.Operand) })
	case ast.ExprBinary:
		bin, _ := tp.b.Exprs.Binary(id)
		tp.line("Binary %s", bin.Op.Kind.Spelling())
		tp.nested(func() {
			tp.expr(bin.Left)
			tp.expr(bin.Right)
		})
	case ast.ExprParen:
		p, _ := tp.b.Exprs.Paren(id)
		tp.line("Paren")
		tp.nested(func() { tp.expr(p.Inner) })
	case ast.ExprInvoke:
		call, _ := tp.b.Exprs.Invoke(id)
		tp.line("Invoke %s", name(call.Name))
		tp.nested(func() {
			for _, a := range call.Args {
				tp.expr(a)
			}
		})
	}
}
