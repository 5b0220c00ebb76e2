//nolint:errcheck // Type assertions are checked by construction
package bound

import (
	"fmt"
	"io"
	"strings"

	"quill/internal/symbols"
	"quill/internal/types"
)

// Printer dumps a bound tree as indented text, one node per line.
type Printer struct {
	w      io.Writer
	table  *symbols.Table
	indent int
	err    error
}

func NewPrinter(w io.Writer, table *symbols.Table) *Printer {
	return &Printer{w: w, table: table}
}

// Dump writes the whole tree: global variables, global statements, then
// function definitions.
func Dump(w io.Writer, t *Tree) error {
	p := NewPrinter(w, t.Table)
	if len(t.Globals) > 0 {
		p.printf("globals\n")
		p.indent++
		for _, g := range t.Globals {
			p.printIndent()
			p.printf("%s\n", p.variable(g))
		}
		p.indent--
	}
	for _, s := range t.Statements {
		p.PrintStmt(s)
	}
	for _, f := range t.Functions {
		p.PrintStmt(f)
	}
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printIndent() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) name(id symbols.SymbolID) string {
	if n := p.table.Name(id); n != "" {
		return n
	}
	return fmt.Sprintf("<sym %d>", id)
}

func (p *Printer) variable(id symbols.SymbolID) string {
	sym := p.table.Symbols.Get(id)
	if sym == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%s: %s", p.name(id), sym.Type)
	if sym.ReadOnly() {
		s += " readonly"
	}
	return s
}

// signature renders a function symbol as "name(int,double): bool".
func (p *Printer) signature(id symbols.SymbolID) string {
	sym := p.table.Symbols.Get(id)
	if sym == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s): %s", p.name(id), symbols.Signature(sym.Params), sym.Type)
}

// PrintStmt prints s and its children.
func (p *Printer) PrintStmt(s *Stmt) {
	if s == nil {
		return
	}
	p.printIndent()
	p.printf("%s", s.Kind)
	switch s.Kind {
	case StmtBlock:
		p.printf("\n")
		p.nested(func() {
			for _, inner := range s.Data.(BlockData).Stmts {
				p.PrintStmt(inner)
			}
		})
	case StmtVarDecl:
		data := s.Data.(VarDeclData)
		p.printf(" %s\n", p.variable(data.Symbol))
		p.nested(func() { p.PrintExpr(data.Init) })
	case StmtExpr:
		p.printf("\n")
		p.nested(func() { p.PrintExpr(s.Data.(ExprStmtData).Expr) })
	case StmtIf:
		data := s.Data.(IfData)
		p.printf("\n")
		p.nested(func() {
			p.PrintExpr(data.Cond)
			p.PrintStmt(data.Then)
			if data.Else != nil {
				p.printIndent()
				p.printf("else\n")
				p.PrintStmt(data.Else)
			}
		})
	case StmtReturn:
		p.printf("\n")
		if v := s.Data.(ReturnData).Value; v != nil {
			p.nested(func() { p.PrintExpr(v) })
		}
	case StmtGoto:
		data := s.Data.(*GotoData)
		if data.Label.IsValid() {
			p.printf(" %s\n", data.Name)
		} else {
			p.printf(" %s (unresolved)\n", data.Name)
		}
	case StmtLabel:
		p.printf(" %s\n", p.name(s.Data.(LabelData).Symbol))
	case StmtFunction:
		data := s.Data.(FunctionData)
		p.printf(" %s\n", p.signature(data.Symbol))
		p.nested(func() {
			for _, param := range data.Params {
				p.printIndent()
				p.printf("Parameter %s\n", p.variable(param))
			}
			p.PrintStmt(data.Body)
		})
	default:
		p.printf("\n")
	}
}

// PrintExpr prints e and its operands; every line ends with ": type".
func (p *Printer) PrintExpr(e *Expr) {
	if e == nil {
		return
	}
	p.printIndent()
	p.printf("%s", e.Kind)
	switch e.Kind {
	case ExprLiteral:
		p.printf(" %s: %s\n", e.Data.(LiteralData).Value, e.Type)
	case ExprVariable:
		p.printf(" %s: %s\n", p.name(e.Data.(VariableData).Symbol), e.Type)
	case ExprAssignment:
		data := e.Data.(AssignmentData)
		p.printf(" %s: %s\n", p.name(data.Symbol), e.Type)
		p.nested(func() { p.PrintExpr(data.Value) })
	case ExprInvoke:
		data := e.Data.(InvokeData)
		p.printf(" %s\n", p.signature(data.Function))
		p.nested(func() {
			for _, a := range data.Args {
				p.PrintExpr(a)
			}
		})
	case ExprConversion:
		data := e.Data.(ConversionData)
		p.printf(" %s: %s\n", data.Conversion, e.Type)
		p.nested(func() { p.PrintExpr(data.Operand) })
	default:
		p.printf(": %s\n", types.Invalid)
	}
}

func (p *Printer) nested(fn func()) {
	p.indent++
	fn()
	p.indent--
}
