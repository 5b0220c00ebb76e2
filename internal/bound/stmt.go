package bound

import (
	"quill/internal/source"
	"quill/internal/symbols"
)

// StmtKind enumerates bound statement kinds.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtVarDecl
	StmtExpr
	StmtIf
	StmtReturn
	StmtGoto
	StmtLabel
	StmtFunction
	// StmtInvalid replaces statements rejected outright (labels outside
	// functions and the like).
	StmtInvalid
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtVarDecl:
		return "VariableDeclaration"
	case StmtExpr:
		return "ExpressionStatement"
	case StmtIf:
		return "If"
	case StmtReturn:
		return "Return"
	case StmtGoto:
		return "Goto"
	case StmtLabel:
		return "Label"
	case StmtFunction:
		return "FunctionDefinition"
	case StmtInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Stmt represents a bound statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

type BlockData struct {
	Scope symbols.ScopeID
	Stmts []*Stmt
}

func (BlockData) stmtData() {}

// VarDeclData always has an initializer; a missing one is synthesized as
// the default value of the variable type.
type VarDeclData struct {
	Symbol symbols.SymbolID
	Init   *Expr
}

func (VarDeclData) stmtData() {}

type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

type IfData struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt // nil when absent
}

func (IfData) stmtData() {}

type ReturnData struct {
	Value *Expr // nil for a bare return
}

func (ReturnData) stmtData() {}

// GotoData starts unresolved when the label comes later; the fix-up pass
// fills Label in place, so it is stored by pointer. After binding, an
// invalid Label means "undefined label".
type GotoData struct {
	Name  string
	Label symbols.SymbolID
}

func (*GotoData) stmtData() {}

type LabelData struct {
	Symbol symbols.SymbolID
}

func (LabelData) stmtData() {}

type FunctionData struct {
	Symbol symbols.SymbolID
	Scope  symbols.ScopeID
	Params []symbols.SymbolID
	Body   *Stmt // StmtBlock
}

func (FunctionData) stmtData() {}

type InvalidStmtData struct{}

func (InvalidStmtData) stmtData() {}

// NewInvalidStmt builds the placeholder for a rejected statement.
func NewInvalidStmt(span source.Span) *Stmt {
	return &Stmt{Kind: StmtInvalid, Span: span, Data: InvalidStmtData{}}
}
