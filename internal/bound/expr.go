package bound

import (
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/token"
	"quill/internal/types"
)

// ExprKind enumerates bound expression kinds.
type ExprKind uint8

const (
	// ExprLiteral is a constant with its parsed value.
	ExprLiteral ExprKind = iota
	// ExprVariable reads a variable or parameter.
	ExprVariable
	// ExprAssignment stores into a variable and yields the stored value.
	ExprAssignment
	// ExprInvoke calls a function; unary and binary operators are invokes of
	// operator functions.
	ExprInvoke
	// ExprConversion converts its operand to the expression type.
	ExprConversion
	// ExprInvalid stands in for anything that failed to bind.
	ExprInvalid
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprAssignment:
		return "Assignment"
	case ExprInvoke:
		return "Invoke"
	case ExprConversion:
		return "Conversion"
	case ExprInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Expr is a bound expression. Type is never types.NoTypeID.
type Expr struct {
	Kind ExprKind
	Type types.TypeID
	Span source.Span
	Data ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

type LiteralData struct {
	Value token.Value
}

func (LiteralData) exprData() {}

type VariableData struct {
	Symbol symbols.SymbolID
}

func (VariableData) exprData() {}

type AssignmentData struct {
	Symbol symbols.SymbolID
	Value  *Expr
}

func (AssignmentData) exprData() {}

// InvokeData holds the resolved overload and converted arguments.
type InvokeData struct {
	Function symbols.SymbolID
	Args     []*Expr
}

func (InvokeData) exprData() {}

type ConversionData struct {
	Conversion types.Conversion
	Operand    *Expr
}

func (ConversionData) exprData() {}

type InvalidData struct{}

func (InvalidData) exprData() {}

// NewInvalid builds the placeholder for an expression that failed to bind.
func NewInvalid(span source.Span) *Expr {
	return &Expr{Kind: ExprInvalid, Type: types.Invalid, Span: span, Data: InvalidData{}}
}

// NewConversion wraps operand; identity conversions return operand itself.
func NewConversion(to types.TypeID, conv types.Conversion, operand *Expr) *Expr {
	if conv == types.ConvIdentity {
		return operand
	}
	return &Expr{
		Kind: ExprConversion,
		Type: to,
		Span: operand.Span,
		Data: ConversionData{Conversion: conv, Operand: operand},
	}
}
