package symbols

import (
	"strings"

	"quill/internal/ast"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolGlobalVariable
	SymbolLocalVariable
	SymbolParameter
	SymbolFunction
	SymbolLabel
	SymbolType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolGlobalVariable:
		return "GlobalVariable"
	case SymbolLocalVariable:
		return "LocalVariable"
	case SymbolParameter:
		return "Parameter"
	case SymbolFunction:
		return "Function"
	case SymbolLabel:
		return "Label"
	case SymbolType:
		return "Type"
	default:
		return "Invalid"
	}
}

// Namespace returns the lookup namespace the kind lives in.
func (k SymbolKind) Namespace() Namespace {
	switch k {
	case SymbolFunction:
		return NamespaceFunction
	case SymbolLabel:
		return NamespaceLabel
	case SymbolType:
		return NamespaceType
	default:
		return NamespaceValue
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagReadOnly SymbolFlags = 1 << iota
	SymbolFlagBuiltin
	SymbolFlagOperator
	// SymbolFlagDetached marks a symbol that lost a redeclaration conflict:
	// it exists for the bound tree but no scope indexes it.
	SymbolFlagDetached
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagReadOnly != 0 {
		labels = append(labels, "readonly")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	if f&SymbolFlagOperator != 0 {
		labels = append(labels, "operator")
	}
	if f&SymbolFlagDetached != 0 {
		labels = append(labels, "detached")
	}
	return labels
}

// Namespace separates symbols that may share a name in one scope.
type Namespace uint8

const (
	NamespaceValue Namespace = iota
	NamespaceFunction
	NamespaceLabel
	NamespaceType
)

// Key is the identity of a symbol inside one scope: the name for variables,
// labels and types; name plus ordered parameter types for functions.
type Key struct {
	Space Namespace
	Name  source.StringID
	Sig   string
}

func VariableKey(name source.StringID) Key { return Key{Space: NamespaceValue, Name: name} }
func LabelKey(name source.StringID) Key    { return Key{Space: NamespaceLabel, Name: name} }
func TypeKey(name source.StringID) Key     { return Key{Space: NamespaceType, Name: name} }

func FunctionKey(name source.StringID, params []types.TypeID) Key {
	return Key{Space: NamespaceFunction, Name: name, Sig: Signature(params)}
}

// Signature renders parameter types as "int,double".
func Signature(params []types.TypeID) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}

// SymbolDecl points at the parse-tree origin, empty for builtins.
type SymbolDecl struct {
	Member ast.MemberID
	Stmt   ast.StmtID
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  SymbolDecl
	// Type is the variable/parameter type, the function result type or the
	// named type itself; NoTypeID for labels.
	Type types.TypeID
	// Params holds function parameter types in order.
	Params []types.TypeID
	// Op is the spelling token for operator functions.
	Op token.Kind
}

func (s *Symbol) Key() Key {
	if s.Kind == SymbolFunction {
		return FunctionKey(s.Name, s.Params)
	}
	return Key{Space: s.Kind.Namespace(), Name: s.Name}
}

func (s *Symbol) IsVariable() bool {
	switch s.Kind {
	case SymbolGlobalVariable, SymbolLocalVariable, SymbolParameter:
		return true
	}
	return false
}

func (s *Symbol) ReadOnly() bool { return s.Flags&SymbolFlagReadOnly != 0 }
