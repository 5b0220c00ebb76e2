package symbols

import (
	"quill/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // корень: builtins, функции, глобальные переменные
	ScopeFunction           // параметры и метки функции
	ScopeBlock              // блок { ... }
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

type nameKey struct {
	space Namespace
	name  source.StringID
}

// Scope models a lexical scope with a parent-child hierarchy. Its symbol
// table is append-only.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Span   source.Span
	// Owner is the function symbol of a Function scope.
	Owner    SymbolID
	Symbols  []SymbolID
	Children []ScopeID

	index  map[Key]SymbolID
	byName map[nameKey][]SymbolID
}

// Lookup is exact-key only.
func (s *Scope) Lookup(key Key) (SymbolID, bool) {
	id, ok := s.index[key]
	return id, ok
}

// Named returns every symbol of the namespace declared under name, in
// declaration order.
func (s *Scope) Named(space Namespace, name source.StringID) []SymbolID {
	return s.byName[nameKey{space, name}]
}
