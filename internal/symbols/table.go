package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/source"
	"quill/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas of one compilation.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	root    ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Root returns (and creates if needed) the Global scope.
func (t *Table) Root(span source.Span) ScopeID {
	if !t.root.IsValid() {
		t.root = t.Scopes.New(ScopeGlobal, NoScopeID, NoSymbolID, span)
	}
	return t.root
}

// Declare installs sym into scope. It fails, returning the existing symbol,
// when the scope already holds the same key.
func (t *Table) Declare(scopeID ScopeID, sym Symbol) (SymbolID, bool) {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	key := sym.Key()
	if existing, ok := scope.index[key]; ok {
		return existing, false
	}
	sym.Scope = scopeID
	sym.Params = append([]types.TypeID(nil), sym.Params...)
	id := t.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.index[key] = id
	nk := nameKey{key.Space, key.Name}
	scope.byName[nk] = append(scope.byName[nk], id)
	return id, true
}

// Detach allocates sym in scope without indexing it. The binder uses it
// for redeclarations so the rejected declaration still has a symbol.
func (t *Table) Detach(scopeID ScopeID, sym Symbol) SymbolID {
	sym.Scope = scopeID
	sym.Flags |= SymbolFlagDetached
	sym.Params = append([]types.TypeID(nil), sym.Params...)
	return t.Symbols.New(&sym)
}

// Lookup is exact-key and does not walk parents.
func (t *Table) Lookup(scopeID ScopeID, key Key) (SymbolID, bool) {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	return scope.Lookup(key)
}

func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}
