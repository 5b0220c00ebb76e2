package symbols

import (
	"fmt"
	"slices"

	"quill/internal/source"
	"quill/internal/types"
)

// Resolver drives the scope stack for one binder. Several resolvers may
// share a Table; each owns its own stack.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver wires a resolver to an existing scope. If root is valid it
// becomes the current scope; otherwise scope-sensitive operations are no-ops.
func NewResolver(table *Table, root ScopeID) *Resolver {
	r := &Resolver{
		table: table,
		stack: make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, owner SymbolID, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner, span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. Popping anything but expected is a binder
// bug and panics.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		panic("symbols: Leave on empty scope stack")
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Errorf("symbols: leaving scope %d, top is %d", expected, top))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a symbol into the innermost scope.
func (r *Resolver) Declare(sym Symbol) (SymbolID, bool) {
	return r.table.Declare(r.CurrentScope(), sym)
}

// walk visits scopes from start outward until visit returns true.
func (r *Resolver) walk(start ScopeID, visit func(ScopeID, *Scope) bool) {
	for id := start; id.IsValid(); {
		scope := r.table.Scopes.Get(id)
		if scope == nil || visit(id, scope) {
			return
		}
		id = scope.Parent
	}
}

func (r *Resolver) lookupKey(key Key) (SymbolID, bool) {
	found := NoSymbolID
	r.walk(r.CurrentScope(), func(_ ScopeID, s *Scope) bool {
		if id, ok := s.Lookup(key); ok {
			found = id
			return true
		}
		return false
	})
	return found, found.IsValid()
}

// LookupVariable finds the nearest variable or parameter named name.
func (r *Resolver) LookupVariable(name source.StringID) (SymbolID, bool) {
	return r.lookupKey(VariableKey(name))
}

// LookupFunctions returns the overload candidates of the nearest scope
// that declares a function named name.
func (r *Resolver) LookupFunctions(name source.StringID) []SymbolID {
	var out []SymbolID
	r.walk(r.CurrentScope(), func(_ ScopeID, s *Scope) bool {
		if ids := s.Named(NamespaceFunction, name); len(ids) > 0 {
			out = slices.Clone(ids)
			return true
		}
		return false
	})
	return out
}

// LookupType resolves a type name.
func (r *Resolver) LookupType(name source.StringID) (types.TypeID, bool) {
	id, ok := r.lookupKey(TypeKey(name))
	if !ok {
		return types.NoTypeID, false
	}
	return r.table.Symbols.Get(id).Type, true
}

// LookupLabel resolves name among labels visible from the current scope.
func (r *Resolver) LookupLabel(name source.StringID) (SymbolID, bool) {
	return r.LookupLabelFrom(r.CurrentScope(), name)
}

// LookupLabelFrom walks outward from scope and stops after the first
// Function scope: labels are function-local.
func (r *Resolver) LookupLabelFrom(scope ScopeID, name source.StringID) (SymbolID, bool) {
	found := NoSymbolID
	key := LabelKey(name)
	r.walk(scope, func(_ ScopeID, s *Scope) bool {
		if id, ok := s.Lookup(key); ok {
			found = id
			return true
		}
		return s.Kind == ScopeFunction
	})
	return found, found.IsValid()
}

// EnclosingFunction returns the function symbol owning the nearest Function
// scope, or NoSymbolID at global level.
func (r *Resolver) EnclosingFunction() SymbolID {
	owner := NoSymbolID
	r.walk(r.CurrentScope(), func(_ ScopeID, s *Scope) bool {
		if s.Kind == ScopeFunction {
			owner = s.Owner
			return true
		}
		return false
	})
	return owner
}

// InFunction reports whether the current scope is inside a function body.
func (r *Resolver) InFunction() bool {
	inside := false
	r.walk(r.CurrentScope(), func(_ ScopeID, s *Scope) bool {
		inside = s.Kind == ScopeFunction
		return inside
	})
	return inside
}
