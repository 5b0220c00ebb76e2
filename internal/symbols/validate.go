package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"

	"quill/internal/types"
)

// Validate walks internal arenas checking structural invariants: every
// parent precedes its children (so the tree has no cycles), backlinks agree,
// every symbol except detached ones is indexed in its scope under its own
// key, and variables carry a type (Invalid at worst). Returns nil if everything is consistent; otherwise aggregates
// all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		switch {
		case scope.Kind == ScopeGlobal && scope.Parent.IsValid():
			errs = append(errs, fmt.Errorf("global scope %d has parent %d", scopeID, scope.Parent))
		case scope.Kind != ScopeGlobal && !scope.Parent.IsValid():
			errs = append(errs, fmt.Errorf("%s scope %d has no parent", scope.Kind, scopeID))
		case scope.Parent >= scopeID:
			errs = append(errs, fmt.Errorf("scope %d has parent %d that does not precede it", scopeID, scope.Parent))
		case scope.Parent.IsValid() && !slices.Contains(t.Scopes.data[scope.Parent].Children, scopeID):
			errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}
		if len(scope.index) != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d indexes %d keys for %d symbols", scopeID, len(scope.index), len(scope.Symbols)))
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := &t.Symbols.data[idx]
		if symbol.IsVariable() && symbol.Type == types.NoTypeID {
			errs = append(errs, fmt.Errorf("%s symbol %d has no type", symbol.Kind, symbolID))
		}
		scope := t.Scopes.Get(symbol.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Scope))
			continue
		}
		id, ok := scope.index[symbol.Key()]
		switch {
		case symbol.Flags&SymbolFlagDetached != 0:
			if ok && id == symbolID {
				errs = append(errs, fmt.Errorf("detached symbol %d is indexed in scope %d", symbolID, symbol.Scope))
			}
		case !ok || id != symbolID:
			errs = append(errs, fmt.Errorf("symbol %d is not indexed in scope %d", symbolID, symbol.Scope))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
