package symbols

import (
	"quill/internal/token"
	"quill/internal/types"
)

// InstallPrelude declares the builtin types, functions and operator
// overloads into root. Calling it twice is harmless: duplicates are
// rejected by key.
func (t *Table) InstallPrelude(root ScopeID) {
	for _, id := range types.All() {
		t.Declare(root, Symbol{
			Name:  t.Strings.Intern(id.String()),
			Kind:  SymbolType,
			Flags: SymbolFlagBuiltin,
			Type:  id,
		})
	}
	for _, sig := range types.BuiltinFunctions() {
		t.declareSignature(root, sig, SymbolFlagBuiltin)
	}
	for _, sig := range types.BinaryOperators() {
		t.declareSignature(root, sig, SymbolFlagBuiltin|SymbolFlagOperator)
	}
	for _, sig := range types.UnaryOperators() {
		t.declareSignature(root, sig, SymbolFlagBuiltin|SymbolFlagOperator)
	}
}

func (t *Table) declareSignature(root ScopeID, sig types.Signature, flags SymbolFlags) {
	op := token.Invalid
	if flags&SymbolFlagOperator != 0 {
		op = sig.Op
	}
	t.Declare(root, Symbol{
		Name:   t.Strings.Intern(sig.Name),
		Kind:   SymbolFunction,
		Flags:  flags,
		Type:   sig.Result,
		Params: sig.Params,
		Op:     op,
	})
}
