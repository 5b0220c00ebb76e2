package binder

import (
	"fmt"
	"strings"

	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
)

func (b *binder) report(code diag.Code, span source.Span, format string, args ...any) {
	if b.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if rb := diag.ReportError(b.reporter, code, span, msg); rb != nil {
		rb.Emit()
	}
}

// reportDuplicate — "already declared" с заметкой о первом объявлении.
func (b *binder) reportDuplicate(span source.Span, prev symbols.SymbolID, what string) {
	if b.reporter == nil {
		return
	}
	rb := diag.ReportError(b.reporter, diag.SemaDuplicateSymbol, span, what+" is already declared")
	if sym := b.table.Symbols.Get(prev); sym != nil && sym.Span != (source.Span{}) {
		rb.WithNote(sym.Span, "previous declaration is here")
	}
	rb.Emit()
}

// typeList renders argument types as "(int, bool)".
func typeList(args []*bound.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
