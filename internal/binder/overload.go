package binder

import (
	"fmt"

	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/token"
	"quill/internal/types"
)

// callSite describes what is being resolved: a named call or an operator.
type callSite struct {
	span     source.Span
	name     token.Token
	operator bool
}

func (c callSite) display() string {
	if c.operator {
		return c.name.Kind.Spelling()
	}
	return c.name.Text
}

// resolveCall picks one overload out of candidates:
//  1. candidates with the wrong arity are dropped;
//  2. an exact match on every argument type wins;
//  3. otherwise exactly one candidate reachable through implicit
//     conversions must remain, else the call is ambiguous or unmatched.
func (b *binder) resolveCall(site callSite, candidates []symbols.SymbolID, args []*bound.Expr) *bound.Expr {
	for _, a := range args {
		if a.Type == types.Invalid {
			return bound.NewInvalid(site.span)
		}
	}

	var arity []*symbols.Symbol
	var arityIDs []symbols.SymbolID
	for _, id := range candidates {
		sym := b.table.Symbols.Get(id)
		if sym != nil && len(sym.Params) == len(args) {
			arity = append(arity, sym)
			arityIDs = append(arityIDs, id)
		}
	}
	if len(arity) == 0 {
		if site.operator {
			b.reportNoOperator(site, args)
		} else {
			b.report(diag.SemaArityMismatch, site.name.Span,
				"function '%s' does not take %d argument(s)", site.display(), len(args))
		}
		return bound.NewInvalid(site.span)
	}

	// strict
	for i, sym := range arity {
		if exactMatch(sym.Params, args) {
			return invoke(site.span, arityIDs[i], sym, args)
		}
	}

	// compatible
	var matches []int
	for i, sym := range arity {
		if implicitMatch(sym.Params, args) {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		if site.operator {
			b.reportNoOperator(site, args)
		} else {
			b.report(diag.SemaNoOverload, site.name.Span,
				"no overload of '%s' accepts arguments %s", site.display(), typeList(args))
		}
		return bound.NewInvalid(site.span)
	case 1:
		i := matches[0]
		sym := arity[i]
		converted := make([]*bound.Expr, len(args))
		for j, a := range args {
			converted[j] = bound.NewConversion(sym.Params[j], types.Classify(a.Type, sym.Params[j]), a)
		}
		return invoke(site.span, arityIDs[i], sym, converted)
	default:
		rb := diag.ReportError(b.reporter, diag.SemaAmbiguousOverload, site.name.Span,
			fmt.Sprintf("call to '%s' with arguments %s is ambiguous", site.display(), typeList(args)))
		for _, i := range matches {
			sym := arity[i]
			rb.WithNote(sym.Span, fmt.Sprintf("candidate: %s(%s)", site.display(), symbols.Signature(sym.Params)))
		}
		rb.Emit()
		return bound.NewInvalid(site.span)
	}
}

func (b *binder) reportNoOperator(site callSite, args []*bound.Expr) {
	op := site.display()
	if len(args) == 1 {
		b.report(diag.SemaNoOperator, site.name.Span,
			"operator '%s' is not defined for type '%s'", op, args[0].Type)
		return
	}
	b.report(diag.SemaNoOperator, site.name.Span,
		"operator '%s' is not defined for types '%s' and '%s'", op, args[0].Type, args[1].Type)
}

func exactMatch(params []types.TypeID, args []*bound.Expr) bool {
	for i, p := range params {
		if args[i].Type != p {
			return false
		}
	}
	return true
}

func implicitMatch(params []types.TypeID, args []*bound.Expr) bool {
	for i, p := range params {
		if !types.Classify(args[i].Type, p).IsImplicit() {
			return false
		}
	}
	return true
}

func invoke(span source.Span, id symbols.SymbolID, sym *symbols.Symbol, args []*bound.Expr) *bound.Expr {
	return &bound.Expr{
		Kind: bound.ExprInvoke,
		Type: sym.Type,
		Span: span,
		Data: bound.InvokeData{Function: id, Args: args},
	}
}
