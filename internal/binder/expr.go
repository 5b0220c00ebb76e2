package binder

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/types"
)

func (b *binder) bindExpr(id ast.ExprID) *bound.Expr {
	expr := b.builder.Exprs.Get(id)
	if expr == nil {
		return bound.NewInvalid(source.Span{})
	}
	switch expr.Kind {
	case ast.ExprLiteral:
		lit, _ := b.builder.Exprs.Literal(id)
		return bindLiteral(expr.Span, lit.Token)
	case ast.ExprName:
		name, _ := b.builder.Exprs.Name(id)
		return b.bindName(expr.Span, name.Name)
	case ast.ExprAssign:
		assign, _ := b.builder.Exprs.Assign(id)
		return b.bindAssign(expr.Span, assign)
	case ast.ExprUnary:
		un, _ := b.builder.Exprs.Unary(id)
		operand := b.bindExpr(un.Operand)
		return b.bindOperator(expr.Span, un.Op, []*bound.Expr{operand})
	case ast.ExprBinary:
		bin, _ := b.builder.Exprs.Binary(id)
		left := b.bindExpr(bin.Left)
		right := b.bindExpr(bin.Right)
		return b.bindOperator(expr.Span, bin.Op, []*bound.Expr{left, right})
	case ast.ExprParen:
		paren, _ := b.builder.Exprs.Paren(id)
		return b.bindExpr(paren.Inner)
	case ast.ExprInvoke:
		call, _ := b.builder.Exprs.Invoke(id)
		return b.bindInvoke(expr.Span, call)
	default:
		panic(fmt.Sprintf("binder: unexpected expression kind %s", expr.Kind))
	}
}

// bindLiteral: forged placeholders and malformed numbers carry no value;
// the lexer or parser already reported them.
func bindLiteral(span source.Span, tok token.Token) *bound.Expr {
	var typ types.TypeID
	switch tok.Value.Kind {
	case token.IntValue:
		typ = types.Int
	case token.FloatValue:
		typ = types.Double
	case token.StringValue:
		typ = types.String
	case token.BoolValue:
		typ = types.Bool
	default:
		return bound.NewInvalid(span)
	}
	if tok.Forged {
		return bound.NewInvalid(span)
	}
	return &bound.Expr{Kind: bound.ExprLiteral, Type: typ, Span: span, Data: bound.LiteralData{Value: tok.Value}}
}

func (b *binder) bindName(span source.Span, name token.Token) *bound.Expr {
	if name.Forged {
		return bound.NewInvalid(span)
	}
	id := b.intern(name.Text)
	if sym, ok := b.res.LookupVariable(id); ok {
		return &bound.Expr{
			Kind: bound.ExprVariable,
			Type: b.table.Symbols.Get(sym).Type,
			Span: span,
			Data: bound.VariableData{Symbol: sym},
		}
	}
	b.reportNotVariable(name)
	return bound.NewInvalid(span)
}

func (b *binder) reportNotVariable(name token.Token) {
	id := b.intern(name.Text)
	if _, isType := b.res.LookupType(id); isType {
		b.report(diag.SemaNotAVariable, name.Span, "'%s' is a type, not a variable", name.Text)
		return
	}
	if len(b.res.LookupFunctions(id)) > 0 {
		b.report(diag.SemaNotAVariable, name.Span, "'%s' is a function, not a variable", name.Text)
		return
	}
	b.report(diag.SemaUndefinedVariable, name.Span, "undefined variable '%s'", name.Text)
}

func (b *binder) bindAssign(span source.Span, assign *ast.AssignExpr) *bound.Expr {
	value := b.bindExpr(assign.Value)
	if assign.Name.Forged {
		return bound.NewInvalid(span)
	}
	symID, ok := b.res.LookupVariable(b.intern(assign.Name.Text))
	if !ok {
		b.reportNotVariable(assign.Name)
		return bound.NewInvalid(span)
	}
	sym := b.table.Symbols.Get(symID)
	if sym.ReadOnly() {
		rb := diag.ReportError(b.reporter, diag.SemaReadOnlyAssign, assign.Eq.Span,
			fmt.Sprintf("cannot assign to read-only variable '%s'", assign.Name.Text))
		rb.WithNote(sym.Span, "declared with 'let' here").Emit()
	}
	return &bound.Expr{
		Kind: bound.ExprAssignment,
		Type: sym.Type,
		Span: span,
		Data: bound.AssignmentData{Symbol: symID, Value: b.convertImplicit(value, sym.Type)},
	}
}

func (b *binder) bindInvoke(span source.Span, call *ast.InvokeExpr) *bound.Expr {
	args := make([]*bound.Expr, len(call.Args))
	for i, a := range call.Args {
		args[i] = b.bindExpr(a)
	}
	if call.Name.Forged {
		return bound.NewInvalid(span)
	}

	name := b.intern(call.Name.Text)
	if to, isType := b.res.LookupType(name); isType {
		return b.bindCast(span, call.Name, to, args)
	}

	candidates := b.res.LookupFunctions(name)
	if len(candidates) == 0 {
		if _, ok := b.res.LookupVariable(name); ok {
			b.report(diag.SemaNotAFunction, call.Name.Span, "'%s' is not a function", call.Name.Text)
		} else {
			b.report(diag.SemaUndefinedFunction, call.Name.Span, "undefined function '%s'", call.Name.Text)
		}
		return bound.NewInvalid(span)
	}
	return b.resolveCall(callSite{span: span, name: call.Name}, candidates, args)
}

// bindCast handles T(x): the one place explicit conversions are allowed.
func (b *binder) bindCast(span source.Span, name token.Token, to types.TypeID, args []*bound.Expr) *bound.Expr {
	if len(args) != 1 {
		b.report(diag.SemaArityMismatch, name.Span,
			"conversion to '%s' takes exactly one argument, got %d", to, len(args))
		return bound.NewInvalid(span)
	}
	arg := args[0]
	if arg.Type == types.Invalid {
		return bound.NewInvalid(span)
	}
	conv := types.Classify(arg.Type, to)
	if !conv.Exists() {
		b.report(diag.SemaInvalidConversion, span, "cannot convert '%s' to '%s'", arg.Type, to)
		return bound.NewInvalid(span)
	}
	if conv == types.ConvIdentity {
		return arg
	}
	return &bound.Expr{
		Kind: bound.ExprConversion,
		Type: to,
		Span: span,
		Data: bound.ConversionData{Conversion: conv, Operand: arg},
	}
}

// bindOperator resolves an operator as a call of the operator function
// spelled like its token.
func (b *binder) bindOperator(span source.Span, op token.Token, operands []*bound.Expr) *bound.Expr {
	candidates := b.res.LookupFunctions(b.intern(op.Kind.Spelling()))
	return b.resolveCall(callSite{span: span, name: op, operator: true}, candidates, operands)
}

// convertImplicit inserts an implicit conversion to "to" or reports a
// mismatch. Invalid on either side passes through silently.
func (b *binder) convertImplicit(expr *bound.Expr, to types.TypeID) *bound.Expr {
	conv := types.Classify(expr.Type, to)
	if conv.IsImplicit() {
		return bound.NewConversion(to, conv, expr)
	}
	msg := fmt.Sprintf("cannot convert '%s' to '%s'", expr.Type, to)
	if conv == types.ConvExplicit {
		msg += fmt.Sprintf(" implicitly; use '%s(...)'", to)
	}
	b.report(diag.SemaTypeMismatch, expr.Span, "%s", msg)
	return bound.NewInvalid(expr.Span)
}
