package binder

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/token"
	"quill/internal/types"
)

func (b *binder) bindStatement(id ast.StmtID) *bound.Stmt {
	stmt := b.builder.Stmts.Get(id)
	if stmt == nil {
		return bound.NewInvalidStmt(source.Span{})
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block, _ := b.builder.Stmts.Block(id)
		return b.bindBlock(stmt.Span, block)
	case ast.StmtVarDecl:
		decl, _ := b.builder.Stmts.VarDecl(id)
		return b.bindVarDecl(id, stmt.Span, decl)
	case ast.StmtExpr:
		es, _ := b.builder.Stmts.Expr(id)
		return &bound.Stmt{
			Kind: bound.StmtExpr,
			Span: stmt.Span,
			Data: bound.ExprStmtData{Expr: b.bindExpr(es.Expr)},
		}
	case ast.StmtIf:
		ifs, _ := b.builder.Stmts.If(id)
		return b.bindIf(stmt.Span, ifs)
	case ast.StmtReturn:
		ret, _ := b.builder.Stmts.Return(id)
		return b.bindReturn(stmt.Span, ret)
	case ast.StmtGoto:
		g, _ := b.builder.Stmts.Goto(id)
		return b.bindGoto(stmt.Span, g)
	case ast.StmtLabel:
		l, _ := b.builder.Stmts.Label(id)
		return b.bindLabel(id, stmt.Span, l)
	default:
		panic(fmt.Sprintf("binder: unexpected statement kind %s", stmt.Kind))
	}
}

func (b *binder) bindBlock(span source.Span, block *ast.BlockStmt) *bound.Stmt {
	scope := b.res.Enter(symbols.ScopeBlock, symbols.NoSymbolID, span)
	stmts := make([]*bound.Stmt, 0, len(block.Stmts))
	for _, id := range block.Stmts {
		stmts = append(stmts, b.bindStatement(id))
	}
	b.res.Leave(scope)
	return &bound.Stmt{
		Kind: bound.StmtBlock,
		Span: span,
		Data: bound.BlockData{Scope: scope, Stmts: stmts},
	}
}

func (b *binder) bindVarDecl(id ast.StmtID, span source.Span, decl *ast.VarDeclStmt) *bound.Stmt {
	// инициализатор связывается до объявления: var x = x; видит внешний x
	var init *bound.Expr
	if decl.Init.IsValid() {
		init = b.bindExpr(decl.Init)
	}

	typ := b.variableType(decl, init)
	if init != nil {
		init = b.convertImplicit(init, typ)
	} else {
		init = defaultValue(typ, decl.Name.Span.ZeroAt())
	}

	if decl.Name.Forged {
		return bound.NewInvalidStmt(span)
	}

	kind := symbols.SymbolLocalVariable
	if b.res.CurrentScope() == b.tree.Root {
		kind = symbols.SymbolGlobalVariable
	}
	var flags symbols.SymbolFlags
	if decl.ReadOnly {
		flags |= symbols.SymbolFlagReadOnly
	}
	sym := symbols.Symbol{
		Name:  b.intern(decl.Name.Text),
		Kind:  kind,
		Span:  decl.Name.Span,
		Flags: flags,
		Decl:  symbols.SymbolDecl{Stmt: id},
		Type:  typ,
	}
	symID, ok := b.res.Declare(sym)
	if !ok {
		b.reportDuplicate(decl.Name.Span, symID, fmt.Sprintf("variable '%s'", decl.Name.Text))
		symID = b.table.Detach(b.res.CurrentScope(), sym)
	} else if kind == symbols.SymbolGlobalVariable {
		b.tree.Globals = append(b.tree.Globals, symID)
	}

	return &bound.Stmt{
		Kind: bound.StmtVarDecl,
		Span: span,
		Data: bound.VarDeclData{Symbol: symID, Init: init},
	}
}

// variableType picks the declared type, or the initializer type when the
// clause is omitted.
func (b *binder) variableType(decl *ast.VarDeclStmt, init *bound.Expr) types.TypeID {
	var typ types.TypeID
	switch {
	case decl.Type.Present:
		typ = b.resolveType(decl.Type)
	case init != nil:
		typ = init.Type
	default:
		if !decl.Name.Forged {
			b.report(diag.SemaMissingType, decl.Name.Span,
				"variable '%s' needs a type or an initializer", decl.Name.Text)
		}
		return types.Invalid
	}
	if typ == types.Void {
		b.report(diag.SemaVoidVariable, decl.Name.Span, "variable '%s' cannot have type 'void'", decl.Name.Text)
		return types.Invalid
	}
	return typ
}

// defaultValue synthesizes the zero initializer of typ.
func defaultValue(typ types.TypeID, span source.Span) *bound.Expr {
	var v token.Value
	switch typ {
	case types.Int:
		v = token.IntVal(0)
	case types.Double:
		v = token.FloatVal(0)
	case types.Bool:
		v = token.BoolVal(false)
	case types.String:
		v = token.StringVal("")
	default:
		return bound.NewInvalid(span)
	}
	return &bound.Expr{Kind: bound.ExprLiteral, Type: typ, Span: span, Data: bound.LiteralData{Value: v}}
}

func (b *binder) bindIf(span source.Span, ifs *ast.IfStmt) *bound.Stmt {
	cond := b.convertImplicit(b.bindExpr(ifs.Cond), types.Bool)
	data := bound.IfData{
		Cond: cond,
		Then: b.bindStatement(ifs.Then),
	}
	if ifs.Else.IsValid() {
		data.Else = b.bindStatement(ifs.Else)
	}
	return &bound.Stmt{Kind: bound.StmtIf, Span: span, Data: data}
}

func (b *binder) bindReturn(span source.Span, ret *ast.ReturnStmt) *bound.Stmt {
	var value *bound.Expr
	if ret.Value.IsValid() {
		value = b.bindExpr(ret.Value)
	}
	if !b.res.InFunction() {
		b.report(diag.SemaReturnOutsideFunction, ret.Keyword.Span, "return outside of a function")
		return bound.NewInvalidStmt(span)
	}

	fn := b.table.Symbols.Get(b.function)
	result := fn.Type
	switch {
	case value == nil:
		if result != types.Void && result != types.Invalid {
			b.report(diag.SemaMissingReturnValue, ret.Keyword.Span,
				"function '%s' must return a value of type '%s'", b.table.Name(b.function), result)
		}
	case result == types.Void:
		b.report(diag.SemaUnexpectedReturnValue, value.Span,
			"function '%s' does not return a value", b.table.Name(b.function))
		value = bound.NewInvalid(value.Span)
	default:
		value = b.convertImplicit(value, result)
	}
	return &bound.Stmt{Kind: bound.StmtReturn, Span: span, Data: bound.ReturnData{Value: value}}
}

// pendingGoto is a jump resolved after the function body is bound, looking
// outward from the scope the goto appeared in. Labels declared later in an
// inner block shadow outer ones regardless of source order.
type pendingGoto struct {
	data  *bound.GotoData
	name  source.StringID
	scope symbols.ScopeID
	span  source.Span
}

func (b *binder) bindGoto(span source.Span, g *ast.GotoStmt) *bound.Stmt {
	if !b.res.InFunction() {
		b.report(diag.SemaGotoOutsideFunction, span, "goto outside of a function")
		return bound.NewInvalidStmt(span)
	}
	data := &bound.GotoData{Name: g.Label.Text}
	if !g.Label.Forged {
		b.pending = append(b.pending, pendingGoto{
			data:  data,
			name:  b.intern(g.Label.Text),
			scope: b.res.CurrentScope(),
			span:  g.Label.Span,
		})
	}
	return &bound.Stmt{Kind: bound.StmtGoto, Span: span, Data: data}
}

func (b *binder) resolvePendingGotos() {
	for _, p := range b.pending {
		if label, ok := b.res.LookupLabelFrom(p.scope, p.name); ok {
			p.data.Label = label
			continue
		}
		b.report(diag.SemaUndefinedLabel, p.span, "undefined label '%s'", p.data.Name)
	}
	b.pending = b.pending[:0]
}

func (b *binder) bindLabel(id ast.StmtID, span source.Span, l *ast.LabelStmt) *bound.Stmt {
	if !b.res.InFunction() {
		b.report(diag.SemaLabelOutsideFunction, l.Name.Span, "label '%s' outside of a function", l.Name.Text)
		return bound.NewInvalidStmt(span)
	}
	sym := symbols.Symbol{
		Name: b.intern(l.Name.Text),
		Kind: symbols.SymbolLabel,
		Span: l.Name.Span,
		Decl: symbols.SymbolDecl{Stmt: id},
	}
	symID, ok := b.res.Declare(sym)
	if !ok {
		b.reportDuplicate(l.Name.Span, symID, fmt.Sprintf("label '%s'", l.Name.Text))
		symID = b.table.Detach(b.res.CurrentScope(), sym)
	}
	return &bound.Stmt{Kind: bound.StmtLabel, Span: span, Data: bound.LabelData{Symbol: symID}}
}
