package binder

import (
	"fmt"

	"quill/internal/ast"
	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/types"
)

// Options configure binding of one compilation unit.
type Options struct {
	Reporter diag.Reporter
	// Strings is shared with the symbol table; nil allocates a fresh one.
	Strings *source.Interner
}

// Bind resolves names and types of a parsed file and produces the bound
// tree. Pass 1 declares every function signature into the Global scope so
// bodies may call functions declared later; pass 2 binds global statements
// in order and then each function body in its own child binder.
func Bind(builder *ast.Builder, fileID ast.FileID, opts Options) (tree *bound.Tree) {
	defer func() {
		if r := recover(); r != nil {
			if opts.Reporter != nil {
				opts.Reporter.Report(diag.SemaInternal, diag.SevError, fileStart(builder, fileID),
					fmt.Sprintf("internal binder error: %v", r), nil)
			}
			tree = emptyTree(opts)
		}
	}()

	tree = emptyTree(opts)
	if builder == nil {
		return tree
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return tree
	}
	tree.Table.Scopes.Get(tree.Root).Span = file.Span

	root := newBinder(builder, tree, opts.Reporter, symbols.NoSymbolID)
	funcs := root.declareFunctions(file.Members)

	for _, id := range file.Members {
		if g, ok := builder.Members.Global(id); ok {
			tree.Statements = append(tree.Statements, root.bindStatement(g.Stmt))
		}
	}
	for _, fn := range funcs {
		child := newBinder(builder, tree, opts.Reporter, fn.symbol)
		tree.Functions = append(tree.Functions, child.bindFunction(fn))
	}
	return tree
}

// fileStart is an empty span at the start of the file, or the zero span
// when the file is unknown.
func fileStart(builder *ast.Builder, fileID ast.FileID) source.Span {
	if builder == nil {
		return source.Span{}
	}
	if f := builder.Files.Get(fileID); f != nil {
		return f.Span.ZeroAt()
	}
	return source.Span{}
}

func emptyTree(opts Options) *bound.Tree {
	table := symbols.NewTable(symbols.Hints{}, opts.Strings)
	root := table.Root(source.Span{})
	table.InstallPrelude(root)
	return &bound.Tree{
		Table: table,
		Root:  root,
		Bag:   diag.BagOf(opts.Reporter),
	}
}

// binder binds either the global statements (function == NoSymbolID) or
// one function body. Binders share the table and reporter; each has its
// own scope stack and pending gotos.
type binder struct {
	builder  *ast.Builder
	tree     *bound.Tree
	table    *symbols.Table
	res      *symbols.Resolver
	reporter diag.Reporter
	function symbols.SymbolID
	pending  []pendingGoto
}

func newBinder(builder *ast.Builder, tree *bound.Tree, reporter diag.Reporter, function symbols.SymbolID) *binder {
	return &binder{
		builder:  builder,
		tree:     tree,
		table:    tree.Table,
		res:      symbols.NewResolver(tree.Table, tree.Root),
		reporter: reporter,
		function: function,
	}
}

func (b *binder) intern(s string) source.StringID {
	return b.table.Strings.Intern(s)
}

// declaredFunc pairs a function declaration with its symbol. Redeclared
// functions get a detached symbol so their bodies are still checked.
type declaredFunc struct {
	member ast.MemberID
	decl   *ast.FuncDecl
	symbol symbols.SymbolID
}

func (b *binder) declareFunctions(members []ast.MemberID) []declaredFunc {
	var out []declaredFunc
	for _, id := range members {
		decl, ok := b.builder.Members.Func(id)
		if !ok {
			continue
		}
		if sym, ok := b.declareFunction(id, decl); ok {
			out = append(out, declaredFunc{member: id, decl: decl, symbol: sym})
		}
	}
	return out
}

func (b *binder) declareFunction(id ast.MemberID, decl *ast.FuncDecl) (symbols.SymbolID, bool) {
	if decl.Name.Forged {
		return symbols.NoSymbolID, false
	}
	name := decl.Name.Text
	if _, isType := types.Lookup(name); isType {
		b.report(diag.SemaTypeNameAsFunction, decl.Name.Span, "function name '%s' is a type name", name)
		return symbols.NoSymbolID, false
	}

	params := make([]types.TypeID, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = b.resolveType(p.Type)
	}
	result := types.Void
	if decl.Result.Present {
		result = b.resolveType(decl.Result)
	}

	sym := symbols.Symbol{
		Name:   b.intern(name),
		Kind:   symbols.SymbolFunction,
		Span:   decl.Name.Span,
		Decl:   symbols.SymbolDecl{Member: id},
		Type:   result,
		Params: params,
	}
	symID, ok := b.res.Declare(sym)
	if !ok {
		b.reportDuplicate(decl.Name.Span, symID, fmt.Sprintf("function '%s(%s)'", name, symbols.Signature(params)))
		symID = b.table.Detach(b.res.CurrentScope(), sym)
	}
	return symID, true
}

// resolveType resolves a type clause; missing or unknown names yield
// Invalid. Forged names were already reported by the parser.
func (b *binder) resolveType(clause ast.TypeClause) types.TypeID {
	if !clause.Present || clause.Name.Forged {
		return types.Invalid
	}
	if id, ok := b.res.LookupType(b.intern(clause.Name.Text)); ok {
		return id
	}
	b.report(diag.SemaUndefinedType, clause.Name.Span, "undefined type '%s'", clause.Name.Text)
	return types.Invalid
}

func (b *binder) bindFunction(fn declaredFunc) *bound.Stmt {
	sym := b.table.Symbols.Get(fn.symbol)
	member := b.builder.Members.Get(fn.member)
	scope := b.res.Enter(symbols.ScopeFunction, fn.symbol, member.Span)

	params := make([]symbols.SymbolID, 0, len(fn.decl.Params))
	for i, p := range fn.decl.Params {
		if p.Name.Forged {
			continue
		}
		param := symbols.Symbol{
			Name: b.intern(p.Name.Text),
			Kind: symbols.SymbolParameter,
			Span: p.Name.Span,
			Type: sym.Params[i],
		}
		id, ok := b.res.Declare(param)
		if !ok {
			b.reportDuplicate(p.Name.Span, id, fmt.Sprintf("parameter '%s'", p.Name.Text))
			continue
		}
		params = append(params, id)
	}

	body := b.bindStatement(fn.decl.Body)
	b.res.Leave(scope)
	b.resolvePendingGotos()

	return &bound.Stmt{
		Kind: bound.StmtFunction,
		Span: member.Span,
		Data: bound.FunctionData{
			Symbol: fn.symbol,
			Scope:  scope,
			Params: params,
			Body:   body,
		},
	}
}
