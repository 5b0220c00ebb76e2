package binder_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"quill/internal/ast"
	"quill/internal/binder"
	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/symbols"
	"quill/internal/testkit"
	"quill/internal/token"
	"quill/internal/types"
)

func bindSource(t *testing.T, src string) (*bound.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ql", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag, File: file}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(toks, b, parser.Options{Reporter: rep})
	tree := binder.Bind(b, res.File, binder.Options{Reporter: rep})
	if tree == nil {
		t.Fatalf("Bind returned nil tree")
	}
	if err := tree.Table.Validate(); err != nil {
		t.Fatalf("symbol table invariants broken: %v", err)
	}
	return tree, bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func summary(bag *diag.Bag) string {
	items := bag.Items()
	if len(items) == 0 {
		return "<none>"
	}
	lines := make([]string, len(items))
	for i, d := range items {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func expectCodes(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	if got := codes(bag); !slices.Equal(got, want) {
		t.Fatalf("diagnostics: got %v, want %v\n%s", got, want, summary(bag))
	}
}

func stmtExpr(t *testing.T, s *bound.Stmt) *bound.Expr {
	t.Helper()
	data, ok := s.Data.(bound.ExprStmtData)
	if !ok {
		t.Fatalf("statement is %s, want ExpressionStatement", s.Kind)
	}
	return data.Expr
}

func varInit(t *testing.T, s *bound.Stmt) (*bound.Expr, symbols.SymbolID) {
	t.Helper()
	data, ok := s.Data.(bound.VarDeclData)
	if !ok {
		t.Fatalf("statement is %s, want VariableDeclaration", s.Kind)
	}
	return data.Init, data.Symbol
}

func functionBody(t *testing.T, tree *bound.Tree, i int) []*bound.Stmt {
	t.Helper()
	if i >= len(tree.Functions) {
		t.Fatalf("function %d missing, have %d", i, len(tree.Functions))
	}
	fn := tree.Functions[i].Data.(bound.FunctionData)
	return fn.Body.Data.(bound.BlockData).Stmts
}

// eval — крошечный интерпретатор для целочисленных выражений.
func eval(t *testing.T, table *symbols.Table, e *bound.Expr) int64 {
	t.Helper()
	switch data := e.Data.(type) {
	case bound.LiteralData:
		return data.Value.Int
	case bound.InvokeData:
		sym := table.Symbols.Get(data.Function)
		args := make([]int64, len(data.Args))
		for i, a := range data.Args {
			args[i] = eval(t, table, a)
		}
		switch {
		case sym.Op == token.Plus && len(args) == 2:
			return args[0] + args[1]
		case sym.Op == token.Minus && len(args) == 2:
			return args[0] - args[1]
		case sym.Op == token.Star:
			return args[0] * args[1]
		case sym.Op == token.Minus && len(args) == 1:
			return -args[0]
		}
		t.Fatalf("eval: unsupported operator %s", sym.Op)
	}
	t.Fatalf("eval: unsupported expression %s", e.Kind)
	return 0
}

func TestArithmeticEvaluatesWithPrecedence(t *testing.T) {
	tree, bag := bindSource(t, "1 + 2 * 3; -(4 - 6) * 2;")
	expectCodes(t, bag)

	cases := []int64{7, 4}
	for i, want := range cases {
		e := stmtExpr(t, tree.Statements[i])
		if e.Type != types.Int {
			t.Fatalf("statement %d typed %s, want int", i, e.Type)
		}
		if got := eval(t, tree.Table, e); got != want {
			t.Fatalf("statement %d evaluates to %d, want %d", i, got, want)
		}
	}
}

func TestRedeclaredVariableKeepsBothDeclarations(t *testing.T) {
	tree, bag := bindSource(t, "var x = 1; var x = 2;")
	expectCodes(t, bag, diag.SemaDuplicateSymbol)
	if !strings.Contains(bag.Items()[0].Message, "already declared") {
		t.Fatalf("unexpected message %q", bag.Items()[0].Message)
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected a note pointing at the first declaration")
	}

	if len(tree.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(tree.Statements))
	}
	_, first := varInit(t, tree.Statements[0])
	_, second := varInit(t, tree.Statements[1])
	if first == second {
		t.Fatalf("both declarations share symbol %d", first)
	}
	if tree.Table.Symbols.Get(second).Flags&symbols.SymbolFlagDetached == 0 {
		t.Fatalf("redeclaration should be detached")
	}
	if len(tree.Globals) != 1 || tree.Globals[0] != first {
		t.Fatalf("globals = %v, want [%d]", tree.Globals, first)
	}
}

func TestForwardGotoResolves(t *testing.T) {
	tree, bag := bindSource(t, "func main() { goto L; var y = 1; L: print(y); }")
	expectCodes(t, bag)

	body := functionBody(t, tree, 0)
	g, ok := body[0].Data.(*bound.GotoData)
	if !ok {
		t.Fatalf("first statement is %s, want Goto", body[0].Kind)
	}
	label, ok := body[2].Data.(bound.LabelData)
	if !ok {
		t.Fatalf("third statement is %s, want Label", body[2].Kind)
	}
	if g.Label != label.Symbol {
		t.Fatalf("goto resolved to %d, want label %d", g.Label, label.Symbol)
	}
}

func TestBackwardGotoResolves(t *testing.T) {
	tree, bag := bindSource(t, "func loop() { top: goto top; }")
	expectCodes(t, bag)
	body := functionBody(t, tree, 0)
	if g := body[1].Data.(*bound.GotoData); !g.Label.IsValid() {
		t.Fatalf("backward goto left unresolved")
	}
}

func TestGotoPrefersNearestLabel(t *testing.T) {
	tree, bag := bindSource(t, "func f() { L: { goto L; L: print(1); } }")
	expectCodes(t, bag)

	body := functionBody(t, tree, 0)
	outer := body[0].Data.(bound.LabelData)
	block, ok := body[1].Data.(bound.BlockData)
	if !ok {
		t.Fatalf("second statement is %s, want Block", body[1].Kind)
	}
	g := block.Stmts[0].Data.(*bound.GotoData)
	inner := block.Stmts[1].Data.(bound.LabelData)
	if g.Label != inner.Symbol {
		t.Fatalf("goto bound to %d, want inner label %d (outer is %d)", g.Label, inner.Symbol, outer.Symbol)
	}
}

func TestGotoLabelScoping(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"undefined", "func f() { goto nowhere; }", []diag.Code{diag.SemaUndefinedLabel}},
		{"outer label from inner block", "func f() { { goto out; } out: print(1); }", nil},
		{"sibling block", "func f() { { L: print(1); } { goto L; } }", []diag.Code{diag.SemaUndefinedLabel}},
		{"other function", "func f() { L: print(1); } func g() { goto L; }", []diag.Code{diag.SemaUndefinedLabel}},
		{"duplicate label", "func f() { L: L: print(1); }", []diag.Code{diag.SemaDuplicateSymbol}},
		{"nearest label wins", "func f() { L: { goto L; L: print(1); } }", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.want...)
		})
	}
}

func TestStrictOverloadBeatsCompatible(t *testing.T) {
	tree, bag := bindSource(t, "func f(a: int) {} func f(a: double) {} f(1); f(1.5);")
	expectCodes(t, bag)

	for i, want := range []types.TypeID{types.Int, types.Double} {
		e := stmtExpr(t, tree.Statements[i])
		call, ok := e.Data.(bound.InvokeData)
		if !ok {
			t.Fatalf("call %d bound to %s", i, e.Kind)
		}
		params := tree.Table.Symbols.Get(call.Function).Params
		if !slices.Equal(params, []types.TypeID{want}) {
			t.Fatalf("call %d resolved to f(%s), want f(%s)", i, symbols.Signature(params), want)
		}
		if call.Args[0].Kind != bound.ExprLiteral {
			t.Fatalf("exact match should not convert, got %s", call.Args[0].Kind)
		}
		if e.Type != types.Void {
			t.Fatalf("call typed %s, want void", e.Type)
		}
	}
}

func TestCompatibleOverloadInsertsConversion(t *testing.T) {
	tree, bag := bindSource(t, "func h(a: double): double { return a; } h(2);")
	expectCodes(t, bag)
	call := stmtExpr(t, tree.Statements[0]).Data.(bound.InvokeData)
	arg := call.Args[0]
	conv, ok := arg.Data.(bound.ConversionData)
	if !ok || arg.Type != types.Double || conv.Conversion != types.ConvImplicit {
		t.Fatalf("argument = %s %s, want implicit conversion to double", arg.Kind, arg.Type)
	}
}

func TestAmbiguousCallListsArgumentTypes(t *testing.T) {
	tree, bag := bindSource(t, "func g(a: int, b: double) {} func g(a: double, b: int) {} g(1, 2);")
	expectCodes(t, bag, diag.SemaAmbiguousOverload)
	d := bag.Items()[0]
	if !strings.Contains(d.Message, "(int, int)") {
		t.Fatalf("message %q does not list argument types", d.Message)
	}
	if len(d.Notes) != 2 {
		t.Fatalf("expected 2 candidate notes, got %d", len(d.Notes))
	}
	if e := stmtExpr(t, tree.Statements[0]); e.Kind != bound.ExprInvalid {
		t.Fatalf("ambiguous call bound to %s", e.Kind)
	}
}

func TestDuplicateFunctionSignature(t *testing.T) {
	src := `
func f(a: int) { var p: bool = 1; }
func f(b: int) { var q: bool = 2; }
f(3);
`
	tree, bag := bindSource(t, src)
	expectCodes(t, bag, diag.SemaDuplicateSymbol, diag.SemaTypeMismatch, diag.SemaTypeMismatch)

	if len(tree.Functions) != 2 {
		t.Fatalf("both bodies should be bound, got %d functions", len(tree.Functions))
	}
	candidates := tree.Table.Scopes.Get(tree.Root).Named(symbols.NamespaceFunction, tree.Table.Strings.Intern("f"))
	if len(candidates) != 1 {
		t.Fatalf("identical signatures must not both be visible, got %d candidates", len(candidates))
	}
	call := stmtExpr(t, tree.Statements[0]).Data.(bound.InvokeData)
	if call.Function != candidates[0] {
		t.Fatalf("call resolved to %d, want first declaration %d", call.Function, candidates[0])
	}
}

func TestReadOnlyAssignmentStillBinds(t *testing.T) {
	tree, bag := bindSource(t, "let x = 1; x = 2;")
	expectCodes(t, bag, diag.SemaReadOnlyAssign)
	e := stmtExpr(t, tree.Statements[1])
	if e.Kind != bound.ExprAssignment || e.Type != types.Int {
		t.Fatalf("got %s %s, want Assignment int", e.Kind, e.Type)
	}
}

func TestAssignmentConvertsValue(t *testing.T) {
	tree, bag := bindSource(t, "var d = 1.0; d = 3; var s = \"\"; s = 1;")
	expectCodes(t, bag, diag.SemaTypeMismatch)
	if !strings.Contains(bag.Items()[0].Message, "use 'string(...)'") {
		t.Fatalf("mismatch should mention the explicit conversion: %q", bag.Items()[0].Message)
	}
	value := stmtExpr(t, tree.Statements[1]).Data.(bound.AssignmentData).Value
	if value.Kind != bound.ExprConversion || value.Type != types.Double {
		t.Fatalf("assigned value = %s %s, want conversion to double", value.Kind, value.Type)
	}
}

func TestWellTypedProgramHasNoInvalidNodes(t *testing.T) {
	src := `
func add(a: int, b: int): int { return a + b; }
func main() {
	var s = "n=" + string(add(1, 2));
	var d: double = 1;
	let ok = !(d < 2.5) | true;
	if (ok) { print(s); } else { print(d * 2); }
	var n = len(s) % 3;
	n = int(d) ^ n;
}
main();
`
	tree, bag := bindSource(t, src)
	expectCodes(t, bag)
	if err := testkit.CheckTypeTotality(tree, true); err != nil {
		t.Fatalf("type totality: %v", err)
	}
	if len(tree.Functions) != 2 || len(tree.Statements) != 1 {
		t.Fatalf("got %d functions and %d statements", len(tree.Functions), len(tree.Statements))
	}
}

func TestCasts(t *testing.T) {
	tree, bag := bindSource(t, "var a = int(2.5); var b = double(1); var c = bool(1); var d = int(1, 2); var e = int(3);")
	expectCodes(t, bag, diag.SemaInvalidConversion, diag.SemaArityMismatch)

	a, _ := varInit(t, tree.Statements[0])
	if conv, ok := a.Data.(bound.ConversionData); !ok || conv.Conversion != types.ConvExplicit || a.Type != types.Int {
		t.Fatalf("int(2.5) bound to %s %s", a.Kind, a.Type)
	}
	b, _ := varInit(t, tree.Statements[1])
	if conv, ok := b.Data.(bound.ConversionData); !ok || conv.Conversion != types.ConvImplicit {
		t.Fatalf("double(1) bound to %s", b.Kind)
	}
	e, _ := varInit(t, tree.Statements[4])
	if e.Kind != bound.ExprLiteral {
		t.Fatalf("identity cast should disappear, got %s", e.Kind)
	}
}

func TestNameResolutionErrors(t *testing.T) {
	tests := []struct {
		src  string
		want diag.Code
	}{
		{"nope;", diag.SemaUndefinedVariable},
		{"print;", diag.SemaNotAVariable},
		{"int;", diag.SemaNotAVariable},
		{"print = 1;", diag.SemaNotAVariable},
		{"var v = 1; v(1);", diag.SemaNotAFunction},
		{"nope(1);", diag.SemaUndefinedFunction},
		{"print(1, 2);", diag.SemaArityMismatch},
		{"len(1);", diag.SemaNoOverload},
		{"1 + true;", diag.SemaNoOperator},
		{"-true;", diag.SemaNoOperator},
		{"var z: nope = 1;", diag.SemaUndefinedType},
		{"func int() {}", diag.SemaTypeNameAsFunction},
		{"func f(a: int, a: int) {}", diag.SemaDuplicateSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, bag := bindSource(t, tt.src)
			expectCodes(t, bag, tt.want)
		})
	}
}

func TestOperatorMessages(t *testing.T) {
	_, bag := bindSource(t, "1 + true; -\"s\";")
	expectCodes(t, bag, diag.SemaNoOperator, diag.SemaNoOperator)
	items := bag.Items()
	if want := "operator '+' is not defined for types 'int' and 'bool'"; items[0].Message != want {
		t.Fatalf("got %q, want %q", items[0].Message, want)
	}
	if want := "operator '-' is not defined for type 'string'"; items[1].Message != want {
		t.Fatalf("got %q, want %q", items[1].Message, want)
	}
}

func TestInvalidOperandsDoNotCascade(t *testing.T) {
	_, bag := bindSource(t, "print(nope + 1 * missing(2));")
	expectCodes(t, bag, diag.SemaUndefinedVariable, diag.SemaUndefinedFunction)
}

func TestForgedTokensAreSilent(t *testing.T) {
	_, bag := bindSource(t, "var = 1; 1 + ; print(;")
	for _, d := range bag.Items() {
		if d.Code.Stage() == diag.StageBinder {
			t.Fatalf("binder reported on recovered input: %s", summary(bag))
		}
	}
	if bag.Len() == 0 {
		t.Fatalf("expected parser diagnostics")
	}
}

func TestVariableDeclarationChecks(t *testing.T) {
	tree, bag := bindSource(t, "var a; var b = print(1); var c: void; var i: int; var s: string;")
	expectCodes(t, bag, diag.SemaMissingType, diag.SemaVoidVariable, diag.SemaVoidVariable)

	for i := range 3 {
		_, sym := varInit(t, tree.Statements[i])
		if got := tree.Table.Symbols.Get(sym).Type; got != types.Invalid {
			t.Fatalf("variable %d typed %s, want invalid", i, got)
		}
	}
	i, _ := varInit(t, tree.Statements[3])
	if i.Data.(bound.LiteralData).Value != token.IntVal(0) {
		t.Fatalf("int default = %s", i.Data.(bound.LiteralData).Value)
	}
	s, _ := varInit(t, tree.Statements[4])
	if s.Data.(bound.LiteralData).Value != token.StringVal("") {
		t.Fatalf("string default = %s", s.Data.(bound.LiteralData).Value)
	}
}

func TestSymbolKinds(t *testing.T) {
	tree, bag := bindSource(t, "var g = 1; { var l = 2; } func f(p: int) { var x = p + g; }")
	expectCodes(t, bag)

	kindOf := func(s *bound.Stmt) symbols.SymbolKind {
		_, sym := varInit(t, s)
		return tree.Table.Symbols.Get(sym).Kind
	}
	if k := kindOf(tree.Statements[0]); k != symbols.SymbolGlobalVariable {
		t.Fatalf("g is %s", k)
	}
	inner := tree.Statements[1].Data.(bound.BlockData).Stmts[0]
	if k := kindOf(inner); k != symbols.SymbolLocalVariable {
		t.Fatalf("l is %s", k)
	}
	fn := tree.Functions[0].Data.(bound.FunctionData)
	if len(fn.Params) != 1 || tree.Table.Symbols.Get(fn.Params[0]).Kind != symbols.SymbolParameter {
		t.Fatalf("parameter not declared")
	}
	if k := kindOf(functionBody(t, tree, 0)[0]); k != symbols.SymbolLocalVariable {
		t.Fatalf("x is %s", k)
	}
	if len(tree.Globals) != 1 {
		t.Fatalf("globals = %v", tree.Globals)
	}
}

func TestShadowingInitializerSeesOuterVariable(t *testing.T) {
	tree, bag := bindSource(t, "var x = 1.5; { var x = x; }")
	expectCodes(t, bag)
	inner := tree.Statements[1].Data.(bound.BlockData).Stmts[0]
	init, sym := varInit(t, inner)
	outer := init.Data.(bound.VariableData).Symbol
	if outer == sym {
		t.Fatalf("initializer refers to the variable being declared")
	}
	if tree.Table.Symbols.Get(sym).Type != types.Double {
		t.Fatalf("inner x should infer double")
	}
}

func TestDecomposedNameResolvesToComposed(t *testing.T) {
	tree, bag := bindSource(t, "var caf\u00e9 = 1; print(cafe\u0301);")
	expectCodes(t, bag)
	_, decl := varInit(t, tree.Statements[0])
	arg := stmtExpr(t, tree.Statements[1]).Data.(bound.InvokeData).Args[0]
	if got := arg.Data.(bound.VariableData).Symbol; got != decl {
		t.Fatalf("print argument refers to %d, want %d", got, decl)
	}
}

func TestFunctionsVisibleBeforeDeclaration(t *testing.T) {
	_, bag := bindSource(t, "later(1); func early() { later(2); } func later(n: int) {}")
	expectCodes(t, bag)
}

func TestStatementsOutsideFunction(t *testing.T) {
	tree, bag := bindSource(t, "L: goto L; return 1;")
	expectCodes(t, bag, diag.SemaLabelOutsideFunction, diag.SemaGotoOutsideFunction, diag.SemaReturnOutsideFunction)
	for i, s := range tree.Statements {
		if s.Kind != bound.StmtInvalid {
			t.Fatalf("statement %d is %s, want Invalid", i, s.Kind)
		}
	}
}

func TestReturnChecks(t *testing.T) {
	src := `
func a(): int { return; }
func b() { return 1; }
func c(): int { return true; }
func d(): double { return 1; }
func e() { return; }
`
	tree, bag := bindSource(t, src)
	expectCodes(t, bag, diag.SemaMissingReturnValue, diag.SemaUnexpectedReturnValue, diag.SemaTypeMismatch)
	ret := functionBody(t, tree, 3)[0].Data.(bound.ReturnData)
	if ret.Value.Type != types.Double || ret.Value.Kind != bound.ExprConversion {
		t.Fatalf("return value = %s %s, want conversion to double", ret.Value.Kind, ret.Value.Type)
	}
}

func TestIfConditionMustBeBool(t *testing.T) {
	_, bag := bindSource(t, "if (1) print(1); if (true) print(2); else print(3);")
	expectCodes(t, bag, diag.SemaTypeMismatch)
}

func TestBindRecoversFromInternalFailure(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ql", []byte("var x = 1;")))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag, File: file}
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.Tokenize(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	b.Stmts = nil

	tree := binder.Bind(b, res.File, binder.Options{Reporter: rep})
	expectCodes(t, bag, diag.SemaInternal)
	if len(tree.Statements) != 0 || len(tree.Functions) != 0 {
		t.Fatalf("recovered tree should be empty")
	}
	if _, ok := tree.Table.Lookup(tree.Root, symbols.TypeKey(tree.Table.Strings.Intern("int"))); !ok {
		t.Fatalf("recovered tree lost the prelude")
	}
}

func TestBindNilBuilder(t *testing.T) {
	tree := binder.Bind(nil, ast.NoFileID, binder.Options{})
	if tree == nil || tree.Table == nil || !tree.Root.IsValid() {
		t.Fatalf("expected an empty tree with a root scope")
	}
}
