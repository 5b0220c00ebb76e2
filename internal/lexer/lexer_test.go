package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ql", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	toks := token.Filter(collectAllTokens(lx))
	got := kindsOf(toks)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("%q: kinds = %v, want %v", input, got, want)
	}
	return toks
}

func TestOperators(t *testing.T) {
	expectKinds(t, "!= == <= >= ! = < >",
		token.BangEq, token.EqEq, token.LtEq, token.GtEq,
		token.Bang, token.Assign, token.Lt, token.Gt, token.EOF)
	expectKinds(t, "a!=b", token.Ident, token.BangEq, token.Ident, token.EOF)
	expectKinds(t, "+ - * / % & | ^ ( ) { } , ; :",
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Amp, token.Pipe, token.Caret, token.LParen, token.RParen,
		token.LBrace, token.RBrace, token.Comma, token.Semicolon, token.Colon, token.EOF)
	// "!==" — жадно "!=", потом "="
	expectKinds(t, "!==", token.BangEq, token.Assign, token.EOF)
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := expectKinds(t, "func var let if else return goto true false If _x x1 имя",
		token.KwFunc, token.KwVar, token.KwLet, token.KwIf, token.KwElse,
		token.KwReturn, token.KwGoto, token.KwTrue, token.KwFalse,
		token.Ident, token.Ident, token.Ident, token.Ident, token.EOF)
	if v := toks[7].Value; v.Kind != token.BoolValue || !v.Bool {
		t.Errorf("true value = %+v", v)
	}
	if v := toks[8].Value; v.Kind != token.BoolValue || v.Bool {
		t.Errorf("false value = %+v", v)
	}
	if toks[12].Text != "имя" {
		t.Errorf("unicode ident text = %q", toks[12].Text)
	}
}

// Буква — unicode.IsLetter; цифры и комбинирующие знаки допустимы только после первой.
func TestUnicodeIdentifierClasses(t *testing.T) {
	toks := expectKinds(t, "π2 x\u0301y _٣ ٣x",
		token.Ident, token.Ident, token.Ident, token.Invalid, token.Ident, token.EOF)
	for i, want := range []string{"π2", "x\u0301y", "_٣", "٣", "x"} {
		if toks[i].Text != want {
			t.Errorf("token %d = %q, want %q", i, toks[i].Text, want)
		}
	}

	lx, rep := makeTestLexer("a€b")
	got := kindsOf(token.Filter(collectAllTokens(lx)))
	if fmt.Sprint(got) != fmt.Sprint([]token.Kind{token.Ident, token.Invalid, token.Ident, token.EOF}) {
		t.Errorf("kinds = %v", got)
	}
	if fmt.Sprint(rep.codes()) != fmt.Sprint([]diag.Code{diag.LexUnknownChar}) {
		t.Errorf("codes = %v", rep.codes())
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		value token.Value
		bad   bool
	}{
		{"0", token.IntLit, token.IntVal(0), false},
		{"123", token.IntLit, token.IntVal(123), false},
		{"0x1F", token.IntLit, token.IntVal(31), false},
		{"0o17", token.IntLit, token.IntVal(15), false},
		{"0b101", token.IntLit, token.IntVal(5), false},
		{"1.5", token.FloatLit, token.FloatVal(1.5), false},
		{"1e3", token.FloatLit, token.FloatVal(1000), false},
		{"2.5E-2", token.FloatLit, token.FloatVal(0.025), false},
		{"0x", token.IntLit, token.Value{}, true},
		{"1e", token.FloatLit, token.Value{}, true},
		{"1e+", token.FloatLit, token.Value{}, true},
		{"99999999999999999999", token.IntLit, token.Value{}, true},
		{"1e999", token.FloatLit, token.Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != tt.kind || tok.Text != tt.input {
				t.Fatalf("got %v %q, want %v %q", tok.Kind, tok.Text, tt.kind, tt.input)
			}
			if tok.Value != tt.value {
				t.Errorf("value = %+v, want %+v", tok.Value, tt.value)
			}
			if tt.bad {
				if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
					t.Errorf("expected one LexBadNumber, got %v", rep.codes())
				}
			} else if len(rep.diagnostics) != 0 {
				t.Errorf("unexpected diagnostics %v", rep.codes())
			}
			if next := lx.Next(); next.Kind != token.EOF {
				t.Errorf("number did not consume all input, next = %v %q", next.Kind, next.Text)
			}
		})
	}
}

func TestNumberPrefixAlphabet(t *testing.T) {
	toks := expectKinds(t, "0b102", token.IntLit, token.IntLit, token.EOF)
	if toks[0].Text != "0b10" || toks[0].Value.Int != 2 || toks[1].Text != "2" {
		t.Errorf("got %q=%d and %q", toks[0].Text, toks[0].Value.Int, toks[1].Text)
	}
	// точка без цифры за ней не входит в число и не является токеном
	expectKinds(t, "1.x", token.IntLit, token.Invalid, token.Ident, token.EOF)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
		value string
		codes []diag.Code
	}{
		{"simple", `"abc"`, `"abc"`, "abc", nil},
		{"escaped quote", `"a\"b"`, `"a\"b"`, `a\"b`, nil},
		{"escaped backslash", `"a\\"`, `"a\\"`, `a\\`, nil},
		{"unterminated eof", `"abc`, `"abc`, "abc", []diag.Code{diag.LexUnterminatedString}},
		{"unterminated newline", "\"ab\ncd", `"ab`, "ab", []diag.Code{diag.LexUnterminatedString}},
		{"escape at eof", `"a\`, `"a\`, `a\`, []diag.Code{diag.LexUnterminatedString}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			tok := lx.Next()
			if tok.Kind != token.StringLit || tok.Text != tt.text {
				t.Fatalf("got %v %q, want StringLit %q", tok.Kind, tok.Text, tt.text)
			}
			if tok.Value.Kind != token.StringValue || tok.Value.Str != tt.value {
				t.Errorf("value = %+v, want %q", tok.Value, tt.value)
			}
			if fmt.Sprint(rep.codes()) != fmt.Sprint(tt.codes) {
				t.Errorf("codes = %v, want %v", rep.codes(), tt.codes)
			}
		})
	}
}

// Unterminated block comment: one Comment token, one diagnostic, then EOF.
func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("/* abc")
	toks := collectAllTokens(lx)
	if len(toks) != 2 || toks[0].Kind != token.Comment || toks[1].Kind != token.EOF {
		t.Fatalf("tokens = %v", kindsOf(toks))
	}
	if toks[0].Text != "/* abc" || !toks[0].IsTrivia() {
		t.Errorf("comment = %+v", toks[0])
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics = %v", rep.codes())
	}
	if rep.diagnostics[0].Message != "unterminated comment" {
		t.Errorf("message = %q", rep.diagnostics[0].Message)
	}
}

func TestBlockCommentsDoNotNest(t *testing.T) {
	lx, rep := makeTestLexer("/* a /* b */ c */")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.Comment, token.Whitespace, token.Ident, token.Whitespace, token.Comment, token.EOF}
	if fmt.Sprint(kindsOf(toks)) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(toks), want)
	}
	if toks[0].Text != "/* a /* b */" || toks[4].Text != "*/" {
		t.Errorf("texts = %q, %q", toks[0].Text, toks[4].Text)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnexpectedCommentEnd {
		t.Errorf("diagnostics = %v", rep.codes())
	}
}

func TestLineCommentAndTrivia(t *testing.T) {
	lx, rep := makeTestLexer("x // note\n\t y")
	toks := collectAllTokens(lx)
	want := []token.Kind{token.Ident, token.Whitespace, token.Comment, token.Whitespace, token.Ident, token.EOF}
	if fmt.Sprint(kindsOf(toks)) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(toks), want)
	}
	if toks[3].Text != "\n\t " {
		t.Errorf("whitespace run = %q", toks[3].Text)
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", rep.codes())
	}
	for _, tok := range toks {
		wantCat := token.CategoryTerminal
		if tok.Kind == token.Whitespace || tok.Kind == token.Comment {
			wantCat = token.CategoryTrivia
		}
		if tok.Category != wantCat {
			t.Errorf("%v category = %v", tok.Kind, tok.Category)
		}
	}
}

func TestInvalidCharacter(t *testing.T) {
	lx, rep := makeTestLexer("a $ €b")
	toks := token.Filter(collectAllTokens(lx))
	want := []token.Kind{token.Ident, token.Invalid, token.Invalid, token.Ident, token.EOF}
	if fmt.Sprint(kindsOf(toks)) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", kindsOf(toks), want)
	}
	if toks[2].Text != "€" || toks[1].Category != token.CategoryInvalid {
		t.Errorf("invalid tokens = %+v %+v", toks[1], toks[2])
	}
	if len(rep.diagnostics) != 2 || rep.diagnostics[0].Message != `invalid character '$'` {
		t.Errorf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestEOFRepeats(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF || !tok.Span.Empty() || tok.Span.Start != 1 {
			t.Fatalf("call %d: %+v", i, tok)
		}
	}
}

func TestPositions(t *testing.T) {
	input := "var x\n  = \"п\" +\r\n y;"
	lx, _ := makeTestLexer(input)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ql", []byte(input)))
	for _, tok := range collectAllTokens(lx) {
		if want := file.Position(tok.Span.Start); tok.Pos != want {
			t.Errorf("%v %q at %v, file says %v", tok.Kind, tok.Text, tok.Pos, want)
		}
	}

	lx, _ = makeTestLexer("a\n  b")
	toks := token.Filter(collectAllTokens(lx))
	if toks[1].Pos != (source.LineCol{Line: 2, Col: 3}) {
		t.Errorf("b at %v", toks[1].Pos)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"func main() { print(\"hi\"); }\n",
		"var x: int = 0x1F + 2.5e3; // tail",
		"/* open",
		"\"unterminated\nnext line",
		"a $ b */ c @ ~",
		"0x 1e+ 99999999999999999999",
		"  \t\n\n",
		"L: goto L;",
	}
	for _, in := range inputs {
		lx, _ := makeTestLexer(in)
		var sb strings.Builder
		for _, tok := range collectAllTokens(lx) {
			sb.WriteString(tok.Text)
		}
		if sb.String() != in {
			t.Errorf("round trip of %q produced %q", in, sb.String())
		}
	}
}

// Источник не переписывается: CRLF, BOM и NFD остаются в тексте токенов.
func TestRoundTripKeepsRawBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string // значение единственного строкового литерала, если есть
	}{
		{"crlf", "var a = 1;\r\nvar b = 2;\r\n", ""},
		{"bom", "\ufeffvar x = 1;", ""},
		{"bom only", "\ufeff", ""},
		{"nfd string", "print(\"e\u0301\");", "e\u0301"},
		{"nfd identifier", "var cafe\u0301 = 1;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("raw.ql", []byte(tt.input)))
			rep := &testReporter{}
			var sb strings.Builder
			for _, tok := range lexer.Tokenize(file, lexer.Options{Reporter: rep}) {
				sb.WriteString(tok.Text)
				if tok.Kind == token.StringLit && tok.Value.Str != tt.value {
					t.Errorf("string value = %q, want %q", tok.Value.Str, tt.value)
				}
			}
			if sb.String() != tt.input {
				t.Errorf("round trip produced %q, want %q", sb.String(), tt.input)
			}
			if len(rep.diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %v", rep.codes())
			}
		})
	}
}

func TestBOMIsTrivia(t *testing.T) {
	toks := expectKinds(t, "\ufeffx", token.Ident, token.EOF)
	if toks[0].Pos != (source.LineCol{Line: 1, Col: 2}) {
		t.Errorf("x at %v", toks[0].Pos)
	}
	// BOM не в начале файла остаётся недопустимым символом
	lx, rep := makeTestLexer("x\ufeff")
	collectAllTokens(lx)
	if fmt.Sprint(rep.codes()) != fmt.Sprint([]diag.Code{diag.LexUnknownChar}) {
		t.Errorf("codes = %v", rep.codes())
	}
}

func TestTokenTooLongAbsorbsRest(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.ql", []byte("abcdefghijkl rest")))
	rep := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: rep, MaxTokenLength: 8})

	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Text != "abcdefghijkl rest" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexTokenTooLong {
		t.Fatalf("diagnostics = %v", rep.codes())
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenizeRecoversFromInternalFailure(t *testing.T) {
	rep := &testReporter{}
	toks := lexer.Tokenize(nil, lexer.Options{Reporter: rep})
	if len(toks) != 0 {
		t.Fatalf("expected empty stream, got %d tokens", len(toks))
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexInternal {
		t.Fatalf("diagnostics = %v", rep.codes())
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ql", []byte("let y = 1;")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("stream does not end with EOF: %v", kindsOf(toks))
	}
	for _, tok := range toks[:len(toks)-1] {
		if tok.Kind == token.EOF {
			t.Fatalf("EOF in the middle of the stream")
		}
	}
}
