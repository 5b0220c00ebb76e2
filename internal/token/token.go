package token

import (
	"strconv"

	"quill/internal/source"
)

// Category splits the stream into what the parser sees and what it skips.
type Category uint8

const (
	CategoryTerminal Category = iota
	CategoryTrivia
	CategoryInvalid
)

func (c Category) String() string {
	switch c {
	case CategoryTerminal:
		return "terminal"
	case CategoryTrivia:
		return "trivia"
	case CategoryInvalid:
		return "invalid"
	default:
		return "category(?)"
	}
}

// ValueKind tags the payload of a literal token.
type ValueKind uint8

const (
	NoValue ValueKind = iota
	IntValue
	FloatValue
	StringValue
	BoolValue
)

// Value is the parsed payload of a literal token. Malformed literals keep
// Kind == NoValue.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (v Value) String() string {
	switch v.Kind {
	case IntValue:
		return strconv.FormatInt(v.Int, 10)
	case FloatValue:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case StringValue:
		return strconv.Quote(v.Str)
	case BoolValue:
		return strconv.FormatBool(v.Bool)
	default:
		return "<none>"
	}
}

func IntVal(n int64) Value { return Value{Kind: IntValue, Int: n} }
func FloatVal(f float64) Value { return Value{Kind: FloatValue, Float: f} }
func StringVal(s string) Value { return Value{Kind: StringValue, Str: s} }
func BoolVal(b bool) Value { return Value{Kind: BoolValue, Bool: b} }

// Token represents a single source token with its location.
type Token struct {
	Kind     Kind
	Category Category
	Span     source.Span
	Pos      source.LineCol // start of Span
	Text     string
	Value    Value
	// Forged tokens were synthesized by the parser to stand in for a
	// missing one. They are zero-width.
	Forged bool
}

// IsTrivia reports whether the parser should skip the token.
func (t Token) IsTrivia() bool { return t.Category == CategoryTrivia }

// IsLiteral reports whether the token is a numeric, boolean or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunc && t.Kind <= KwFalse
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Forge builds the zero-width placeholder the parser returns when an
// expected token is missing. at supplies the location.
func Forge(kind Kind, at Token) Token {
	return Token{
		Kind:     kind,
		Category: CategoryTerminal,
		Span:     at.Span.ZeroAt(),
		Pos:      at.Pos,
		Forged:   true,
	}
}

// Filter drops trivia. The result shares no backing array with tokens.
func Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}
