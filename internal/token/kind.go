package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a character the language does not accept.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Whitespace is a run of spaces, tabs and newlines.
	Whitespace
	// Comment is a line comment, a block comment or a stray '*/'.
	Comment

	// Ident represents an identifier token.
	Ident
	// IntLit is an integer literal (decimal, 0x, 0o, 0b).
	IntLit
	// FloatLit is a literal with a fraction or an exponent.
	FloatLit
	// StringLit is a double-quoted string literal.
	StringLit

	// KwFunc represents the 'func' keyword.
	KwFunc
	// KwVar represents the 'var' keyword.
	KwVar
	// KwLet represents the 'let' keyword.
	KwLet
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElse represents the 'else' keyword.
	KwElse
	// KwReturn represents the 'return' keyword.
	KwReturn
	// KwGoto represents the 'goto' keyword.
	KwGoto
	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Amp       // &
	Pipe      // |
	Caret     // ^
	Bang      // !
	BangEq    // !=
	Assign    // =
	EqEq      // ==
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;
	Colon     // :
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Whitespace: "Whitespace",
	Comment:    "Comment",
	Ident:      "Ident",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	KwFunc:     "KwFunc",
	KwVar:      "KwVar",
	KwLet:      "KwLet",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwReturn:   "KwReturn",
	KwGoto:     "KwGoto",
	KwTrue:     "KwTrue",
	KwFalse:    "KwFalse",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Amp:        "Amp",
	Pipe:       "Pipe",
	Caret:      "Caret",
	Bang:       "Bang",
	BangEq:     "BangEq",
	Assign:     "Assign",
	EqEq:       "EqEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Colon:      "Colon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSpelling = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", BangEq: "!=",
	Assign: "=", EqEq: "==", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	Comma: ",", Semicolon: ";", Colon: ":",
	KwFunc: "func", KwVar: "var", KwLet: "let", KwIf: "if", KwElse: "else",
	KwReturn: "return", KwGoto: "goto", KwTrue: "true", KwFalse: "false",
}

// Describe returns how the kind is written in source, for messages like
// "expected ';'". Kinds without fixed spelling describe themselves.
func (k Kind) Describe() string {
	if s, ok := kindSpelling[k]; ok {
		return "'" + s + "'"
	}
	switch k {
	case Ident:
		return "identifier"
	case IntLit, FloatLit, StringLit:
		return "literal"
	case EOF:
		return "end of file"
	default:
		return k.String()
	}
}

// Spelling returns the fixed source spelling of operators, punctuation and
// keywords, or "" for kinds without one.
func (k Kind) Spelling() string {
	return kindSpelling[k]
}
