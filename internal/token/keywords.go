package token

var keywords = map[string]Kind{
	"func":   KwFunc,
	"var":    KwVar,
	"let":    KwLet,
	"if":     KwIf,
	"else":   KwElse,
	"return": KwReturn,
	"goto":   KwGoto,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if any.
// Keywords are case-sensitive: "If" is an identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
