package types

import "quill/internal/token"

// Signature describes one callable overload: a builtin function or an
// operator. Operators are keyed by the token kind they are spelled with.
type Signature struct {
	Name   string
	Op     token.Kind // token.Invalid for named functions
	Params []TypeID
	Result TypeID
}

func bin(op token.Kind, operand, result TypeID) Signature {
	return Signature{Name: op.Spelling(), Op: op, Params: []TypeID{operand, operand}, Result: result}
}

func un(op token.Kind, operand TypeID) Signature {
	return Signature{Name: op.Spelling(), Op: op, Params: []TypeID{operand}, Result: operand}
}

var binaryTable = []Signature{
	bin(token.Plus, Int, Int), bin(token.Plus, Double, Double), bin(token.Plus, String, String),
	bin(token.Minus, Int, Int), bin(token.Minus, Double, Double),
	bin(token.Star, Int, Int), bin(token.Star, Double, Double),
	bin(token.Slash, Int, Int), bin(token.Slash, Double, Double),
	bin(token.Percent, Int, Int),

	bin(token.Lt, Int, Bool), bin(token.Lt, Double, Bool),
	bin(token.LtEq, Int, Bool), bin(token.LtEq, Double, Bool),
	bin(token.Gt, Int, Bool), bin(token.Gt, Double, Bool),
	bin(token.GtEq, Int, Bool), bin(token.GtEq, Double, Bool),

	bin(token.EqEq, Int, Bool), bin(token.EqEq, Double, Bool), bin(token.EqEq, Bool, Bool), bin(token.EqEq, String, Bool),
	bin(token.BangEq, Int, Bool), bin(token.BangEq, Double, Bool), bin(token.BangEq, Bool, Bool), bin(token.BangEq, String, Bool),

	// & | ^ — побитовые на int, логические на bool
	bin(token.Amp, Int, Int), bin(token.Amp, Bool, Bool),
	bin(token.Pipe, Int, Int), bin(token.Pipe, Bool, Bool),
	bin(token.Caret, Int, Int), bin(token.Caret, Bool, Bool),
}

var unaryTable = []Signature{
	un(token.Plus, Int), un(token.Plus, Double),
	un(token.Minus, Int), un(token.Minus, Double),
	un(token.Bang, Bool),
}

// BinaryOperators returns the predeclared binary operator overloads.
func BinaryOperators() []Signature { return cloneSigs(binaryTable) }

// UnaryOperators returns the predeclared unary operator overloads.
func UnaryOperators() []Signature { return cloneSigs(unaryTable) }

var builtinTable = []Signature{
	{Name: "print", Params: []TypeID{String}, Result: Void},
	{Name: "print", Params: []TypeID{Int}, Result: Void},
	{Name: "print", Params: []TypeID{Double}, Result: Void},
	{Name: "print", Params: []TypeID{Bool}, Result: Void},
	{Name: "input", Result: String},
	{Name: "len", Params: []TypeID{String}, Result: Int},
}

// BuiltinFunctions returns the functions present in every global scope.
func BuiltinFunctions() []Signature { return cloneSigs(builtinTable) }

func cloneSigs(in []Signature) []Signature {
	out := make([]Signature, len(in))
	for i, s := range in {
		s.Params = append([]TypeID(nil), s.Params...)
		out[i] = s
	}
	return out
}
