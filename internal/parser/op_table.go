package parser

import (
	"quill/internal/token"
)

// Таблица приоритетов. Чем больше число, тем выше приоритет; 0 — не оператор.
const (
	precBitwiseOr      = 1 // |
	precBitwiseXor     = 2 // ^
	precBitwiseAnd     = 3 // &
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
	precUnary          = 8 // + - !
)

func binaryPrecedence(kind token.Kind) int {
	switch kind {
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	case token.Plus, token.Minus:
		return precAdditive
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Amp:
		return precBitwiseAnd
	case token.Caret:
		return precBitwiseXor
	case token.Pipe:
		return precBitwiseOr
	default:
		return 0
	}
}

func unaryPrecedence(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus, token.Bang:
		return precUnary
	default:
		return 0
	}
}
