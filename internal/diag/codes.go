package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnexpectedCommentEnd     Code = 1006
	LexInternal                 Code = 1999

	// Парсерные
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynNestingTooDeep   Code = 2003
	SynInternal         Code = 2999

	// Семантические
	SemaDuplicateSymbol       Code = 3001
	SemaUndefinedVariable     Code = 3002
	SemaUndefinedFunction     Code = 3003
	SemaUndefinedType         Code = 3004
	SemaUndefinedLabel        Code = 3005
	SemaNotAFunction          Code = 3006
	SemaNotAVariable          Code = 3007
	SemaTypeMismatch          Code = 3010
	SemaInvalidConversion     Code = 3011
	SemaReadOnlyAssign        Code = 3012
	SemaMissingType           Code = 3013
	SemaVoidVariable          Code = 3014
	SemaArityMismatch         Code = 3020
	SemaNoOverload            Code = 3021
	SemaAmbiguousOverload     Code = 3022
	SemaNoOperator            Code = 3023
	SemaLabelOutsideFunction  Code = 3030
	SemaGotoOutsideFunction   Code = 3031
	SemaReturnOutsideFunction Code = 3032
	SemaMissingReturnValue    Code = 3033
	SemaUnexpectedReturnValue Code = 3034
	SemaTypeNameAsFunction    Code = 3035
	SemaInternal              Code = 3999

	// Драйвер и ввод-вывод
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Invalid character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated comment",
	LexBadNumber:                "Invalid literal",
	LexTokenTooLong:             "Token too long",
	LexUnexpectedCommentEnd:     "Unexpected end of comment",
	LexInternal:                 "Internal lexer failure",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expected expression",
	SynNestingTooDeep:           "Nesting too deep",
	SynInternal:                 "Internal parser failure",
	SemaDuplicateSymbol:         "Symbol already declared",
	SemaUndefinedVariable:       "Undefined variable",
	SemaUndefinedFunction:       "Undefined function",
	SemaUndefinedType:           "Undefined type",
	SemaUndefinedLabel:          "Undefined label",
	SemaNotAFunction:            "Not a function",
	SemaNotAVariable:            "Not a variable",
	SemaTypeMismatch:            "Type mismatch",
	SemaInvalidConversion:       "Invalid conversion",
	SemaReadOnlyAssign:          "Assignment to read-only variable",
	SemaMissingType:             "Missing type and initializer",
	SemaVoidVariable:            "Variable of type void",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaNoOverload:              "No compatible overload",
	SemaAmbiguousOverload:       "Ambiguous call",
	SemaNoOperator:              "Operator not defined for operand types",
	SemaLabelOutsideFunction:    "Label outside function",
	SemaGotoOutsideFunction:     "Goto outside function",
	SemaReturnOutsideFunction:   "Return outside function",
	SemaMissingReturnValue:      "Missing return value",
	SemaUnexpectedReturnValue:   "Unexpected return value",
	SemaTypeNameAsFunction:      "Type name used as function name",
	SemaInternal:                "Internal binder failure",
	IOLoadFileError:             "Cannot load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Stage returns the pipeline stage owning the code range.
func (c Code) Stage() Stage {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return StageLexer
	case ic >= 2000 && ic < 3000:
		return StageParser
	case ic >= 3000 && ic < 4000:
		return StageBinder
	default:
		return StageDriver
	}
}
