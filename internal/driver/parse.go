package driver

import (
	"context"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
	"quill/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse runs the lexer and the parser over one file.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	file, bag, err := loadFile(fs, path, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, file, bag, opts), nil
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, bag *diag.Bag, opts Options) *ParseResult {
	rep := diag.BagReporter{Bag: bag, File: file}
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}
	opts.stage(ctx, "tokenize", file.Path, func(context.Context) {
		res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: rep})
	})
	opts.stage(ctx, "parse", file.Path, func(context.Context) {
		// оценка по числу токенов
		hint := uint(len(res.Tokens))
		res.Builder = ast.NewBuilder(ast.Hints{Files: 1, Members: hint / 8, Stmts: hint / 4, Exprs: hint / 2})
		parsed := parser.ParseFile(res.Tokens, res.Builder, parser.Options{
			Reporter:  rep,
			MaxErrors: opts.maxErrors(),
		})
		res.FileID = parsed.File
	})
	return res
}
