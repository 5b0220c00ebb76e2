package driver

import (
	"context"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize загружает файл и прогоняет только лексер.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, bag, err := loadFile(fs, path, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{FileSet: fs, File: file, Bag: bag}
	opts.stage(ctx, "tokenize", file.Path, func(context.Context) {
		res.Tokens = lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag, File: file}})
	})
	return res, nil
}
