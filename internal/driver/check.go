package driver

import (
	"context"

	"quill/internal/binder"
	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/trace"
)

// CheckResult is the output of the full front end for one file. A result
// restored from the disk cache has diagnostics only: Tokens, Builder and
// Tree stay nil.
type CheckResult struct {
	ParseResult
	Tree   *bound.Tree
	Cached bool
}

// Check runs lexer, parser and binder over one file.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	fs := source.NewFileSet()
	file, bag, err := loadFile(fs, path, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	return checkFile(ctx, fs, file, bag, opts), nil
}

func checkFile(ctx context.Context, fs *source.FileSet, file *source.File, bag *diag.Bag, opts Options) *CheckResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "check", trace.CurrentSpan(ctx)).WithExtra("file", file.Path)
	ctx = trace.WithSpan(ctx, span)

	key := cacheKey(file, opts.MaxDiagnostics)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", "read failed: "+err.Error(), span.ID())
		}
		if hit && restoreDiagnostics(&payload, file, bag) {
			span.End("cached")
			return &CheckResult{ParseResult: ParseResult{FileSet: fs, File: file, Bag: bag}, Cached: true}
		}
	}

	res := &CheckResult{ParseResult: *parseFile(ctx, fs, file, bag, opts)}
	opts.stage(ctx, "bind", file.Path, func(context.Context) {
		res.Tree = binder.Bind(res.Builder, res.FileID, binder.Options{
			Reporter: diag.BagReporter{Bag: bag, File: file},
		})
	})

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newDiskPayload(file, bag)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", "write failed: "+err.Error(), span.ID())
		}
	}
	span.End("")
	return res
}
