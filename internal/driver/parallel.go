package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/trace"
)

// SourceExt is the extension of Quill source files.
const SourceExt = ".ql"

// DirResult содержит результат проверки одного файла директории.
// Result is nil when the file could not be loaded; Bag then holds the
// IO diagnostic.
type DirResult struct {
	Path   string
	Bag    *diag.Bag
	Result *CheckResult
}

// ListSourceFiles возвращает отсортированный список всех *.ql файлов в директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every source file under dir in parallel. Each file is an
// independent compilation unit with its own bag; results come back in path
// order regardless of scheduling.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check-dir", trace.CurrentSpan(ctx)).
		WithExtra("dir", dir).
		WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// FileSet не потокобезопасен на запись: загружаем всё заранее
	fileSet := source.NewFileSet()
	loaded := make([]*source.File, len(files))
	results := make([]DirResult, len(files))
	for i, path := range files {
		file, bag, loadErr := loadFile(fileSet, path, opts.MaxDiagnostics)
		results[i] = DirResult{Path: path, Bag: bag}
		if loadErr == nil {
			loaded[i] = file
		}
	}
	if len(files) == 0 {
		return fileSet, results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		file := loaded[i]
		if file == nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс i уникален, мьютекс не нужен
			results[i].Result = checkFile(gctx, fileSet, file, results[i].Bag, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of every file into one bag, in path
// order. limit caps the merged bag; 0 means unlimited.
func MergeBags(results []DirResult, limit int) *diag.Bag {
	out := diag.NewBag(limit)
	for _, r := range results {
		out.Merge(r.Bag)
	}
	return out
}
