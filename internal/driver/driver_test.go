package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"quill/internal/diag"
	"quill/internal/observ"
	"quill/internal/source"
	"quill/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckRunsEveryStage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.ql", "var x: int = true;\nprint(x);\n")
	timer := observ.NewTimer()
	res, err := Check(context.Background(), path, Options{Timer: timer})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Tree == nil || res.Builder == nil || len(res.Tokens) == 0 {
		t.Fatalf("incomplete result: %+v", res)
	}
	if got := codesOf(res.Bag); !slices.Equal(got, []diag.Code{diag.SemaTypeMismatch}) {
		t.Fatalf("codes = %v", got)
	}
	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"tokenize", "parse", "bind"}) {
		t.Fatalf("phases = %v", names)
	}
}

func TestLoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.ql")
	if _, err := Check(context.Background(), missing, Options{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, err := Tokenize(context.Background(), missing, Options{}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestTokenizeAndParse(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.ql", "let a = 1;")
	tok, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	// let a = 1 ; EOF плюс пробелы
	if len(tok.Tokens) < 6 || tok.Bag.Len() != 0 {
		t.Fatalf("tokens = %d, diagnostics = %d", len(tok.Tokens), tok.Bag.Len())
	}
	parsed, err := Parse(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if f := parsed.Builder.Files.Get(parsed.FileID); f == nil || len(f.Members) != 1 {
		t.Fatalf("parsed file = %+v", f)
	}
}

func TestParseHonoursMaxDiagnostics(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.ql", "var = ; var = ; var = ; var = ;")
	res, err := Parse(context.Background(), path, Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("bag holds %d diagnostics, want 2", res.Bag.Len())
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ql", "print(y);")
	writeFile(t, dir, "a.ql", "print(1);")
	writeFile(t, dir, "sub/c.ql", "func f(): int { return 1; }")
	writeFile(t, dir, ".hidden/d.ql", "garbage ((")
	writeFile(t, dir, "notes.txt", "not a source")

	var mu sync.Mutex
	events := map[PhaseStatus]int{}
	opts := Options{Jobs: 2, Observer: func(ev PhaseEvent) {
		mu.Lock()
		events[ev.Status]++
		mu.Unlock()
	}}
	fs, results, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	var paths []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	if !slices.Equal(paths, []string{"a.ql", "b.ql", "sub/c.ql"}) {
		t.Fatalf("paths = %v", paths)
	}
	if fs.Len() != 3 {
		t.Fatalf("file set holds %d files", fs.Len())
	}
	if results[0].Bag.Len() != 0 || results[2].Bag.Len() != 0 {
		t.Fatal("clean files reported diagnostics")
	}
	if got := codesOf(results[1].Bag); !slices.Equal(got, []diag.Code{diag.SemaUndefinedVariable}) {
		t.Fatalf("b.ql codes = %v", got)
	}
	// три стадии на файл
	if events[PhaseStart] != 9 || events[PhaseEnd] != 9 {
		t.Fatalf("events = %v", events)
	}
	merged := MergeBags(results, 0)
	if merged.Len() != 1 {
		t.Fatalf("merged bag holds %d diagnostics", merged.Len())
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fs, results, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(results) != 0 || fs == nil {
		t.Fatalf("CheckDir on empty dir = %v, %v, %v", fs, results, err)
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ql", "print(1);")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := CheckDir(ctx, dir, Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDiskCacheReplaysDiagnostics(t *testing.T) {
	cache, err := OpenDiskCache("quill", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "main.ql", "let k = 1;\nk = 2;\nprint(z);\n")
	opts := Options{Cache: cache}

	first, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.Bag.Len() != 2 {
		t.Fatalf("first run: cached=%v, %d diagnostics", first.Cached, first.Bag.Len())
	}
	second, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Tree != nil {
		t.Fatalf("second run was not served from cache")
	}
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("cached %d diagnostics, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Message != b[i].Message || a[i].Pos != b[i].Pos ||
			a[i].Primary != b[i].Primary || len(a[i].Notes) != len(b[i].Notes) {
			t.Errorf("diagnostic %d: got %+v, want %+v", i, b[i], a[i])
		}
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	third, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Fatal("DropAll did not invalidate the cache")
	}
}

func TestDiskCacheRejectsOtherContent(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.ql", []byte("print(1);")))
	payload := newDiskPayload(file, diag.NewBag(0))
	payload.ContentHash[0] ^= 0xff
	if restoreDiagnostics(payload, file, diag.NewBag(0)) {
		t.Fatal("payload for other content was accepted")
	}
}

func TestCacheKey(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.ql", []byte("print(1);")))
	b := fs.Get(fs.AddVirtual("a.ql", []byte("print(1);")))
	c := fs.Get(fs.AddVirtual("a.ql", []byte("print(2);")))
	if cacheKey(a, 0) != cacheKey(b, 0) {
		t.Fatal("same content, different keys")
	}
	if cacheKey(a, 0) == cacheKey(c, 0) {
		t.Fatal("different content, same key")
	}
	if cacheKey(a, 0) == cacheKey(a, 10) {
		t.Fatal("diagnostic limit not part of the key")
	}
}

func TestStagesAreTraced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ql", "print(1);")
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, _, err := CheckDir(ctx, dir, Options{}); err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			seen[ev.Name] = true
		}
	}
	for _, name := range []string{"check-dir", "check", "tokenize", "parse", "bind"} {
		if !seen[name] {
			t.Errorf("no span %q in %v", name, seen)
		}
	}
}
