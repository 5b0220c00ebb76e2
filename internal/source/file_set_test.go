package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.ql", []byte("hello world"), 0)
	id2 := fs.Add("test.ql", []byte("hello universe"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetLatest("test.ql")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.ql", []byte("a\nb\n")))

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, v := range expected {
		if file.LineIdx[i] != v {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], v)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if file.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", file.LineCount())
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		flags FileFlags
	}{
		{"plain", "x\n", 0},
		{"bom", "\xEF\xBB\xBFx\n", FileHasBOM},
		{"crlf", "a\r\nb\r\n", FileHasCRLF},
		{"lone cr", "a\rb", 0},
		{"nfd", "cafe\u0301", FileNotNFC},
		{"all", "\xEF\xBB\xBFe\u0301\r\n", FileHasBOM | FileHasCRLF | FileNotNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if flags := Inspect([]byte(tt.in)); flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual("v.ql", []byte(tt.in)))
			if string(f.Content) != tt.in {
				t.Errorf("content = %q, want it unchanged %q", f.Content, tt.in)
			}
			if f.Flags != tt.flags|FileVirtual {
				t.Errorf("file flags = %b", f.Flags)
			}
		})
	}
}

func TestInternerFoldsNFC(t *testing.T) {
	in := NewInterner()
	composed := in.Intern("caf\u00e9")
	if got := in.Intern("cafe\u0301"); got != composed {
		t.Fatalf("decomposed spelling got id %d, want %d", got, composed)
	}
	if id, ok := in.Find("cafe\u0301"); !ok || id != composed {
		t.Fatalf("Find = %d, %v", id, ok)
	}
	if s := in.MustLookup(composed); s != "caf\u00e9" {
		t.Fatalf("Lookup = %q", s)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ql")
	if err := os.WriteFile(path, []byte("var x = 1;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "var x = 1;\r\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHasCRLF == 0 {
		t.Error("expected FileHasCRLF flag")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.ql")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPositionAndOffset(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("p.ql", []byte("ab\nпривет x\n\nz")))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{15, LineCol{2, 7}}, // after six two-byte runes
		{16, LineCol{2, 8}},
		{18, LineCol{3, 1}},
		{19, LineCol{4, 1}},
		{20, LineCol{4, 2}},
		{99, LineCol{4, 2}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.off, got, tt.want)
		}
		if tt.off > f.Len() {
			continue
		}
		back, ok := f.Offset(tt.want)
		if !ok || back != tt.off {
			t.Errorf("Offset(%v) = %d, %v; want %d", tt.want, back, ok, tt.off)
		}
	}

	if _, ok := f.Offset(LineCol{Line: 9, Col: 1}); ok {
		t.Error("Offset past the last line must fail")
	}
	if _, ok := f.Offset(LineCol{Line: 1, Col: 9}); ok {
		t.Error("Offset past the end of line must fail")
	}
}

func TestTextAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.ql", []byte("first\nsecond"))
	f := fs.Get(id)

	if got := f.Text(Span{File: id, Start: 6, End: 12}); got != "second" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{File: id, Start: 10, End: 50}); got != "nd" {
		t.Errorf("clamped Text = %q", got)
	}
	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if f.At(0) != 'f' || f.At(100) != 0 {
		t.Error("At returned unexpected bytes")
	}

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 12})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 7}) {
		t.Errorf("Resolve = %v-%v", start, end)
	}
}
