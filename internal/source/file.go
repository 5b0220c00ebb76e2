package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// At returns the byte at off, or 0 past the end.
func (f *File) At(off uint32) byte {
	if off >= f.Len() {
		return 0
	}
	return f.Content[off]
}

// Text returns the source text covered by sp, clamped to the content.
func (f *File) Text(sp Span) string {
	n := f.Len()
	start, end := min(sp.Start, n), min(sp.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// Position maps a byte offset to a line and a code-point column.
func (f *File) Position(off uint32) LineCol {
	off = min(off, f.Len())
	// число переводов строки строго до off
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	col, err := safecast.Conv[uint32](utf8.RuneCount(f.Content[start:off]) + 1)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: col}
}

// Offset is the inverse of Position. It reports false for positions that do
// not exist in the file.
func (f *File) Offset(lc LineCol) (uint32, bool) {
	if lc.Line == 0 || lc.Col == 0 {
		return 0, false
	}
	start, end, ok := f.lineBounds(lc.Line)
	if !ok {
		return 0, false
	}
	off := start
	for col := uint32(1); col < lc.Col; col++ {
		if off >= end {
			return 0, false
		}
		_, size := utf8.DecodeRune(f.Content[off:end])
		off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}
	return off, true
}

// LineCount returns the number of lines; an empty file has one.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	return n
}

// GetLine returns line lineNum (1-based) without its newline, or "".
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.lineBounds(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) lineBounds(lineNum uint32) (start, end uint32, ok bool) {
	if lineNum == 0 || lineNum > f.LineCount() {
		return 0, 0, false
	}
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end = f.Len()
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	return start, end, true
}

// FormatPath renders the path for diagnostics.
// mode: "absolute", "relative", "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
