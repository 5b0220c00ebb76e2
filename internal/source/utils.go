package source

import (
	"bytes"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Inspect reports what the loader found in content. Nothing is rewritten:
// tokens must reproduce the source byte for byte.
func Inspect(content []byte) FileFlags {
	var flags FileFlags
	if HasBOM(content) {
		flags |= FileHasBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		flags |= FileHasCRLF
	}
	if !norm.NFC.IsNormal(content) {
		flags |= FileNotNFC
	}
	return flags
}

// BOM is the UTF-8 byte order mark.
const BOM = "\xEF\xBB\xBF"

func HasBOM(content []byte) bool {
	return bytes.HasPrefix(content, []byte(BOM))
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- bounded by File.Len
		}
	}
	return out
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
