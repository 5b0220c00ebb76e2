package diagfmt

import (
	"quill/internal/diag"
	"quill/internal/source"
)

// lineBounds returns the byte range of 1-based line, without the newline.
func lineBounds(f *source.File, line uint32) (start, end uint32) {
	n := f.Len()
	if line == 0 {
		return 0, 0
	}
	if line >= 2 {
		idx := int(line - 2)
		if idx >= len(f.LineIdx) {
			return n, n
		}
		start = f.LineIdx[idx] + 1
	}
	end = n
	if idx := int(line - 1); idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	return start, end
}

func lineText(f *source.File, line uint32) string {
	start, end := lineBounds(f, line)
	return f.Text(source.Span{File: f.ID, Start: start, End: end})
}

func knownFile(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

// diagnosticFile returns the file a diagnostic points into. Driver
// diagnostics with an empty span (a file that failed to load) have none.
func diagnosticFile(fs *source.FileSet, d diag.Diagnostic) *source.File {
	if d.Stage() == diag.StageDriver && d.Primary.Empty() {
		return nil
	}
	return knownFile(fs, d.Primary)
}
