package diag

import (
	"quill/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Pos is the line/column of Primary.Start. Zero when the reporter had no
	// file to resolve against.
	Pos   source.LineCol
	Notes []Note
}

// Stage is derived from the code range.
func (d Diagnostic) Stage() Stage {
	return d.Code.Stage()
}
