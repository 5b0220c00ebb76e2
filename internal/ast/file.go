package ast

import (
	"quill/internal/source"
)

// File is the compilation unit: members in source order.
type File struct {
	Span    source.Span
	Members []MemberID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:    sp,
		Members: make([]MemberID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
