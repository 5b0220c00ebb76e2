package diagfmt

// PrettyOpts configures human-readable rendering of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int  // строк контекста над строкой ошибки
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	IncludeNotes     bool
	Max              int // обрезка вывода, не Bag
}
