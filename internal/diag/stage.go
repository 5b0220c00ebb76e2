package diag

// Stage names the pipeline component that produced a diagnostic.
type Stage uint8

const (
	StageDriver Stage = iota
	StageLexer
	StageParser
	StageBinder
)

func (s Stage) String() string {
	switch s {
	case StageLexer:
		return "Lexer"
	case StageParser:
		return "Parser"
	case StageBinder:
		return "Binder"
	default:
		return "Driver"
	}
}
