package types

// Conversion classifies how a value of one type becomes another.
type Conversion uint8

const (
	ConvNone Conversion = iota
	ConvIdentity
	ConvImplicit
	ConvExplicit
)

func (c Conversion) String() string {
	switch c {
	case ConvIdentity:
		return "identity"
	case ConvImplicit:
		return "implicit"
	case ConvExplicit:
		return "explicit"
	default:
		return "none"
	}
}

// Exists reports whether some conversion applies.
func (c Conversion) Exists() bool { return c != ConvNone }

// IsImplicit is true for conversions the binder may insert on its own.
func (c Conversion) IsImplicit() bool { return c == ConvIdentity || c == ConvImplicit }

// Classify is total over registered types:
//
//	from == to, or either is Invalid   identity
//	int → double                       implicit
//	double → int                       explicit
//	int/double/bool ⇄ string           explicit
//	everything else                    none
func Classify(from, to TypeID) Conversion {
	if from == to || from == Invalid || to == Invalid {
		return ConvIdentity
	}
	switch {
	case from == Int && to == Double:
		return ConvImplicit
	case from == Double && to == Int:
		return ConvExplicit
	case to == String && stringable(from), from == String && stringable(to):
		return ConvExplicit
	}
	return ConvNone
}

func stringable(id TypeID) bool {
	return id == Int || id == Double || id == Bool
}
