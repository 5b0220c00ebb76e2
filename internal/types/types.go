package types

import "fmt"

// TypeID uniquely identifies a type in the fixed registry.
type TypeID uint32

// NoTypeID marks the absence of a type. Bound expressions never carry it;
// unresolved expressions use Invalid instead.
const NoTypeID TypeID = 0

const (
	// Invalid is the sentinel for expressions whose type could not be
	// determined. It converts to and from everything silently.
	Invalid TypeID = iota + 1
	Void
	Bool
	Int
	Double
	String

	numTypes = int(String)
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt
	KindDouble
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for a registered type.
type Type struct {
	Kind Kind
	Name string
	// Spellable types may be written in source (type clauses, casts).
	Spellable bool
}

var registry = [...]Type{
	Invalid: {Kind: KindInvalid, Name: "?"},
	Void:    {Kind: KindVoid, Name: "void", Spellable: true},
	Bool:    {Kind: KindBool, Name: "bool", Spellable: true},
	Int:     {Kind: KindInt, Name: "int", Spellable: true},
	Double:  {Kind: KindDouble, Name: "double", Spellable: true},
	String:  {Kind: KindString, Name: "string", Spellable: true},
}

var byName = func() map[string]TypeID {
	m := make(map[string]TypeID, numTypes)
	for id := Void; id <= String; id++ {
		m[registry[id].Name] = id
	}
	return m
}()

// Lookup resolves a source type name. The Invalid sentinel has no spelling.
func Lookup(name string) (TypeID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Lookup returns the descriptor, or false for NoTypeID and unknown ids.
func (id TypeID) Lookup() (Type, bool) {
	if id == NoTypeID || int(id) > numTypes {
		return Type{}, false
	}
	return registry[id], true
}

func (id TypeID) Kind() Kind {
	t, _ := id.Lookup()
	return t.Kind
}

func (id TypeID) String() string {
	if t, ok := id.Lookup(); ok {
		return t.Name
	}
	return fmt.Sprintf("TypeID(%d)", uint32(id))
}

func (id TypeID) IsValid() bool { return id != NoTypeID && id != Invalid }

// All returns every spellable type in registry order.
func All() []TypeID {
	out := make([]TypeID, 0, numTypes-1)
	for id := Void; id <= String; id++ {
		out = append(out, id)
	}
	return out
}
