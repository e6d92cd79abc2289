package ssa

import "fmt"

// Value identifies an SSA value. Values are immutable once produced: every
// Value is defined exactly once, by the instruction or phi that allocated
// it (spec.md GLOSSARY, "SSA").
type Value struct {
	id  int
	typ Type
}

// Valid reports whether v was actually allocated (the zero Value is not
// valid, used as a sentinel "no value" in optional operand positions, e.g.
// a void return).
func (v Value) Valid() bool { return v.typ.valid() }

// Type returns the value's type.
func (v Value) Type() Type { return v.typ }

func (v Value) String() string {
	if !v.Valid() {
		return "<invalid>"
	}
	return fmt.Sprintf("v%d", v.id)
}

// ValueInvalid is the sentinel "no value".
var ValueInvalid = Value{}
