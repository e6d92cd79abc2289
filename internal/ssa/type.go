// Package ssa implements the IR builder collaborator specified in spec.md
// §6.2: a backend-agnostic SSA value/instruction/block builder that
// internal/frontend drives one opcode at a time. Its internals, register
// allocation, and machine-code emission are explicitly out of scope
// (spec.md §1); what lives here is the minimal, concrete surface the
// translator needs to call and the test suite needs to observe, structured
// the way tetratelabs/wazero's internal/engine/wazevo/ssa package is
// structured (Type, Value, Instruction, BasicBlock, Builder).
package ssa

import "fmt"

// Type is an SSA value type. Only the integer and pointer types the
// translator of spec.md §4.4 can produce are modeled; floating point is out
// of scope (spec.md §1).
type Type byte

const (
	typeInvalid Type = iota
	TypeI32
	TypeI64
	// TypePtr represents an opaque pointer-sized value, used for the
	// memory base and for effective addresses computed by PtrOff (spec.md
	// §4.4.7).
	TypePtr
)

func (t Type) String() string {
	switch t {
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypePtr:
		return "ptr"
	default:
		return "invalid"
	}
}

// Bits returns the width of t in bits. TypePtr is treated as 64-bit, matching
// spec.md §4.4.7's widening of addresses to 64 bits.
func (t Type) Bits() int {
	switch t {
	case TypeI32:
		return 32
	case TypeI64, TypePtr:
		return 64
	default:
		panic(fmt.Sprintf("ssa: invalid type %d", t))
	}
}

func (t Type) valid() bool { return t != typeInvalid }

// Signature is a function's parameter and result type vectors, as declared
// to the builder collaborator (spec.md §6.2, "function creation"). At most
// one result is supported in this core (spec.md §1, Non-goals).
type Signature struct {
	Name    string
	Params  []Type
	Results []Type
}

func (s *Signature) String() string {
	return fmt.Sprintf("%s%v -> %v", s.Name, s.Params, s.Results)
}
