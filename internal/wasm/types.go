// Package wasm implements the type model described in spec.md §3 and §4.2
// (interned value kinds, function signatures, memory/global descriptors,
// exports, extern types) and the error taxonomy of §7. The section-by-section
// loader and the module container live in internal/module.
//
// The struct shapes here are grounded on vertexdlt/vertexvm's wasm.Module
// (module.go) and on tetratelabs/wazero's internal/wasm type vocabulary
// (FunctionType, Memory, GlobalType, Export), adapted to the narrower
// surface spec.md §3 requires (interned ValueKind, at most one result,
// restricted constant expressions, no imports/tables).
package wasm

import "fmt"

// ValueKind is an interned value-type tag (spec.md §3, "Value kind"). Since
// ValueKind is a small comparable value (a byte), two ValueKind values
// constructed from the same byte always compare equal by ==; there is
// nothing to allocate or free, so construction, copy, and "destruction" are
// all no-ops performed implicitly by Go's value semantics.
type ValueKind byte

// The value kinds supported by this core (spec.md §3). FuncRef and ExternRef
// are recognized during type decoding (they appear in table/elem-type bytes
// and the core's restricted treatment of reference types) but no opcode in
// §4.4 produces or consumes them as operands.
const (
	KindI32       ValueKind = 0x7F
	KindI64       ValueKind = 0x7E
	KindF32       ValueKind = 0x7D
	KindF64       ValueKind = 0x7C
	KindFuncRef   ValueKind = 0x70
	KindExternRef ValueKind = 0x6F
)

// String implements fmt.Stringer.
func (k ValueKind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindFuncRef:
		return "funcref"
	case KindExternRef:
		return "externref"
	default:
		return fmt.Sprintf("valuekind(%#x)", byte(k))
	}
}

// DecodeValueKind maps a Wasm value-type byte to a ValueKind (spec.md §4.3,
// step 3's decode table). Exported for internal/frontend's local-declaration
// parsing, which shares the same decode table.
func DecodeValueKind(b byte) (ValueKind, error) { return decodeValueKind(b) }

func decodeValueKind(b byte) (ValueKind, error) {
	switch ValueKind(b) {
	case KindI32, KindI64, KindF32, KindF64, KindFuncRef, KindExternRef:
		return ValueKind(b), nil
	default:
		return 0, &MalformedModuleError{Reason: fmt.Sprintf("invalid value type byte %#x", b)}
	}
}

// FuncType is a function signature: an ordered parameter-kind vector and an
// ordered result-kind vector, immutable once constructed (spec.md §3,
// "Function signature"). This core supports at most one result.
type FuncType struct {
	Params  []ValueKind
	Results []ValueKind
}

// String renders a FuncType in the conventional "(params) -> (results)"
// shape, used in diagnostics and IR dumps.
func (t *FuncType) String() string {
	return fmt.Sprintf("%v -> %v", t.Params, t.Results)
}

// Equal reports whether t and o describe the same signature.
func (t *FuncType) Equal(o *FuncType) bool {
	if len(t.Params) != len(o.Params) || len(t.Results) != len(o.Results) {
		return false
	}
	for i := range t.Params {
		if t.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range t.Results {
		if t.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

// MemoryLimits is the (min, max) pair of 32-bit page counts (spec.md §3,
// "Memory limits"). MaxPresent is false when the binary omits the bound; in
// that case Max is left zero and EffectiveMax reports the
// implementation-defined sentinel MemoryMaxSentinel.
type MemoryLimits struct {
	Min        uint32
	Max        uint32
	MaxPresent bool
}

// MemoryMaxSentinel is the implementation-defined maximum used when a
// memory's binary encoding omits an explicit bound (spec.md §3). Wasm 1.0
// caps linear memory at 65536 pages (4GiB), so that is the natural sentinel.
const MemoryMaxSentinel uint32 = 65536

// EffectiveMax returns Max if MaxPresent, else MemoryMaxSentinel.
func (l MemoryLimits) EffectiveMax() uint32 {
	if l.MaxPresent {
		return l.Max
	}
	return MemoryMaxSentinel
}

// Mutability is a global's mutability flag (spec.md §3, "Global
// descriptor").
type Mutability byte

const (
	Const Mutability = 0
	Var   Mutability = 1
)

// GlobalDescriptor is (content kind, mutability, initial value) (spec.md §3).
// InitI32/InitI64 hold the value produced by the restricted constant
// expression permitted in this core (i32.const or i64.const only); which
// field is meaningful is determined by Kind.
type GlobalDescriptor struct {
	Kind       ValueKind
	Mutability Mutability
	InitI32    int32
	InitI64    int64
}

// ExportKind classifies an export entry (spec.md §3, "Export descriptor").
type ExportKind byte

const (
	ExportFunc   ExportKind = 0x00
	ExportTable  ExportKind = 0x01
	ExportMemory ExportKind = 0x02
	ExportGlobal ExportKind = 0x03
)

// ExportDescriptor is (name, kind, index) (spec.md §3).
type ExportDescriptor struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// ExternType is a tagged sum over {func, global, table, memory} (spec.md §3,
// "Export descriptor"; §4.2, "tagged sum"). Access through the mismatched
// tag (the FuncType/Global accessor methods) returns nil — a "null probe"
// per spec.md §4.2, rather than panicking, since an embedder may legitimately
// query an ExternType's kind before narrowing it.
type ExternType struct {
	Kind ExportKind

	Func   *FuncType
	Global *GlobalDescriptor
	Memory *MemoryLimits
	// Table is represented only by its presence; table instructions are out
	// of scope (spec.md §1) so no further structure is modeled.
	Table *struct{}
}

// FuncTypeOrNil returns et.Func if Kind == ExportFunc, else nil.
func (et *ExternType) FuncTypeOrNil() *FuncType {
	if et.Kind != ExportFunc {
		return nil
	}
	return et.Func
}

// GlobalOrNil returns et.Global if Kind == ExportGlobal, else nil.
func (et *ExternType) GlobalOrNil() *GlobalDescriptor {
	if et.Kind != ExportGlobal {
		return nil
	}
	return et.Global
}

// MemoryOrNil returns et.Memory if Kind == ExportMemory, else nil.
func (et *ExternType) MemoryOrNil() *MemoryLimits {
	if et.Kind != ExportMemory {
		return nil
	}
	return et.Memory
}
