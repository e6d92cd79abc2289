package api

import "github.com/spidir/wasmssa/internal/wasm"

// ValKind mirrors internal/wasm.ValueKind at the embedding boundary, kept
// as a distinct exported type so internal/wasm's package stays unimported
// by embedders (spec.md §6.1, "kind queries for value ... types").
type ValKind byte

const (
	ValKindI32       = ValKind(wasm.KindI32)
	ValKindI64       = ValKind(wasm.KindI64)
	ValKindF32       = ValKind(wasm.KindF32)
	ValKindF64       = ValKind(wasm.KindF64)
	ValKindFuncRef   = ValKind(wasm.KindFuncRef)
	ValKindExternRef = ValKind(wasm.KindExternRef)
)

// String returns the Wasm text-format name of k.
func (k ValKind) String() string { return wasm.ValueKind(k).String() }

// ValType is a value type descriptor (§6.1, "Type constructors / copiers /
// deleters / kind queries for value ... types").
type ValType struct{ kind ValKind }

// NewValType constructs a ValType of the given kind.
func NewValType(kind ValKind) *ValType { return &ValType{kind: kind} }

// Kind returns t's value kind.
func (t *ValType) Kind() ValKind { return t.kind }

// Copy returns an independent copy of t, matching the embedding
// standard's wasm_valtype_copy. Go values have no shared ownership to
// copy-on-write here; this exists for API parity and so callers may
// freely mutate a copy without entangling the original.
func (t *ValType) Copy() *ValType { cp := *t; return &cp }

// Delete is a no-op kept for API parity with wasm_valtype_delete; Go's
// garbage collector reclaims t once it is unreferenced.
func (t *ValType) Delete() {}

// FuncType is a function signature descriptor (§6.1).
type FuncType struct {
	Params  []ValType
	Results []ValType
}

func wrapFuncType(f *wasm.FuncType) *FuncType {
	ft := &FuncType{
		Params:  make([]ValType, len(f.Params)),
		Results: make([]ValType, len(f.Results)),
	}
	for i, k := range f.Params {
		ft.Params[i] = ValType{kind: ValKind(k)}
	}
	for i, k := range f.Results {
		ft.Results[i] = ValType{kind: ValKind(k)}
	}
	return ft
}

// Copy returns an independent copy of f.
func (f *FuncType) Copy() *FuncType {
	return &FuncType{Params: append([]ValType(nil), f.Params...), Results: append([]ValType(nil), f.Results...)}
}

// Delete is a no-op kept for API parity; see (*ValType).Delete.
func (f *FuncType) Delete() {}

// MemoryType is a memory limits descriptor (§6.1).
type MemoryType struct {
	Min, Max   uint32
	MaxPresent bool
}

func wrapMemoryType(m *wasm.MemoryLimits) *MemoryType {
	return &MemoryType{Min: m.Min, Max: m.Max, MaxPresent: m.MaxPresent}
}

// EffectiveMax returns t's max if present, else the Wasm 1.0 address-space
// sentinel (internal/wasm.MemoryMaxSentinel).
func (t *MemoryType) EffectiveMax() uint32 {
	return wrapMemoryType2(t).EffectiveMax()
}

func wrapMemoryType2(t *MemoryType) *wasm.MemoryLimits {
	return &wasm.MemoryLimits{Min: t.Min, Max: t.Max, MaxPresent: t.MaxPresent}
}

// Delete is a no-op kept for API parity; see (*ValType).Delete.
func (t *MemoryType) Delete() {}

// GlobalType is a global variable descriptor (§6.1).
type GlobalType struct {
	Kind    ValKind
	Mutable bool
}

func wrapGlobalType(g *wasm.GlobalDescriptor) *GlobalType {
	return &GlobalType{Kind: ValKind(g.Kind), Mutable: g.Mutability == wasm.Var}
}

// Delete is a no-op kept for API parity; see (*ValType).Delete.
func (t *GlobalType) Delete() {}

// ExternKind classifies an export (§6.1, "export ... types").
type ExternKind byte

const (
	ExternKindFunc   = ExternKind(wasm.ExportFunc)
	ExternKindMemory = ExternKind(wasm.ExportMemory)
	ExternKindGlobal = ExternKind(wasm.ExportGlobal)
)

// ExternType is the tagged union of an export's concrete type, mirroring
// internal/wasm.ExternType at the embedding boundary.
type ExternType struct {
	Kind   ExternKind
	Func   *FuncType
	Memory *MemoryType
	Global *GlobalType
}

func wrapExternType(e *wasm.ExternType) *ExternType {
	out := &ExternType{Kind: ExternKind(e.Kind)}
	if f := e.FuncTypeOrNil(); f != nil {
		out.Func = wrapFuncType(f)
	}
	if m := e.MemoryOrNil(); m != nil {
		out.Memory = wrapMemoryType(m)
	}
	if g := e.GlobalOrNil(); g != nil {
		out.Global = wrapGlobalType(g)
	}
	return out
}

// ExportType names one of a Module's exports and its ExternType (§6.1).
type ExportType struct {
	Name string
	Type *ExternType
}

// Delete is a no-op kept for API parity; see (*ValType).Delete.
func (e *ExportType) Delete() {}
