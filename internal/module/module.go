package module

import (
	"github.com/spidir/wasmssa/internal/frontend"
	"github.com/spidir/wasmssa/internal/ssa"
	"github.com/spidir/wasmssa/internal/wasm"
)

// FuncEntry is one function's metadata, plus its reserved SSA handle. The
// Pre-code/Translated lifecycle of spec.md §3 lives on the ssa.Function the
// handle refers to, not here.
type FuncEntry struct {
	Sig *wasm.FuncType
	ID  ssa.FunctionID

	ssaSig *ssa.Signature
}

// Module is the parsed container of spec.md §4.5: it owns the type table,
// function table, memory/global descriptors, exports, and the SSA module
// holding every function's emitted IR.
type Module struct {
	Types     []*wasm.FuncType
	Functions []*FuncEntry
	Memories  []*wasm.MemoryLimits
	Globals   []*wasm.GlobalDescriptor
	Exports   []*wasm.ExportDescriptor
	IR        *ssa.Module
}

// Function implements frontend.Resolver over the function table built so
// far, resolving call targets by index (spec.md §4.4.5).
func (m *Module) Function(idx uint32) (frontend.FuncRef, bool) {
	if int(idx) >= len(m.Functions) {
		return frontend.FuncRef{}, false
	}
	fe := m.Functions[idx]
	return frontend.FuncRef{Sig: fe.Sig, ID: fe.ID}, true
}

// FunctionSignature returns function idx's Wasm signature, for introspection
// by an embedder or test harness.
func (m *Module) FunctionSignature(idx int) (*wasm.FuncType, bool) {
	if idx < 0 || idx >= len(m.Functions) {
		return nil, false
	}
	return m.Functions[idx].Sig, true
}

// NumFunctions returns the number of functions the module declares.
func (m *Module) NumFunctions() int { return len(m.Functions) }

// ExternType builds the tagged extern-type descriptor for export exp,
// dereferencing its index into the matching table (spec.md §4.3 step 7,
// "The export's extern descriptor is built from the referenced entity's
// type").
func (m *Module) ExternType(exp *wasm.ExportDescriptor) *wasm.ExternType {
	switch exp.Kind {
	case wasm.ExportFunc:
		return &wasm.ExternType{Kind: wasm.ExportFunc, Func: m.Functions[exp.Index].Sig}
	case wasm.ExportMemory:
		return &wasm.ExternType{Kind: wasm.ExportMemory, Memory: m.Memories[exp.Index]}
	case wasm.ExportGlobal:
		return &wasm.ExternType{Kind: wasm.ExportGlobal, Global: m.Globals[exp.Index]}
	default:
		return &wasm.ExternType{Kind: exp.Kind}
	}
}

// ExportedFunction resolves a function export by name.
func (m *Module) ExportedFunction(name string) (idx uint32, sig *wasm.FuncType, ok bool) {
	for _, exp := range m.Exports {
		if exp.Kind == wasm.ExportFunc && exp.Name == name {
			return exp.Index, m.Functions[exp.Index].Sig, true
		}
	}
	return 0, nil, false
}

// Close releases m, traversing functions, exports, globals, memories, and
// types in reverse order (spec.md §4.5). Go's garbage collector reclaims
// the underlying memory; Close exists to sever references deterministically
// (an embedder holding a stale Module after Close sees empty tables rather
// than a half-torn-down one) and is safe to call more than once or on a
// partially constructed Module.
func (m *Module) Close() {
	m.Functions = nil
	m.Exports = nil
	m.Globals = nil
	m.Memories = nil
	m.Types = nil
	m.IR = nil
}
