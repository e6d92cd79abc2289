package api

import (
	"go.uber.org/zap"

	internalmodule "github.com/spidir/wasmssa/internal/module"
)

// Module is a loaded, translated Wasm module bound to a Store (spec.md
// §6.1, "Module: construct from a byte vector bound to a store; destroy").
type Module struct {
	store *Store
	inner *internalmodule.Module
}

// NewModule parses and translates data, the bytes of a complete Wasm
// binary, into store's owning Engine. On success every exported
// function's IR has been built (internal/module.Load); on failure the
// returned error is one of internal/wasm's typed error-taxonomy members
// and no Module is returned, matching spec.md §4.5's "loader releases the
// half-built module on any error."
//
// If store's Engine was configured with an IRDumpSink, the resulting
// module's IR is streamed to it before NewModule returns.
func NewModule(store *Store, data []byte) (*Module, error) {
	inner, err := internalmodule.Load(data)
	if err != nil {
		store.engine.log.Error("module load failed", zap.Error(err))
		return nil, err
	}
	if sink := store.engine.cfg.irDumpSink; sink != nil {
		inner.IR.Dump(func(chunk []byte) bool { return sink(chunk) })
	}
	return &Module{store: store, inner: inner}, nil
}

// NumFunctions returns the number of functions m declares.
func (m *Module) NumFunctions() int { return m.inner.NumFunctions() }

// ExportedFunction resolves a function export by name, returning its
// function index and Wasm signature as a FuncType.
func (m *Module) ExportedFunction(name string) (idx uint32, sig *FuncType, ok bool) {
	i, s, ok := m.inner.ExportedFunction(name)
	if !ok {
		return 0, nil, false
	}
	return i, wrapFuncType(s), true
}

// IRText renders the module's compiled IR as a single string, for
// embedders that want the dump without installing a streaming sink.
func (m *Module) IRText() string { return m.inner.IR.Format() }

// Exports returns an ExportTypeVec describing every export m declares
// (§6.1, "vec<T> ... over ... exporttype").
func (m *Module) Exports() *ExportTypeVec {
	out := make([]*ExportType, len(m.inner.Exports))
	for i, exp := range m.inner.Exports {
		out[i] = &ExportType{Name: exp.Name, Type: wrapExternType(m.inner.ExternType(exp))}
	}
	return NewVec(out)
}

// Close releases m. The underlying internal/module.Module is released
// too, matching spec.md §4.5's deterministic teardown.
func (m *Module) Close() {
	if m.inner != nil {
		m.inner.Close()
	}
	m.inner = nil
}
