package ssa

import (
	"fmt"
	"strings"
)

type functionState byte

const (
	// statePreCode: a handle exists (spec.md §4.3 step 4 reserves one while
	// parsing the function section) but no body has been translated yet.
	statePreCode functionState = iota
	// stateTranslated: Builder.Finish populated Entry/Blocks.
	stateTranslated
)

// FunctionID indexes a function within a Module, stable from the moment the
// function section reserves it (spec.md §4.3 step 4) through translation.
type FunctionID int

// Function is one function's IR record. Before its code body is translated
// it carries only a signature and a generated name (state Pre-code); after
// Builder.Finish, Entry and Blocks are populated (state Translated).
type Function struct {
	Sig   *Signature
	Entry *BasicBlock
	Blocks []*BasicBlock

	state functionState
}

// Translated reports whether f's body has been built.
func (f *Function) Translated() bool { return f.state == stateTranslated }

// Module owns the function table produced by translating a Wasm binary's
// code section, plus formatting/dumping of the resulting IR (spec.md §6.2,
// "module-level dump that streams textual IR to a callback sink").
type Module struct {
	funcs []*Function
}

// NewModule returns an empty Module.
func NewModule() *Module { return &Module{} }

// Reserve appends a Pre-code Function for the given signature and returns
// its id. Called by the Wasm function-section loader before any code body
// has been seen (spec.md §4.3 step 4).
func (m *Module) Reserve(sig *Signature) FunctionID {
	id := FunctionID(len(m.funcs))
	m.funcs = append(m.funcs, &Function{Sig: sig, state: statePreCode})
	return id
}

// Define replaces the Pre-code placeholder at id with a translated Function,
// as produced by a Builder's Finish.
func (m *Module) Define(id FunctionID, fn *Function) {
	if int(id) < 0 || int(id) >= len(m.funcs) {
		panic(fmt.Sprintf("ssa: function id %d out of range", id))
	}
	m.funcs[id] = fn
}

// Function returns the function record at id.
func (m *Module) Function(id FunctionID) *Function { return m.funcs[id] }

// NumFunctions returns the number of reserved functions.
func (m *Module) NumFunctions() int { return len(m.funcs) }

// Sink receives chunks of a module dump's textual rendering. It returns
// false to stop the dump early, mirroring spec.md §6.2's
// "(data, len, ctx) → continue|stop" callback protocol; ctx is left to the
// caller's closure rather than threaded explicitly, which is the idiomatic
// Go shape for the same contract.
type Sink func(data []byte) (cont bool)

// Dump streams a textual rendering of every function in m to sink, one
// instruction line (or phi/block header line) per call, stopping early if
// sink returns false.
func (m *Module) Dump(sink Sink) {
	for id, fn := range m.funcs {
		if !dumpFunction(FunctionID(id), fn, sink) {
			return
		}
	}
}

func dumpFunction(id FunctionID, fn *Function, sink Sink) bool {
	if !sink([]byte(fmt.Sprintf("func %d %s {\n", id, fn.Sig))) {
		return false
	}
	if fn.Translated() {
		for _, blk := range fn.Blocks {
			if !dumpBlock(blk, sink) {
				return false
			}
		}
	} else {
		if !sink([]byte("  ; pre-code\n")) {
			return false
		}
	}
	return sink([]byte("}\n"))
}

func dumpBlock(blk *BasicBlock, sink Sink) bool {
	if !sink([]byte(fmt.Sprintf("%s:\n", blk.name()))) {
		return false
	}
	for _, phi := range blk.phis {
		inputs := make([]string, len(phi.Inputs))
		for i, in := range phi.Inputs {
			inputs[i] = in.String()
		}
		line := fmt.Sprintf("  %s = phi %s\n", phi.Result, strings.Join(inputs, ", "))
		if !sink([]byte(line)) {
			return false
		}
	}
	for _, ins := range blk.instr {
		if !sink([]byte("  " + ins.String() + "\n")) {
			return false
		}
	}
	return true
}

// Format renders the whole module as a single string, for use in tests and
// api.Module.IRText where streaming isn't needed.
func (m *Module) Format() string {
	var sb strings.Builder
	m.Dump(func(data []byte) bool {
		sb.Write(data)
		return true
	})
	return sb.String()
}
