// Package frontend implements the per-function Wasm-to-SSA translator of
// spec.md §4.4 — "the hard part" of this module. It interprets one code
// body opcode at a time against an operand stack and a locals array,
// driving an internal/ssa.Builder to construct the function's basic blocks,
// phis, and instructions.
//
// The translator's shape — a label stack of frames, each pre-creating one
// phi per live local in its target block before any predecessor branches to
// it — follows spec.md §9's bridging technique and original_source/src/jit.c's
// jit_context/jit_block structures, restructured into explicit Go types and
// error returns instead of the original's goto-cleanup control flow
// (tetratelabs/wazero's internal/engine/wazevo/frontend.Compiler is the
// idiomatic-Go shape this package borrows: one struct driving a builder,
// one opcode loop, helper methods per opcode group).
package frontend

import (
	"fmt"

	"github.com/spidir/wasmssa/internal/leb128"
	"github.com/spidir/wasmssa/internal/reader"
	"github.com/spidir/wasmssa/internal/ssa"
	"github.com/spidir/wasmssa/internal/wasm"
)

// FuncRef is what a Resolver hands back for a call target: its Wasm
// signature (for argument/result kind checking) and its SSA handle (for
// emitting the call itself).
type FuncRef struct {
	Sig *wasm.FuncType
	ID  ssa.FunctionID
}

// Resolver looks up call targets by Wasm function index. The module loader
// (internal/module) implements this over its function table.
type Resolver interface {
	Function(idx uint32) (FuncRef, bool)
}

type operand struct {
	kind wasm.ValueKind
	val  ssa.Value
}

type local struct {
	kind wasm.ValueKind
	val  ssa.Value
}

// labelFrame is one entry of the translator's label stack (spec.md §4.4.2).
//
// valuePhi additionally tracks the single value (if the function has
// exactly one result) that may be live on the operand stack when control
// reaches this label — the minimal stack-phi needed to carry a value out of
// a block/loop early-exit idiom (spec.md §8 scenarios 5 and 6), a bounded
// extension of the per-local-phi-only bridge described in spec.md §9 (which
// only rules out non-empty *declared* block types, not a function-level
// result value flowing through one).
type labelFrame struct {
	block      *ssa.BasicBlock
	localPhis  []*ssa.Phi
	valuePhi   *ssa.Phi
	loop       bool
	terminated bool

	// stackFloor is the operand-stack depth at the moment this frame was
	// first marked terminated, i.e. before any dead code between the
	// terminator and this label's matching end ran. It is restored by
	// enterLabelBlock so dead-code pushes never survive to be popped by
	// the live code that follows.
	stackFloor int
}

// translator holds the transient, per-function state of spec.md §3's
// "Translator state (per function)".
type translator struct {
	b        ssa.Builder
	r        *reader.Reader
	resolver Resolver
	sig      *wasm.FuncType

	stack  []operand
	locals []local
	labels []labelFrame

	// bodyTerminated mirrors labelFrame.terminated for the implicit
	// outermost scope (no frame wraps the function body itself).
	bodyTerminated bool
}

// Translate lowers one function body into IR via b, returning the completed
// Function. sig is the function's Wasm signature (at most one result, per
// spec.md §1); resolver resolves call targets encountered in the body.
func Translate(body *reader.Reader, sig *wasm.FuncType, b ssa.Builder, resolver Resolver) (*ssa.Function, error) {
	t := &translator{b: b, r: body, resolver: resolver, sig: sig}
	if err := t.prologue(); err != nil {
		return nil, err
	}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.b.Finish(), nil
}

func kindToType(k wasm.ValueKind) (ssa.Type, error) {
	switch k {
	case wasm.KindI32:
		return ssa.TypeI32, nil
	case wasm.KindI64:
		return ssa.TypeI64, nil
	default:
		return 0, &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("value kind %s", k)}
	}
}

// prologue implements spec.md §4.4.1: create and enter the entry block, then
// bind locals[0:n_params] to parameter references and, while parsing the
// local-declaration vector, the remainder to zero constants emitted into
// the entry block.
func (t *translator) prologue() error {
	entry := t.b.CreateBlock()
	t.b.SetEntryBlock(entry)
	t.b.SetCurrentBlock(entry)

	for i, pk := range t.sig.Params {
		if _, err := kindToType(pk); err != nil {
			return err
		}
		t.locals = append(t.locals, local{kind: pk, val: t.b.Param(i)})
	}

	nRuns, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("local declaration count", err)
	}
	for i := uint32(0); i < nRuns; i++ {
		count, err := leb128.DecodeUint32(t.r)
		if err != nil {
			return truncated("local declaration run count", err)
		}
		kb, err := t.r.PullByte()
		if err != nil {
			return truncated("local declaration kind", err)
		}
		kind, err := wasm.DecodeValueKind(kb)
		if err != nil {
			return err
		}
		typ, err := kindToType(kind)
		if err != nil {
			return err
		}
		for j := uint32(0); j < count; j++ {
			zero := t.b.Iconst(typ, 0)
			t.locals = append(t.locals, local{kind: kind, val: zero})
		}
	}
	return nil
}

// run drives the main opcode loop until the outermost end, then verifies
// the body is fully consumed and emits the belt-and-braces implicit return
// of spec.md §4.4.10.
func (t *translator) run() error {
	for {
		op, err := t.r.PullByte()
		if err != nil {
			return truncated("opcode", err)
		}
		done, err := t.step(op)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	if t.r.Len() != 0 {
		return &wasm.MalformedModuleError{Reason: fmt.Sprintf("%d trailing bytes after function body", t.r.Len())}
	}
	if !t.bodyTerminated {
		if err := t.emitReturn(); err != nil {
			return err
		}
	}
	return nil
}

// hasResult reports whether this function returns exactly one value, the
// only arity this core supports (spec.md §1).
func (t *translator) hasResult() bool { return len(t.sig.Results) == 1 }

// step executes one opcode. It returns done=true when this was the
// outermost end (the label stack became empty), ending translation.
func (t *translator) step(op byte) (done bool, err error) {
	switch op {
	case 0x00: // unreachable
		t.b.Unreachable()
		t.markTerminated()
		return false, nil
	case 0x02: // block
		return false, t.doBlock(false)
	case 0x03: // loop
		return false, t.doBlock(true)
	case 0x0B: // end
		return t.doEnd()
	case 0x0C: // br
		return false, t.doBr()
	case 0x0D: // br_if
		return false, t.doBrIf()
	case 0x0F: // return
		return false, t.doReturn()
	case 0x10: // call
		return false, t.doCall()
	case 0x1B: // select
		return false, t.doSelect()
	case 0x20, 0x21, 0x22: // local.get/set/tee
		return false, t.doLocalAccess(op)
	case 0x23: // global.get
		return false, t.doGlobalGet()
	default:
		if op >= 0x28 && op <= 0x35 {
			return false, t.doLoad(op)
		}
		if op >= 0x36 && op <= 0x3E {
			return false, t.doStore(op)
		}
		if op == 0x41 || op == 0x42 {
			return false, t.doConst(op)
		}
		if op == 0x45 || op == 0x50 {
			return false, t.doEqz(op)
		}
		if op >= 0x46 && op <= 0x4F {
			return false, t.doCompare32(op)
		}
		if op >= 0x51 && op <= 0x5A {
			return false, t.doCompare64(op)
		}
		if op >= 0x6A && op <= 0x78 {
			return false, t.doBinary32(op)
		}
		if op >= 0x7C && op <= 0x8A {
			return false, t.doBinary64(op)
		}
		if op == 0xA7 || op == 0xAC || op == 0xAD {
			return false, t.doConvert(op)
		}
		if op >= 0xC0 && op <= 0xC4 {
			return false, t.doSignExtend(op)
		}
		return false, &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("opcode %#x", op)}
	}
}

// markTerminated records that the innermost scope (the top label frame, or
// the function body itself if the label stack is empty) has been terminated
// by an unreachable/br/return, then opens a fresh disconnected block so any
// dead code up to the scope's matching end has somewhere harmless to land
// (spec.md §8 scenario 5's "i32.const 9 path"). No branch targets the
// freshly opened block; it and its instructions stay in the function, and
// the operands dead code pushes there are discarded once the matching end
// is reached.
//
// The operand-stack depth at this instant is captured as the frame's
// stackFloor (only on the first termination of a given frame) so that
// whatever dead code pushes between here and the matching end can be
// discarded by enterLabelBlock rather than leaking into the live code that
// follows the label.
func (t *translator) markTerminated() {
	if len(t.labels) > 0 {
		idx := len(t.labels) - 1
		if !t.labels[idx].terminated {
			t.labels[idx].terminated = true
			t.labels[idx].stackFloor = len(t.stack)
		}
	} else {
		t.bodyTerminated = true
	}
	t.b.SetCurrentBlock(t.b.CreateBlock())
}

func (t *translator) push(kind wasm.ValueKind, v ssa.Value) {
	t.stack = append(t.stack, operand{kind: kind, val: v})
}

func (t *translator) pop() (operand, error) {
	if len(t.stack) == 0 {
		return operand{}, &wasm.MalformedModuleError{Reason: "operand stack underflow"}
	}
	o := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return o, nil
}

func (t *translator) popKind(want wasm.ValueKind) (ssa.Value, error) {
	o, err := t.pop()
	if err != nil {
		return ssa.ValueInvalid, err
	}
	if o.kind != want {
		return ssa.ValueInvalid, &wasm.MalformedModuleError{
			Reason: fmt.Sprintf("type mismatch: expected %s, got %s", want, o.kind),
		}
	}
	return o.val, nil
}

func truncated(context string, err error) error {
	return wasm.WrapTruncated(context, err)
}
