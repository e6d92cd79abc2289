package frontend

import (
	"fmt"

	"github.com/spidir/wasmssa/internal/leb128"
	"github.com/spidir/wasmssa/internal/ssa"
	"github.com/spidir/wasmssa/internal/wasm"
)

// createLabelPhis installs one phi per live local into block, per spec.md
// §4.4.2: "the translator switches into the future label block to install
// fresh phis for every local (zero inputs initially)".
func (t *translator) createLabelPhis(block *ssa.BasicBlock) ([]*ssa.Phi, error) {
	phis := make([]*ssa.Phi, len(t.locals))
	for i, l := range t.locals {
		typ, err := kindToType(l.kind)
		if err != nil {
			return nil, err
		}
		_, phi := t.b.CreatePhi(block, typ)
		phis[i] = phi
	}
	return phis, nil
}

// prepareBranchTo is spec.md §4.4.3's prepare-branch step: feed every local's
// current value as a new input to the target frame's phis, plus, if the
// function has a result, the value phi tracking whatever's on top of the
// operand stack at this branch point.
//
// consume distinguishes an unconditional transfer of control (br, the
// fallthrough at a label's end) from a conditional one that may not be
// taken (br_if): an unconditional transfer pops the value off the stack
// (ownership passes to the target), a conditional one only peeks it, since
// the not-taken path still needs it.
func (t *translator) prepareBranchTo(frame labelFrame, consume bool) {
	for i, phi := range frame.localPhis {
		t.b.AddPhiInput(phi, t.locals[i].val)
	}
	if frame.valuePhi == nil {
		return
	}
	var v ssa.Value
	switch {
	case len(t.stack) == 0:
		v = t.b.Iconst(frame.valuePhi.Result.Type(), 0)
	case consume:
		o, _ := t.pop()
		v = o.val
	default:
		v = t.stack[len(t.stack)-1].val
	}
	t.b.AddPhiInput(frame.valuePhi, v)
}

// enterLabelBlock adopts frame's block as current and its phi results as the
// new locals array, per spec.md §4.4.4's "enter `block` (adopt its
// local_values as the new ctx.locals)"; if the frame carries a value phi, its
// result is pushed back onto the operand stack for the code that follows.
//
// If frame was terminated, any operands dead code pushed between the
// terminator and this label's end are discarded first by truncating back to
// frame.stackFloor, so they can never be mistaken for real operands by the
// live code resuming here.
func (t *translator) enterLabelBlock(frame labelFrame) {
	if frame.terminated {
		t.stack = t.stack[:frame.stackFloor]
	}
	t.b.SetCurrentBlock(frame.block)
	for i, phi := range frame.localPhis {
		t.locals[i].val = phi.Result
	}
	if frame.valuePhi != nil {
		t.push(t.sig.Results[0], frame.valuePhi.Result)
	}
}

// parseBlockType consumes the block-type byte. Only the empty type (0x40)
// is supported in this core; anything else is fatal (spec.md §4.4.4).
func (t *translator) parseBlockType() error {
	b, err := t.r.PullByte()
	if err != nil {
		return truncated("block type", err)
	}
	if b != 0x40 {
		return &wasm.UnsupportedFeatureError{Feature: "non-empty block type"}
	}
	return nil
}

func (t *translator) doBlock(loop bool) error {
	if err := t.parseBlockType(); err != nil {
		return err
	}
	target := t.b.CreateBlock()
	phis, err := t.createLabelPhis(target)
	if err != nil {
		return err
	}
	var valuePhi *ssa.Phi
	if t.hasResult() {
		typ, err := kindToType(t.sig.Results[0])
		if err != nil {
			return err
		}
		_, valuePhi = t.b.CreatePhi(target, typ)
	}
	frame := labelFrame{block: target, localPhis: phis, valuePhi: valuePhi, loop: loop}
	t.labels = append(t.labels, frame)

	if loop {
		t.prepareBranchTo(frame, true)
		t.b.Jump(target)
		t.enterLabelBlock(frame)
	}
	return nil
}

// doEnd implements spec.md §4.4.4's `end` handling. The bool return reports
// whether this was the outermost end (label stack now empty), which ends
// translation of the body.
func (t *translator) doEnd() (bool, error) {
	if len(t.labels) == 0 {
		return true, nil
	}
	idx := len(t.labels) - 1
	frame := t.labels[idx]
	t.labels = t.labels[:idx]

	if frame.loop {
		// markTerminated already opened a fresh current block for any dead
		// code that followed an early exit; nothing to adopt here since a
		// loop's own end never falls through anywhere. Dead-code operands
		// still need discarding so they don't leak into whatever follows.
		if frame.terminated {
			t.stack = t.stack[:frame.stackFloor]
		}
		return false, nil
	}

	if !frame.terminated {
		t.prepareBranchTo(frame, true)
		t.b.Jump(frame.block)
	}
	t.enterLabelBlock(frame)
	return false, nil
}

func (t *translator) labelAt(depth uint32) (labelFrame, error) {
	idx := len(t.labels) - 1 - int(depth)
	if idx < 0 || idx >= len(t.labels) {
		return labelFrame{}, &wasm.MalformedModuleError{Reason: fmt.Sprintf("branch depth %d out of range", depth)}
	}
	return t.labels[idx], nil
}

func (t *translator) doBr() error {
	depth, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("br depth", err)
	}
	frame, err := t.labelAt(depth)
	if err != nil {
		return err
	}
	t.prepareBranchTo(frame, true)
	t.b.Jump(frame.block)
	t.markTerminated()
	return nil
}

func (t *translator) doBrIf() error {
	depth, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("br_if depth", err)
	}
	cond, err := t.popKind(wasm.KindI32)
	if err != nil {
		return err
	}
	frame, err := t.labelAt(depth)
	if err != nil {
		return err
	}
	// Feed phi inputs unconditionally: the branch may or may not be taken,
	// but a conditional branch with identical taken/untaken locals is still
	// well-typed (spec.md §4.4.3). Peek rather than consume: the not-taken
	// path still needs whatever's on top of the stack.
	t.prepareBranchTo(frame, false)
	cont := t.b.CreateBlock()
	t.b.BrCond(cond, frame.block, cont)
	t.b.SetCurrentBlock(cont)
	return nil
}

func (t *translator) emitReturn() error {
	if len(t.sig.Results) == 0 {
		t.b.ReturnVoid()
		return nil
	}
	v, err := t.popKind(t.sig.Results[0])
	if err != nil {
		return err
	}
	t.b.Return(v)
	return nil
}

func (t *translator) doReturn() error {
	if err := t.emitReturn(); err != nil {
		return err
	}
	t.markTerminated()
	return nil
}

func (t *translator) doCall() error {
	idx, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("call function index", err)
	}
	ref, ok := t.resolver.Function(idx)
	if !ok {
		return &wasm.MalformedModuleError{Reason: fmt.Sprintf("call: unknown function index %d", idx)}
	}
	args := make([]ssa.Value, len(ref.Sig.Params))
	for i := len(ref.Sig.Params) - 1; i >= 0; i-- {
		v, err := t.popKind(ref.Sig.Params[i])
		if err != nil {
			return err
		}
		args[i] = v
	}
	var resultType ssa.Type
	if len(ref.Sig.Results) > 0 {
		resultType, err = kindToType(ref.Sig.Results[0])
		if err != nil {
			return err
		}
	}
	result := t.b.Call(ref.ID, resultType, args)
	if len(ref.Sig.Results) > 0 {
		t.push(ref.Sig.Results[0], result)
	}
	return nil
}

// doSelect implements spec.md §4.4.9, preserving the source's conditional
// branch whose taken and not-taken destinations are the same block (spec.md
// §9, open questions): only the phi carries the conditional's effect.
func (t *translator) doSelect() error {
	cond, err := t.popKind(wasm.KindI32)
	if err != nil {
		return err
	}
	val2, err := t.pop()
	if err != nil {
		return err
	}
	val1, err := t.pop()
	if err != nil {
		return err
	}
	if val1.kind != val2.kind {
		return &wasm.MalformedModuleError{Reason: "select: operand kind mismatch"}
	}
	typ, err := kindToType(val1.kind)
	if err != nil {
		return err
	}
	cont := t.b.CreateBlock()
	result, phi := t.b.CreatePhi(cont, typ)
	t.b.AddPhiInput(phi, val1.val)
	t.b.AddPhiInput(phi, val2.val)
	t.b.BrCond(cond, cont, cont)
	t.b.SetCurrentBlock(cont)
	t.push(val1.kind, result)
	return nil
}

func (t *translator) doLocalAccess(op byte) error {
	idx, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("local index", err)
	}
	if int(idx) >= len(t.locals) {
		return &wasm.MalformedModuleError{Reason: fmt.Sprintf("local index %d out of range", idx)}
	}
	switch op {
	case 0x20: // local.get
		l := t.locals[idx]
		t.push(l.kind, l.val)
	case 0x21: // local.set
		v, err := t.pop()
		if err != nil {
			return err
		}
		if v.kind != t.locals[idx].kind {
			return &wasm.MalformedModuleError{Reason: "local.set: kind mismatch"}
		}
		t.locals[idx].val = v.val
	case 0x22: // local.tee
		if len(t.stack) == 0 {
			return &wasm.MalformedModuleError{Reason: "operand stack underflow"}
		}
		top := t.stack[len(t.stack)-1]
		if top.kind != t.locals[idx].kind {
			return &wasm.MalformedModuleError{Reason: "local.tee: kind mismatch"}
		}
		t.locals[idx].val = top.val
	}
	return nil
}

// doGlobalGet implements spec.md §4.4.6's restricted global.get: only index
// 0 is recognized, and it pushes a zero I32 placeholder pending real global
// wiring.
func (t *translator) doGlobalGet() error {
	idx, err := leb128.DecodeUint32(t.r)
	if err != nil {
		return truncated("global index", err)
	}
	if idx != 0 {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("global index %d", idx)}
	}
	zero := t.b.Iconst(ssa.TypeI32, 0)
	t.push(wasm.KindI32, zero)
	return nil
}
