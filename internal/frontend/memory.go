package frontend

import (
	"fmt"

	"github.com/spidir/wasmssa/internal/leb128"
	"github.com/spidir/wasmssa/internal/ssa"
	"github.com/spidir/wasmssa/internal/wasm"
)

// readMemArg consumes the align/offset pair every load/store instruction is
// encoded with (spec.md §4.4.7). align is the alignment exponent; it is
// stored by the wire format but unused by this core.
func (t *translator) readMemArg() (align, offset uint32, err error) {
	align, err = leb128.DecodeUint32(t.r)
	if err != nil {
		return 0, 0, truncated("memarg align", err)
	}
	offset, err = leb128.DecodeUint32(t.r)
	if err != nil {
		return 0, 0, truncated("memarg offset", err)
	}
	return align, offset, nil
}

// effectiveAddress pops the I32 address operand and computes the pointer
// spec.md §4.4.7 describes: the address widened to 64 bits, plus the
// static offset immediate, masked to 0xFFFFFFFF to give unsigned 32→64
// extension, then offset from a (currently placeholder) zero base.
func (t *translator) effectiveAddress(offset uint32) (ssa.Value, error) {
	addr, err := t.popKind(wasm.KindI32)
	if err != nil {
		return ssa.ValueInvalid, err
	}
	addr64 := t.b.Extend(addr, ssa.TypeI64, false)
	offConst := t.b.Iconst(ssa.TypeI64, uint64(offset))
	sum := t.b.Binary(ssa.OpIadd, addr64, offConst)
	mask := t.b.Iconst(ssa.TypeI64, 0xFFFFFFFF)
	masked := t.b.Binary(ssa.OpAnd, sum, mask)
	base := t.b.Iconst(ssa.TypePtr, 0)
	return t.b.PtrOff(base, masked), nil
}

type loadSpec struct {
	kind       wasm.ValueKind
	typ        ssa.Type
	size       int
	signExtend bool
}

var loadTable = map[byte]loadSpec{
	0x28: {wasm.KindI32, ssa.TypeI32, 4, false}, // i32.load
	0x29: {wasm.KindI64, ssa.TypeI64, 8, false}, // i64.load
	0x2C: {wasm.KindI32, ssa.TypeI32, 1, true},  // i32.load8_s
	0x2D: {wasm.KindI32, ssa.TypeI32, 1, false}, // i32.load8_u
	0x2E: {wasm.KindI32, ssa.TypeI32, 2, true},  // i32.load16_s
	0x2F: {wasm.KindI32, ssa.TypeI32, 2, false}, // i32.load16_u
	0x30: {wasm.KindI64, ssa.TypeI64, 1, true},  // i64.load8_s
	0x31: {wasm.KindI64, ssa.TypeI64, 1, false}, // i64.load8_u
	0x32: {wasm.KindI64, ssa.TypeI64, 2, true},  // i64.load16_s
	0x33: {wasm.KindI64, ssa.TypeI64, 2, false}, // i64.load16_u
	0x34: {wasm.KindI64, ssa.TypeI64, 4, true},  // i64.load32_s
	0x35: {wasm.KindI64, ssa.TypeI64, 4, false}, // i64.load32_u
}

func (t *translator) doLoad(op byte) error {
	spec, ok := loadTable[op]
	if !ok {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("opcode %#x", op)}
	}
	_, offset, err := t.readMemArg()
	if err != nil {
		return err
	}
	addr, err := t.effectiveAddress(offset)
	if err != nil {
		return err
	}
	result := t.b.Load(addr, spec.size, spec.typ, spec.signExtend)
	t.push(spec.kind, result)
	return nil
}

type storeSpec struct {
	kind wasm.ValueKind
	size int
}

var storeTable = map[byte]storeSpec{
	0x36: {wasm.KindI32, 4}, // i32.store
	0x37: {wasm.KindI64, 8}, // i64.store
	0x3A: {wasm.KindI32, 1}, // i32.store8
	0x3B: {wasm.KindI32, 2}, // i32.store16
	0x3C: {wasm.KindI64, 1}, // i64.store8
	0x3D: {wasm.KindI64, 2}, // i64.store16
	0x3E: {wasm.KindI64, 4}, // i64.store32
}

func (t *translator) doStore(op byte) error {
	spec, ok := storeTable[op]
	if !ok {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("opcode %#x", op)}
	}
	_, offset, err := t.readMemArg()
	if err != nil {
		return err
	}
	value, err := t.popKind(spec.kind)
	if err != nil {
		return err
	}
	addr, err := t.effectiveAddress(offset)
	if err != nil {
		return err
	}
	t.b.Store(addr, value, spec.size)
	return nil
}
