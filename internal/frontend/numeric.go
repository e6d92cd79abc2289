package frontend

import (
	"fmt"

	"github.com/spidir/wasmssa/internal/leb128"
	"github.com/spidir/wasmssa/internal/ssa"
	"github.com/spidir/wasmssa/internal/wasm"
)

func (t *translator) doConst(op byte) error {
	switch op {
	case 0x41: // i32.const
		v, err := leb128.DecodeInt32(t.r)
		if err != nil {
			return truncated("i32.const", err)
		}
		val := t.b.Iconst(ssa.TypeI32, uint64(uint32(v)))
		t.push(wasm.KindI32, val)
	case 0x42: // i64.const
		v, err := leb128.DecodeInt64(t.r)
		if err != nil {
			return truncated("i64.const", err)
		}
		val := t.b.Iconst(ssa.TypeI64, uint64(v))
		t.push(wasm.KindI64, val)
	}
	return nil
}

func (t *translator) doEqz(op byte) error {
	kind, typ := wasm.KindI32, ssa.TypeI32
	if op == 0x50 {
		kind, typ = wasm.KindI64, ssa.TypeI64
	}
	v, err := t.popKind(kind)
	if err != nil {
		return err
	}
	zero := t.b.Iconst(typ, 0)
	result := t.b.Icmp(ssa.ICmpEq, v, zero)
	t.push(wasm.KindI32, result)
	return nil
}

// cmpSpec maps one compare opcode to an IR icmp kind, swapping operands for
// the gt/ge variants spidir (and most SSA IRs) has no dedicated kind for
// (spec.md §4.4.8).
type cmpSpec struct {
	kind ssa.ICmpKind
	swap bool
}

var i32CompareTable = map[byte]cmpSpec{
	0x46: {ssa.ICmpEq, false},
	0x47: {ssa.ICmpNe, false},
	0x48: {ssa.ICmpSlt, false}, // lt_s
	0x49: {ssa.ICmpUlt, false}, // lt_u
	0x4A: {ssa.ICmpSlt, true},  // gt_s
	0x4B: {ssa.ICmpUlt, true},  // gt_u
	0x4C: {ssa.ICmpSle, false}, // le_s
	0x4D: {ssa.ICmpUle, false}, // le_u
	0x4E: {ssa.ICmpSle, true},  // ge_s
	0x4F: {ssa.ICmpUle, true},  // ge_u
}

var i64CompareTable = map[byte]cmpSpec{
	0x51: {ssa.ICmpEq, false},
	0x52: {ssa.ICmpNe, false},
	0x53: {ssa.ICmpSlt, false},
	0x54: {ssa.ICmpUlt, false},
	0x55: {ssa.ICmpSlt, true},
	0x56: {ssa.ICmpUlt, true},
	0x57: {ssa.ICmpSle, false},
	0x58: {ssa.ICmpUle, false},
	0x59: {ssa.ICmpSle, true},
	0x5A: {ssa.ICmpUle, true},
}

func (t *translator) doCompare32(op byte) error { return t.doCompare(i32CompareTable[op], wasm.KindI32) }
func (t *translator) doCompare64(op byte) error { return t.doCompare(i64CompareTable[op], wasm.KindI64) }

func (t *translator) doCompare(spec cmpSpec, kind wasm.ValueKind) error {
	// Stack order: [..., a, b] — b was pushed last, so it pops first.
	b, err := t.popKind(kind)
	if err != nil {
		return err
	}
	a, err := t.popKind(kind)
	if err != nil {
		return err
	}
	lhs, rhs := a, b
	if spec.swap {
		lhs, rhs = b, a
	}
	result := t.b.Icmp(spec.kind, lhs, rhs)
	t.push(wasm.KindI32, result)
	return nil
}

var i32BinaryTable = map[byte]ssa.Opcode{
	0x6A: ssa.OpIadd,
	0x6B: ssa.OpIsub,
	0x6C: ssa.OpImul,
	0x6D: ssa.OpSdiv,
	0x6E: ssa.OpUdiv,
	0x6F: ssa.OpSrem,
	0x70: ssa.OpUrem,
	0x71: ssa.OpAnd,
	0x72: ssa.OpOr,
	0x73: ssa.OpXor,
	0x74: ssa.OpShl,
	0x75: ssa.OpAshr,
	0x76: ssa.OpLshr,
	// 0x77 rotl, 0x78 rotr: out of scope.
}

var i64BinaryTable = map[byte]ssa.Opcode{
	0x7C: ssa.OpIadd,
	0x7D: ssa.OpIsub,
	0x7E: ssa.OpImul,
	0x7F: ssa.OpSdiv,
	0x80: ssa.OpUdiv,
	0x81: ssa.OpSrem,
	0x82: ssa.OpUrem,
	0x83: ssa.OpAnd,
	0x84: ssa.OpOr,
	0x85: ssa.OpXor,
	0x86: ssa.OpShl,
	0x87: ssa.OpAshr,
	0x88: ssa.OpLshr,
	// 0x89 rotl, 0x8A rotr: out of scope.
}

func (t *translator) doBinary32(op byte) error {
	ssaOp, ok := i32BinaryTable[op]
	if !ok {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("i32 opcode %#x", op)}
	}
	return t.doBinary(ssaOp, wasm.KindI32)
}

func (t *translator) doBinary64(op byte) error {
	ssaOp, ok := i64BinaryTable[op]
	if !ok {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("i64 opcode %#x", op)}
	}
	return t.doBinary(ssaOp, wasm.KindI64)
}

func (t *translator) doBinary(op ssa.Opcode, kind wasm.ValueKind) error {
	rhs, err := t.popKind(kind)
	if err != nil {
		return err
	}
	lhs, err := t.popKind(kind)
	if err != nil {
		return err
	}
	result := t.b.Binary(op, lhs, rhs)
	t.push(kind, result)
	return nil
}

func (t *translator) doConvert(op byte) error {
	switch op {
	case 0xA7: // i32.wrap_i64
		v, err := t.popKind(wasm.KindI64)
		if err != nil {
			return err
		}
		t.push(wasm.KindI32, t.b.Trunc(v, ssa.TypeI32))
	case 0xAC: // i64.extend_i32_s
		v, err := t.popKind(wasm.KindI32)
		if err != nil {
			return err
		}
		ext := t.b.Extend(v, ssa.TypeI64, false)
		t.push(wasm.KindI64, t.b.SignFill(ext, 32))
	case 0xAD: // i64.extend_i32_u
		v, err := t.popKind(wasm.KindI32)
		if err != nil {
			return err
		}
		t.push(wasm.KindI64, t.b.Extend(v, ssa.TypeI64, false))
	}
	return nil
}

type signExtendSpec struct {
	kind  wasm.ValueKind
	width int
}

var signExtendTable = map[byte]signExtendSpec{
	0xC0: {wasm.KindI32, 8},  // i32.extend8_s
	0xC1: {wasm.KindI32, 16}, // i32.extend16_s
	0xC2: {wasm.KindI64, 8},  // i64.extend8_s
	0xC3: {wasm.KindI64, 16}, // i64.extend16_s
	0xC4: {wasm.KindI64, 32}, // i64.extend32_s
}

func (t *translator) doSignExtend(op byte) error {
	spec, ok := signExtendTable[op]
	if !ok {
		return &wasm.UnsupportedFeatureError{Feature: fmt.Sprintf("opcode %#x", op)}
	}
	v, err := t.popKind(spec.kind)
	if err != nil {
		return err
	}
	t.push(spec.kind, t.b.SignFill(v, spec.width))
	return nil
}
