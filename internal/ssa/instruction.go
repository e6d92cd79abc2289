package ssa

import (
	"fmt"
	"strings"
)

func joinArgs(args []string) string { return strings.Join(args, ", ") }

// Opcode identifies an SSA instruction kind. The set here is the builder
// surface spec.md §6.2 enumerates (integer constants, binary ops, icmp,
// sign-fill, extend/truncate, load/store/ptroff, and the block terminators)
// plus a direct call.
type Opcode int

const (
	opInvalid Opcode = iota

	OpIconst
	OpIadd
	OpIsub
	OpImul
	OpSdiv
	OpUdiv
	OpSrem
	OpUrem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpAshr
	OpLshr
	OpIcmp
	OpSignFill
	OpTrunc
	OpExtend
	OpLoad
	OpStore
	OpPtrOff
	OpCall

	// Terminators.
	OpJump
	OpBrCond
	OpReturn
	OpReturnVoid
	OpUnreachable
)

func (op Opcode) isTerminator() bool {
	switch op {
	case OpJump, OpBrCond, OpReturn, OpReturnVoid, OpUnreachable:
		return true
	default:
		return false
	}
}

func (op Opcode) String() string {
	switch op {
	case OpIconst:
		return "iconst"
	case OpIadd:
		return "iadd"
	case OpIsub:
		return "isub"
	case OpImul:
		return "imul"
	case OpSdiv:
		return "sdiv"
	case OpUdiv:
		return "udiv"
	case OpSrem:
		return "srem"
	case OpUrem:
		return "urem"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpShl:
		return "shl"
	case OpAshr:
		return "ashr"
	case OpLshr:
		return "lshr"
	case OpIcmp:
		return "icmp"
	case OpSignFill:
		return "sfill"
	case OpTrunc:
		return "trunc"
	case OpExtend:
		return "extend"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpPtrOff:
		return "ptroff"
	case OpCall:
		return "call"
	case OpJump:
		return "jump"
	case OpBrCond:
		return "brcond"
	case OpReturn:
		return "return"
	case OpReturnVoid:
		return "return.void"
	case OpUnreachable:
		return "unreachable"
	default:
		return "invalid"
	}
}

// ICmpKind is the comparison predicate for an Icmp instruction (spec.md
// §6.2). Spidir, like most SSA IRs, has no dedicated greater-than kinds: the
// translator (spec.md §4.4.8) synthesizes gt/ge by swapping operands around
// lt/le.
type ICmpKind byte

const (
	ICmpEq ICmpKind = iota
	ICmpNe
	ICmpSlt
	ICmpUlt
	ICmpSle
	ICmpUle
)

func (k ICmpKind) String() string {
	switch k {
	case ICmpEq:
		return "eq"
	case ICmpNe:
		return "ne"
	case ICmpSlt:
		return "slt"
	case ICmpUlt:
		return "ult"
	case ICmpSle:
		return "sle"
	case ICmpUle:
		return "ule"
	default:
		return "invalid-icmp"
	}
}

// Instruction is one emitted IR operation. Exactly one Instruction per
// BasicBlock may be a terminator, and it must be the block's last
// instruction (spec.md §3, invariants).
type Instruction struct {
	Op     Opcode
	Result Value // invalid if the op has no result (terminators, Store).
	Args   []Value

	// Jump/BrCond targets.
	Target      *BasicBlock
	TrueTarget  *BasicBlock
	FalseTarget *BasicBlock

	// Icmp.
	ICmpKind ICmpKind

	// SignFill/Extend: the bit width being filled from, or extended from.
	Width int
	// Extend: true for sign-extension, false for zero-extension.
	Signed bool

	// Load/Store: size in bytes of the memory access, and whether a load
	// sign-extends its result after reading MemSize bytes (spec.md §4.4.7).
	MemSize    int
	SignExtend bool

	// Iconst.
	Imm uint64

	// Call.
	Callee FunctionID
}

func (ins *Instruction) String() string {
	prefix := ""
	if ins.Result.Valid() {
		prefix = ins.Result.String() + " = "
	}
	switch ins.Op {
	case OpIconst:
		return fmt.Sprintf("%s%s.const %d", prefix, ins.Result.Type(), ins.Imm)
	case OpIcmp:
		return fmt.Sprintf("%sicmp %s %s, %s", prefix, ins.ICmpKind, ins.Args[0], ins.Args[1])
	case OpSignFill:
		return fmt.Sprintf("%ssfill.%d %s", prefix, ins.Width, ins.Args[0])
	case OpTrunc:
		return fmt.Sprintf("%strunc.%s %s", prefix, ins.Result.Type(), ins.Args[0])
	case OpExtend:
		kind := "zext"
		if ins.Signed {
			kind = "sext"
		}
		return fmt.Sprintf("%s%s.%s %s", prefix, kind, ins.Result.Type(), ins.Args[0])
	case OpLoad:
		return fmt.Sprintf("%sload.%d %s", prefix, ins.MemSize, ins.Args[0])
	case OpStore:
		return fmt.Sprintf("store.%d %s, %s", ins.MemSize, ins.Args[0], ins.Args[1])
	case OpPtrOff:
		return fmt.Sprintf("%sptroff %s, %s", prefix, ins.Args[0], ins.Args[1])
	case OpCall:
		args := make([]string, len(ins.Args))
		for i, a := range ins.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("%scall %d(%s)", prefix, ins.Callee, joinArgs(args))
	case OpJump:
		return fmt.Sprintf("jump %s", ins.Target.name())
	case OpBrCond:
		return fmt.Sprintf("brcond %s, %s, %s", ins.Args[0], ins.TrueTarget.name(), ins.FalseTarget.name())
	case OpReturn:
		return fmt.Sprintf("return %s", ins.Args[0])
	case OpReturnVoid:
		return "return"
	case OpUnreachable:
		return "unreachable"
	default:
		if len(ins.Args) == 2 {
			return fmt.Sprintf("%s%s %s, %s", prefix, ins.Op, ins.Args[0], ins.Args[1])
		}
		return fmt.Sprintf("%s%s", prefix, ins.Op)
	}
}
