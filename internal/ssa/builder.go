package ssa

import "fmt"

// Builder is the IR construction surface spec.md §6.2 hands to the function
// translator: one opcode at a time, against whichever block is currently
// "current". It is deliberately narrow — no optimization, no verification
// beyond what's needed to keep Finish's output well-formed — since the
// actual code generator lives outside this module's scope (spec.md §1).
//
// A Builder is built fresh per function by NewBuilder; unlike
// tetratelabs/wazero's ssa.Builder, which is pooled and reset via Init
// between functions, this one is single-use and discarded after Finish, to
// keep construction state from leaking across functions in a first cut of
// this package.
type Builder interface {
	// Signature returns the function signature the builder was created with.
	Signature() *Signature

	// CreateBlock allocates a new, empty, disconnected basic block.
	CreateBlock() *BasicBlock

	// SetCurrentBlock selects the block subsequent instruction-emitting calls
	// append to (CreatePhi takes its block explicitly).
	SetCurrentBlock(b *BasicBlock)

	// CurrentBlock returns the block last passed to SetCurrentBlock.
	CurrentBlock() *BasicBlock

	// EntryBlock returns the function's entry block, set by SetEntryBlock
	// during the translator's prologue.
	EntryBlock() *BasicBlock

	// SetEntryBlock records b as the function's entry block. Must be called
	// exactly once, before Finish.
	SetEntryBlock(b *BasicBlock)

	// Param returns the value bound to parameter index i. Valid once the
	// entry block has been set; params are live from function entry, with
	// no instruction needed to produce them.
	Param(i int) Value

	// CreatePhi adds a new phi node to block b, of the given type, and
	// returns its result value and handle. Per spec.md §9, labels create
	// every phi for their target block up front, before any branch has
	// supplied an input.
	CreatePhi(b *BasicBlock, typ Type) (Value, *Phi)

	// AddPhiInput appends v as the next predecessor input to phi. Callers
	// must supply inputs in a consistent order across all phis belonging to
	// the same block, since Inputs across a block's phis must stay
	// index-aligned with that block's predecessor list.
	AddPhiInput(phi *Phi, v Value)

	// Iconst emits an integer constant of the given type.
	Iconst(typ Type, imm uint64) Value

	// Binary emits a two-operand arithmetic/bitwise instruction. op must be
	// one of the binary opcodes (Iadd..Lshr); passing any other opcode
	// panics.
	Binary(op Opcode, a, b Value) Value

	// Icmp emits an integer comparison, always producing an i32 (0 or 1),
	// matching spec.md §4.4.8's convention that Wasm comparisons push an i32.
	Icmp(kind ICmpKind, a, b Value) Value

	// SignFill sign-extends the low `width` bits of a across the rest of a's
	// own type width, without changing a's type. Used to materialize the
	// result of a narrower signed operation (e.g. i32.extend8_s or
	// i64.extend_i32_s) into its containing i32/i64 (spec.md §4.4.8).
	// Signed loads do not use it; Load carries its own signExtend flag.
	SignFill(a Value, width int) Value

	// Extend widens a to typ, sign- or zero-extending per signed.
	Extend(a Value, typ Type, signed bool) Value

	// Trunc narrows a to typ, discarding high bits.
	Trunc(a Value, typ Type) Value

	// Load reads sizeBytes from the effective address addr (a TypePtr
	// value), producing a value of typ; if signExtend, the loaded bits are
	// sign-extended to fill typ, else zero-extended (spec.md §4.4.7).
	Load(addr Value, sizeBytes int, typ Type, signExtend bool) Value

	// Store writes the low sizeBytes of v to the effective address addr.
	Store(addr, v Value, sizeBytes int)

	// PtrOff computes base + offset as a TypePtr value; offset is itself an
	// i64 SSA value, since effective addresses in spec.md §4.4.7 are
	// computed at runtime from a dynamic operand plus a static immediate.
	PtrOff(base, offset Value) Value

	// Call emits a direct call to callee with args, producing a value of
	// resultType; pass typeInvalid (the zero Type) for a void callee, in
	// which case Call returns ValueInvalid.
	Call(callee FunctionID, resultType Type, args []Value) Value

	// Jump terminates the current block with an unconditional branch to
	// target. It records no phi inputs itself; callers feed target's phis
	// through AddPhiInput before branching.
	Jump(target *BasicBlock)

	// BrCond terminates the current block with a conditional branch: to
	// trueTarget if cond is nonzero, else falseTarget.
	BrCond(cond Value, trueTarget, falseTarget *BasicBlock)

	// Return terminates the current block, returning v.
	Return(v Value)

	// ReturnVoid terminates the current block with no result.
	ReturnVoid()

	// Unreachable terminates the current block, asserting control never
	// reaches here. The translator emits it for Wasm's unreachable opcode
	// (spec.md §4.4.4).
	Unreachable()

	// Finish completes construction and returns the built Function. The
	// builder must not be used afterward.
	Finish() *Function
}

type builder struct {
	sig     *Signature
	blocks  []*BasicBlock
	entry   *BasicBlock
	current *BasicBlock
	params  []Value
	nextVal int
}

// NewBuilder constructs a fresh Builder for a function with the given
// signature. Parameter values are pre-allocated; they become usable once
// SetEntryBlock has been called.
func NewBuilder(sig *Signature) Builder {
	b := &builder{sig: sig}
	for _, pt := range sig.Params {
		b.params = append(b.params, b.newValue(pt))
	}
	return b
}

func (b *builder) newValue(typ Type) Value {
	v := Value{id: b.nextVal, typ: typ}
	b.nextVal++
	return v
}

func (b *builder) Signature() *Signature { return b.sig }

func (b *builder) CreateBlock() *BasicBlock {
	blk := &BasicBlock{id: len(b.blocks)}
	b.blocks = append(b.blocks, blk)
	return blk
}

func (b *builder) SetCurrentBlock(blk *BasicBlock) { b.current = blk }
func (b *builder) CurrentBlock() *BasicBlock       { return b.current }
func (b *builder) EntryBlock() *BasicBlock         { return b.entry }

func (b *builder) SetEntryBlock(blk *BasicBlock) {
	if b.entry != nil {
		panic("ssa: entry block already set")
	}
	b.entry = blk
}

func (b *builder) Param(i int) Value {
	if i < 0 || i >= len(b.params) {
		panic(fmt.Sprintf("ssa: param index %d out of range", i))
	}
	return b.params[i]
}

func (b *builder) CreatePhi(blk *BasicBlock, typ Type) (Value, *Phi) {
	v := b.newValue(typ)
	phi := &Phi{Result: v, Block: blk}
	blk.phis = append(blk.phis, phi)
	return v, phi
}

func (b *builder) AddPhiInput(phi *Phi, v Value) {
	phi.Inputs = append(phi.Inputs, v)
}

func (b *builder) emit(ins *Instruction) {
	if b.current == nil {
		panic("ssa: no current block")
	}
	if b.current.Terminated() {
		panic("ssa: block already terminated")
	}
	b.current.instr = append(b.current.instr, ins)
}

func (b *builder) Iconst(typ Type, imm uint64) Value {
	v := b.newValue(typ)
	b.emit(&Instruction{Op: OpIconst, Result: v, Imm: imm})
	return v
}

func (b *builder) Binary(op Opcode, a, c Value) Value {
	switch op {
	case OpIadd, OpIsub, OpImul, OpSdiv, OpUdiv, OpSrem, OpUrem,
		OpAnd, OpOr, OpXor, OpShl, OpAshr, OpLshr:
	default:
		panic(fmt.Sprintf("ssa: %s is not a binary opcode", op))
	}
	v := b.newValue(a.typ)
	b.emit(&Instruction{Op: op, Result: v, Args: []Value{a, c}})
	return v
}

func (b *builder) Icmp(kind ICmpKind, a, c Value) Value {
	v := b.newValue(TypeI32)
	b.emit(&Instruction{Op: OpIcmp, Result: v, Args: []Value{a, c}, ICmpKind: kind})
	return v
}

func (b *builder) SignFill(a Value, width int) Value {
	v := b.newValue(a.typ)
	b.emit(&Instruction{Op: OpSignFill, Result: v, Args: []Value{a}, Width: width})
	return v
}

func (b *builder) Extend(a Value, typ Type, signed bool) Value {
	v := b.newValue(typ)
	b.emit(&Instruction{Op: OpExtend, Result: v, Args: []Value{a}, Signed: signed, Width: a.typ.Bits()})
	return v
}

func (b *builder) Trunc(a Value, typ Type) Value {
	v := b.newValue(typ)
	b.emit(&Instruction{Op: OpTrunc, Result: v, Args: []Value{a}, Width: typ.Bits()})
	return v
}

func (b *builder) Load(addr Value, sizeBytes int, typ Type, signExtend bool) Value {
	v := b.newValue(typ)
	b.emit(&Instruction{Op: OpLoad, Result: v, Args: []Value{addr}, MemSize: sizeBytes, SignExtend: signExtend})
	return v
}

func (b *builder) Store(addr, v Value, sizeBytes int) {
	b.emit(&Instruction{Op: OpStore, Args: []Value{addr, v}, MemSize: sizeBytes})
}

func (b *builder) PtrOff(base, offset Value) Value {
	v := b.newValue(TypePtr)
	b.emit(&Instruction{Op: OpPtrOff, Result: v, Args: []Value{base, offset}})
	return v
}

func (b *builder) Call(callee FunctionID, resultType Type, args []Value) Value {
	var result Value
	if resultType.valid() {
		result = b.newValue(resultType)
	}
	b.emit(&Instruction{Op: OpCall, Result: result, Args: args, Callee: callee})
	return result
}

func (b *builder) Jump(target *BasicBlock) {
	target.addPred(b.current)
	b.emit(&Instruction{Op: OpJump, Target: target})
}

func (b *builder) BrCond(cond Value, trueTarget, falseTarget *BasicBlock) {
	trueTarget.addPred(b.current)
	falseTarget.addPred(b.current)
	b.emit(&Instruction{Op: OpBrCond, Args: []Value{cond}, TrueTarget: trueTarget, FalseTarget: falseTarget})
}

func (b *builder) Return(v Value) {
	b.emit(&Instruction{Op: OpReturn, Args: []Value{v}})
}

func (b *builder) ReturnVoid() {
	b.emit(&Instruction{Op: OpReturnVoid})
}

func (b *builder) Unreachable() {
	b.emit(&Instruction{Op: OpUnreachable})
}

func (b *builder) Finish() *Function {
	if b.entry == nil {
		panic("ssa: Finish called without an entry block")
	}
	return &Function{
		Sig:    b.sig,
		Entry:  b.entry,
		Blocks: b.blocks,
		state:  stateTranslated,
	}
}
