package ssa

import "fmt"

// Phi is a phi node: a block-entry value whose definition depends on which
// predecessor control arrived from. Per spec.md §9's bridging technique, a
// label pre-creates one Phi per locally-live variable in its target block,
// before any predecessor has actually branched to it; every branch (explicit
// or a structured construct's fall-through) must then supply exactly one
// input per predecessor edge it introduces.
type Phi struct {
	Result Value
	Block  *BasicBlock
	// Inputs is append-only: AddPhiInput appends once per incoming edge. The
	// translator's prepare-branch step (spec.md §4.4.3) is responsible for
	// calling AddPhiInput on every phi of a branch's target label, in the
	// same order the label's phi list was created, so Inputs stays aligned
	// across all phis of a block.
	Inputs []Value
}

// BasicBlock is a maximal straight-line instruction sequence with a single
// entry and, once Seal-equivalent construction finishes, exactly one
// terminator as its last instruction (spec.md §3).
type BasicBlock struct {
	id    int
	phis  []*Phi
	instr []*Instruction

	// preds is populated as a side effect of emitting Jump/BrCond
	// instructions that target this block; it exists for debugging only.
	// Neither construction nor Dump reads it.
	preds []*BasicBlock
}

func (b *BasicBlock) name() string { return fmt.Sprintf("block%d", b.id) }

// Terminated reports whether the block's instruction list already ends in a
// terminator. The builder uses this to refuse emitting further instructions
// into a block and to know when a label's "natural fall-through" edge still
// needs to be synthesized (spec.md §4.4.4).
func (b *BasicBlock) Terminated() bool {
	if len(b.instr) == 0 {
		return false
	}
	return b.instr[len(b.instr)-1].Op.isTerminator()
}

// Phis returns the block's phi nodes, in creation order.
func (b *BasicBlock) Phis() []*Phi { return b.phis }

// Instructions returns the block's instruction list, in emission order. The
// slice is owned by the block; callers must not mutate it.
func (b *BasicBlock) Instructions() []*Instruction { return b.instr }

func (b *BasicBlock) addPred(p *BasicBlock) {
	for _, existing := range b.preds {
		if existing == p {
			return
		}
	}
	b.preds = append(b.preds, p)
}
