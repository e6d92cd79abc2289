package ssa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderIdentityFunction(t *testing.T) {
	sig := &Signature{Name: "func0", Params: []Type{TypeI32}, Results: []Type{TypeI32}}
	b := NewBuilder(sig)
	entry := b.CreateBlock()
	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	b.Return(b.Param(0))

	fn := b.Finish()
	require.True(t, fn.Translated())
	require.Same(t, entry, fn.Entry)
	require.True(t, entry.Terminated())
	require.Equal(t, OpReturn, entry.Instructions()[0].Op)
}

func TestBuilderAddOfTwoParams(t *testing.T) {
	sig := &Signature{Name: "func0", Params: []Type{TypeI32, TypeI32}, Results: []Type{TypeI32}}
	b := NewBuilder(sig)
	entry := b.CreateBlock()
	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	sum := b.Binary(OpIadd, b.Param(0), b.Param(1))
	b.Return(sum)

	fn := b.Finish()
	require.Len(t, fn.Entry.Instructions(), 2)
	require.Equal(t, OpIadd, fn.Entry.Instructions()[0].Op)
	require.Equal(t, OpReturn, fn.Entry.Instructions()[1].Op)
}

func TestBuilderPhiAcrossBranch(t *testing.T) {
	// if (p0) v = 1 else v = 2; return v
	sig := &Signature{Name: "func0", Params: []Type{TypeI32}, Results: []Type{TypeI32}}
	b := NewBuilder(sig)

	entry := b.CreateBlock()
	thenBlk := b.CreateBlock()
	elseBlk := b.CreateBlock()
	join := b.CreateBlock()

	joinVal, phi := b.CreatePhi(join, TypeI32)

	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	b.BrCond(b.Param(0), thenBlk, elseBlk)

	b.SetCurrentBlock(thenBlk)
	one := b.Iconst(TypeI32, 1)
	b.AddPhiInput(phi, one)
	b.Jump(join)

	b.SetCurrentBlock(elseBlk)
	two := b.Iconst(TypeI32, 2)
	b.AddPhiInput(phi, two)
	b.Jump(join)

	b.SetCurrentBlock(join)
	b.Return(joinVal)

	fn := b.Finish()
	require.True(t, fn.Translated())
	require.Len(t, join.Phis(), 1)
	require.Len(t, join.Phis()[0].Inputs, 2)
	require.True(t, entry.Terminated())
	require.True(t, thenBlk.Terminated())
	require.True(t, elseBlk.Terminated())
	require.True(t, join.Terminated())
}

func TestBuilderPanicsOnDoubleTerminate(t *testing.T) {
	sig := &Signature{Name: "func0", Results: []Type{TypeI32}}
	b := NewBuilder(sig)
	entry := b.CreateBlock()
	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	b.Return(b.Iconst(TypeI32, 0))

	require.Panics(t, func() {
		b.Return(b.Iconst(TypeI32, 1))
	})
}

func TestModuleDumpStreamsEveryFunction(t *testing.T) {
	m := NewModule()
	sig := &Signature{Name: "func0", Params: []Type{TypeI32}, Results: []Type{TypeI32}}
	id := m.Reserve(sig)

	b := NewBuilder(sig)
	entry := b.CreateBlock()
	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	b.Return(b.Param(0))
	m.Define(id, b.Finish())

	out := m.Format()
	require.True(t, strings.Contains(out, "func 0"))
	require.True(t, strings.Contains(out, "return"))
}

func TestModuleDumpStopsEarly(t *testing.T) {
	m := NewModule()
	sig := &Signature{Name: "func0", Results: []Type{TypeI32}}
	id := m.Reserve(sig)
	b := NewBuilder(sig)
	entry := b.CreateBlock()
	b.SetEntryBlock(entry)
	b.SetCurrentBlock(entry)
	b.Return(b.Iconst(TypeI32, 0))
	m.Define(id, b.Finish())

	calls := 0
	m.Dump(func(data []byte) bool {
		calls++
		return false
	})
	require.Equal(t, 1, calls)
}
